package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dangerclosesec/passport/sdk/client"
)

const (
	// Change these values to match your environment
	serviceURL = "http://localhost:8080"
)

func main() {
	// Initialize the client
	config := &client.Config{
		BaseURL: serviceURL,
		Timeout: 10 * time.Second,
	}
	c := client.NewClient(config)

	// Create a context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Run the example
	if err := runExample(ctx, c); err != nil {
		log.Fatalf("Error running example: %v", err)
	}
}

func runExample(ctx context.Context, c *client.Client) error {
	fmt.Println("Running identity SDK example...")

	// Step 1: Register an account
	fmt.Println("\n1. Signing up...")
	signup, err := c.Signup(ctx, &client.SignupRequest{
		Fullname: "Alice Example",
		Username: "alice",
		Password: "correct-horse-battery",
		Email:    "alice@example.com",
	})
	if err != nil {
		return fmt.Errorf("failed to sign up: %w", err)
	}
	fmt.Printf("Created user %s (%s)\n", signup.User.Fullname, signup.User.UserID)

	// Step 2: Claim a second email address
	fmt.Println("\n2. Claiming a work address...")
	claim, err := c.ClaimEmail(ctx, "alice@acme.example")
	if err != nil {
		return fmt.Errorf("failed to claim email: %w", err)
	}
	fmt.Printf("Verification pending for fingerprint %s\n", claim.Fingerprint)

	// Step 3: Create an organization
	fmt.Println("\n3. Creating an organization...")
	org, err := c.CreateOrganization(ctx, &client.CreateOrganizationRequest{
		Name:  "acme",
		Title: "Acme Corp",
	})
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	fmt.Printf("Created organization %s (@%s)\n", org.Title, org.Name)

	// Step 4: Autocomplete
	fmt.Println("\n4. Searching...")
	results, err := c.Autocomplete(ctx, "ali")
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}
	for _, r := range results {
		fmt.Printf("  %s %s (%s)\n", r.Fullname, r.Username, r.UserID)
	}

	// Step 5: Log out
	fmt.Println("\n5. Logging out...")
	if err := c.Logout(ctx); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	fmt.Println("Done")
	return nil
}
