// cmd/passport/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dangerclosesec/passport/internal/auth"
	"github.com/dangerclosesec/passport/internal/config"
	"github.com/dangerclosesec/passport/internal/email"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/repository"
	"github.com/dangerclosesec/passport/internal/search"
	"github.com/dangerclosesec/passport/internal/service"
	"github.com/dangerclosesec/passport/internal/signals"
)

var (
	dbConnString string
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbConnString, "db", "d", "", "Database connection string (defaults to env config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	createUserCmd.Flags().String("username", "", "Username for the new user")
	createUserCmd.Flags().String("password", "", "Initial password")

	addEmailCmd.Flags().Bool("primary", false, "Mark the address primary")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(addEmailCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(setDomainCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "passport",
	Short: "Passport is an admin CLI for the identity service",
	Long:  `Passport manages users, organizations, teams and merges directly against the identity database.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		db := openDB()
		if err := repository.Migrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		fmt.Println("Migration complete")
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create-user [fullname]",
	Short: "Create a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		identity := buildIdentityService(openDB())
		user, err := identity.CreateUser(context.Background(), service.CreateUserInput{
			Fullname: args[0],
			Username: username,
			Password: password,
		})
		if err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		fmt.Printf("Created user %s (%s)\n", user.DisplayName(), user.UserID)
	},
}

var addEmailCmd = &cobra.Command{
	Use:   "add-email [userid] [address]",
	Short: "Attach a verified email address to a user",
	Long:  `Add-email bypasses the claim workflow for addresses verified out of band, e.g. during an import. Matching team domains still auto-join.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		primary, _ := cmd.Flags().GetBool("primary")

		db := openDB()
		bus := signals.NopBus{}
		userRepo := repository.NewUserRepository(db)
		orgRepo := repository.NewOrganizationRepository(db)
		contactRepo := repository.NewContactRepository(db)
		identity := buildIdentityService(db)
		contacts := service.NewContactService(contactRepo, orgRepo, userRepo, email.NopGateway{}, bus)

		user, err := identity.GetUserByUserID(context.Background(), args[0])
		if err != nil {
			log.Fatalf("User lookup failed: %v", err)
		}
		confirmed, err := contacts.AddEmail(context.Background(), model.UserOwner(user.ID), args[1], primary)
		if err != nil {
			log.Fatalf("Failed to add email: %v", err)
		}
		fmt.Printf("Added %s to %s (primary=%t)\n", confirmed.Email, user.DisplayName(), confirmed.Primary)
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge [old-userid] [new-userid]",
	Short: "Merge one user account into another",
	Long:  `Merge retires the first account into the second: team memberships move over, the old userid keeps resolving to the survivor.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		db := openDB()
		userRepo := repository.NewUserRepository(db)
		identity := buildIdentityService(db)
		merges := service.NewMergeService(userRepo, identity, signals.NopBus{})

		user, err := merges.MergeUsers(context.Background(), args[0], args[1])
		if err != nil {
			log.Fatalf("Merge failed: %v", err)
		}
		fmt.Printf("Merged %s into %s (%s)\n", args[0], user.UserID, user.DisplayName())
	},
}

var setDomainCmd = &cobra.Command{
	Use:   "set-domain [team-userid] [domain]",
	Short: "Set a team's auto-join email domain",
	Long:  `Set-domain assigns the domain and retroactively adds every user holding a confirmed email address on it. Pass "" to clear.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		db := openDB()
		bus := signals.NopBus{}
		userRepo := repository.NewUserRepository(db)
		orgRepo := repository.NewOrganizationRepository(db)
		contactRepo := repository.NewContactRepository(db)
		orgs := service.NewOrganizationService(orgRepo, userRepo, contactRepo, bus)

		team, err := orgs.GetTeamByUserID(context.Background(), args[0])
		if err != nil {
			log.Fatalf("Team lookup failed: %v", err)
		}
		if err := orgs.SetTeamDomain(context.Background(), team, args[1]); err != nil {
			log.Fatalf("Failed to set domain: %v", err)
		}
		fmt.Printf("Team %s domain set to %q\n", team.Title, args[1])
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Autocomplete users by name, username or userid",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		dsn := dbConnString
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
				cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
				cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			log.Fatalf("Failed to connect: %v", err)
		}
		defer pool.Close()

		results, err := search.New(pool, auth.ProviderMap{}).Autocomplete(ctx, args[0])
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		for _, r := range results {
			fmt.Printf("%-24s %-20s %s\n", r.UserID, r.Username, r.Fullname)
		}
		if verbose {
			fmt.Printf("%d result(s)\n", len(results))
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("passport v0.3.0")
	},
}

func openDB() *gorm.DB {
	dsn := dbConnString
	if dsn == "" {
		dsn = config.Load().DSN()
	}

	logLevel := logger.Silent
	if verbose {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func buildIdentityService(db *gorm.DB) *service.IdentityService {
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	return service.NewIdentityService(userRepo, orgRepo, auth.NewPasswordHasher(), signals.NopBus{})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
