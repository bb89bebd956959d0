// internal/email/service.go
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dangerclosesec/passport/internal/config"
	"github.com/dangerclosesec/passport/internal/model"
)

// Service delivers verification messages through Sendgrid. It satisfies
// the Gateway interface consumed by the contact workflow.
type Service struct {
	config         *config.Config
	sendgridClient *sendgrid.Client
}

// NewService creates a new delivery service instance.
func NewService(cfg *config.Config) *Service {
	return &Service{
		config:         cfg,
		sendgridClient: sendgrid.NewSendClient(cfg.Sendgrid.APIKey),
	}
}

// SendEmailVerification mails the claim's verification link.
func (s *Service) SendEmailVerification(ctx context.Context, claim *model.ClaimedEmail) error {
	link := fmt.Sprintf("%s/profile/email/%s/verify?code=%s",
		s.config.BaseURL, claim.Fingerprint, claim.VerificationCode)

	textContent := fmt.Sprintf(
		"Please confirm your email address by opening this link:\r\n\r\n%s\r\n", link)
	htmlContent := fmt.Sprintf(
		`<p>Please confirm your email address:</p><p><a href="%s">Verify email</a></p>`, link)

	from := mail.NewEmail(s.config.Sendgrid.FromName, s.config.Sendgrid.From)
	to := mail.NewEmail("", claim.Email)
	message := mail.NewSingleEmail(from, "Please verify your email address", to, textContent, htmlContent)

	response, err := s.sendgridClient.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via Sendgrid: %w", err)
	}

	if response.StatusCode != 202 {
		return fmt.Errorf("unexpected Sendgrid status code: %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

// SendPasswordReset mails a single-use password reset link.
func (s *Service) SendPasswordReset(ctx context.Context, address string, user *model.User, req *model.PasswordResetRequest) error {
	link := fmt.Sprintf("%s/reset?userid=%s&code=%s",
		s.config.BaseURL, user.UserID, req.ResetCode)

	textContent := fmt.Sprintf(
		"A password reset was requested for your account. Open this link to choose a new password:\r\n\r\n%s\r\n", link)
	htmlContent := fmt.Sprintf(
		`<p>A password reset was requested for your account.</p><p><a href="%s">Choose a new password</a></p>`, link)

	from := mail.NewEmail(s.config.Sendgrid.FromName, s.config.Sendgrid.From)
	to := mail.NewEmail(user.DisplayName(), address)
	message := mail.NewSingleEmail(from, "Reset your password", to, textContent, htmlContent)

	response, err := s.sendgridClient.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via Sendgrid: %w", err)
	}

	if response.StatusCode != 202 {
		return fmt.Errorf("unexpected Sendgrid status code: %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

// SendPhoneVerificationCode hands the claim's PIN to the SMS transport.
// TODO: wire an SMS provider; until then the PIN is only logged so
// operators can complete verification manually in dev environments.
func (s *Service) SendPhoneVerificationCode(ctx context.Context, claim *model.ClaimedPhone) error {
	slog.InfoContext(ctx, "phone verification code issued",
		"phone", claim.Phone, "code", claim.VerificationCode)
	return nil
}
