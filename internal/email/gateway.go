// internal/email/gateway.go
package email

import (
	"context"

	"github.com/dangerclosesec/passport/internal/model"
)

// Gateway is the delivery boundary for verification messages. Sends are
// fire-and-forget from the core's perspective: a delivery failure never
// rolls back the claim that triggered it. Retry policy belongs to the
// implementation.
type Gateway interface {
	SendEmailVerification(ctx context.Context, claim *model.ClaimedEmail) error
	SendPhoneVerificationCode(ctx context.Context, claim *model.ClaimedPhone) error
}

// NopGateway discards deliveries. Offline tooling that imports
// already-verified addresses uses it in place of a live transport.
type NopGateway struct{}

func (NopGateway) SendEmailVerification(context.Context, *model.ClaimedEmail) error { return nil }
func (NopGateway) SendPhoneVerificationCode(context.Context, *model.ClaimedPhone) error {
	return nil
}
