// internal/audit/logger.go
package audit

import (
	"context"
	"log/slog"

	chmw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/signals"
)

// Recorder persists identity events as an audit trail. Writes are best
// effort: a failed insert is logged and the triggering request proceeds.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Attach subscribes the recorder to every identity event on the bus.
func (r *Recorder) Attach(bus signals.Bus) {
	for _, name := range []string{
		signals.UserRegistered,
		signals.UserLogin,
		signals.UserDataChanged,
		signals.MembershipChanged,
		signals.OrgChanged,
		signals.TeamChanged,
		signals.EmailClaimed,
		signals.PhoneClaimed,
	} {
		bus.Subscribe(name, r.record)
	}
}

func (r *Recorder) record(ctx context.Context, event signals.Event) {
	entry := &model.IdentityAuditLog{
		Event:     event.Name,
		Subject:   event.Subject,
		RequestID: chmw.GetReqID(ctx),
	}
	if len(event.Changes) > 0 {
		entry.Detail = model.JSONMap{"changes": event.Changes}
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		slog.ErrorContext(ctx, "audit trail write failed",
			"event", event.Name, "subject", event.Subject, "error", err)
	}
}
