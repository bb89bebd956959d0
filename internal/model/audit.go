// internal/model/audit.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// IdentityAuditLog is one row of the identity event trail. Every event
// published on the signals bus lands here; the subject is the permanent
// userid (or org/team userid) the event concerns.
type IdentityAuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Event     string    `gorm:"type:text;not null;index" json:"event"`
	Subject   string    `gorm:"type:varchar(22);not null;index" json:"subject"`
	Detail    JSONMap   `gorm:"type:jsonb" json:"detail"`
	RequestID string    `gorm:"type:text" json:"request_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (IdentityAuditLog) TableName() string { return "identity_audit_logs" }

// JSONMap is a generic map stored as JSONB.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion failed: failed to decode JSONB")
	}

	return json.Unmarshal(bytes, m)
}
