// internal/repository/migrate.go
package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/dangerclosesec/passport/internal/model"
)

// ownerTables are the contact channel tables carrying polymorphic owner
// columns.
var ownerTables = []string{
	"confirmed_emails",
	"claimed_emails",
	"confirmed_phones",
	"claimed_phones",
}

// Migrate creates the schema and the constraints the application relies
// on for race safety: the exactly-one-owner CHECK on contact channels,
// the per-owner uniqueness of claims, cascade rules per relationship,
// and the functional indexes backing case-insensitive autocomplete.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.Team{},
		&model.TeamMembership{},
		&model.OldUserID{},
		&model.UserExternalID{},
		&model.PasswordResetRequest{},
		&model.ConfirmedEmail{},
		&model.ClaimedEmail{},
		&model.ConfirmedPhone{},
		&model.ClaimedPhone{},
		&model.Session{},
		&model.IdentityAuditLog{},
	); err != nil {
		return fmt.Errorf("auto-migrating schema: %w", err)
	}

	var ddl []string

	for _, table := range ownerTables {
		// Exactly one of the three owner references must be set. The
		// application resolver checks this too, but only the store can
		// hold it against concurrent writers.
		ddl = append(ddl, fmt.Sprintf(
			`ALTER TABLE %[1]s DROP CONSTRAINT IF EXISTS chk_%[1]s_single_owner;
			 ALTER TABLE %[1]s ADD CONSTRAINT chk_%[1]s_single_owner CHECK (
				(CASE WHEN owner_user_id IS NOT NULL THEN 1 ELSE 0 END) +
				(CASE WHEN owner_org_id IS NOT NULL THEN 1 ELSE 0 END) +
				(CASE WHEN owner_team_id IS NOT NULL THEN 1 ELSE 0 END) = 1)`, table))

		// Owned channels are deleted with their owner.
		ddl = append(ddl, fmt.Sprintf(
			`ALTER TABLE %[1]s DROP CONSTRAINT IF EXISTS fk_%[1]s_owner_user;
			 ALTER TABLE %[1]s ADD CONSTRAINT fk_%[1]s_owner_user
				FOREIGN KEY (owner_user_id) REFERENCES users(id) ON DELETE CASCADE;
			 ALTER TABLE %[1]s DROP CONSTRAINT IF EXISTS fk_%[1]s_owner_org;
			 ALTER TABLE %[1]s ADD CONSTRAINT fk_%[1]s_owner_org
				FOREIGN KEY (owner_org_id) REFERENCES organizations(id) ON DELETE CASCADE;
			 ALTER TABLE %[1]s DROP CONSTRAINT IF EXISTS fk_%[1]s_owner_team;
			 ALTER TABLE %[1]s ADD CONSTRAINT fk_%[1]s_owner_team
				FOREIGN KEY (owner_team_id) REFERENCES teams(id) ON DELETE CASCADE`, table))
	}

	// A claim is unique per (owner, address). Null owner columns are
	// ignored by unique indexes, so only one of the three applies per row.
	for _, col := range []string{"owner_user_id", "owner_org_id", "owner_team_id"} {
		ddl = append(ddl, fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_claimed_emails_%[1]s_email
				ON claimed_emails (%[1]s, email) WHERE %[1]s IS NOT NULL`, col))
		ddl = append(ddl, fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_claimed_phones_%[1]s_phone
				ON claimed_phones (%[1]s, phone) WHERE %[1]s IS NOT NULL`, col))
	}

	// Functional indexes for case-insensitive prefix matching.
	ddl = append(ddl,
		`CREATE INDEX IF NOT EXISTS ix_users_username_lower ON users (lower(username) varchar_pattern_ops)`,
		`CREATE INDEX IF NOT EXISTS ix_users_fullname_lower ON users (lower(fullname) varchar_pattern_ops)`,
		`CREATE INDEX IF NOT EXISTS ix_user_external_ids_username_lower ON user_external_ids (lower(username) varchar_pattern_ops)`,
		`CREATE INDEX IF NOT EXISTS ix_confirmed_emails_email_lower ON confirmed_emails (lower(email) varchar_pattern_ops)`,
	)

	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("applying constraint DDL: %w", err)
		}
	}
	return nil
}
