// internal/search/search.go
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/dangerclosesec/passport/internal/auth"
)

const resultCap = 100

// Result is one autocomplete hit.
type Result struct {
	UserID   string `json:"userid"`
	Username string `json:"username,omitempty"`
	Fullname string `json:"fullname"`
}

// Service answers name autocomplete queries over active users with raw
// SQL on a dedicated pool, bypassing the ORM for latency.
type Service struct {
	pool      *pgxpool.Pool
	providers auth.ProviderMap
}

func New(pool *pgxpool.Pool, providers auth.ProviderMap) *Service {
	return &Service{pool: pool, providers: providers}
}

// escapeLike neutralizes LIKE metacharacters in user input. Square
// brackets are stripped rather than escaped; they have no wildcard
// meaning in Postgres but routinely appear in pasted display names.
func escapeLike(q string) string {
	q = strings.NewReplacer("[", "", "]", "").Replace(q)
	q = strings.ReplaceAll(q, `\`, `\\`)
	q = strings.ReplaceAll(q, "%", `\%`)
	q = strings.ReplaceAll(q, "_", `\_`)
	return q
}

// Autocomplete matches active users by username prefix, fullname
// substring, or exact userid, capped at 100 rows.
//
// A leading "@" also matches usernames on linked external accounts from
// "@"-convention services, ranked first. An embedded "@" also matches
// confirmed email addresses, ranked first. Both unions are deduplicated
// against the base result set.
func (s *Service) Autocomplete(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	like := escapeLike(strings.ToLower(query))
	if like == "" {
		return nil, nil
	}

	var ranked []Result
	switch {
	case strings.HasPrefix(query, "@"):
		services := s.providers.AtUsernameServices()
		if len(services) > 0 {
			rows, err := s.externalMatches(ctx, escapeLike(strings.ToLower(strings.TrimPrefix(query, "@"))), services)
			if err != nil {
				return nil, err
			}
			ranked = rows
		}
	case strings.Contains(query, "@"):
		rows, err := s.emailMatches(ctx, like)
		if err != nil {
			return nil, err
		}
		ranked = rows
	}

	base, err := s.baseMatches(ctx, like, query)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(ranked))
	out := make([]Result, 0, len(ranked)+len(base))
	for _, r := range ranked {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			out = append(out, r)
		}
	}
	for _, r := range base {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			out = append(out, r)
		}
	}
	if len(out) > resultCap {
		out = out[:resultCap]
	}
	return out, nil
}

func (s *Service) baseMatches(ctx context.Context, like, exact string) ([]Result, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, COALESCE(username, ''), fullname
		FROM users
		WHERE status = 'active'
		  AND (lower(username) LIKE $1 || '%'
		    OR lower(fullname) LIKE '%' || $1 || '%'
		    OR user_id = $2)
		ORDER BY fullname
		LIMIT $3`,
		like, exact, resultCap)
	if err != nil {
		return nil, fmt.Errorf("autocomplete query: %w", err)
	}
	return scanResults(rows)
}

func (s *Service) externalMatches(ctx context.Context, like string, services []string) ([]Result, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.user_id, COALESCE(u.username, ''), u.fullname
		FROM users u
		JOIN user_external_ids e ON e.user_id = u.id
		WHERE u.status = 'active'
		  AND e.service = ANY($1)
		  AND lower(e.username) LIKE $2 || '%'
		ORDER BY u.fullname
		LIMIT $3`,
		pq.Array(services), like, resultCap)
	if err != nil {
		return nil, fmt.Errorf("external id query: %w", err)
	}
	return scanResults(rows)
}

func (s *Service) emailMatches(ctx context.Context, like string) ([]Result, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.user_id, COALESCE(u.username, ''), u.fullname
		FROM users u
		JOIN confirmed_emails ce ON ce.owner_user_id = u.id
		WHERE u.status = 'active'
		  AND lower(ce.email) LIKE $1 || '%'
		ORDER BY u.fullname
		LIMIT $2`,
		like, resultCap)
	if err != nil {
		return nil, fmt.Errorf("email query: %w", err)
	}
	return scanResults(rows)
}

func scanResults(rows pgx.Rows) ([]Result, error) {
	defer rows.Close()
	var out []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.UserID, &r.Username, &r.Fullname); err != nil {
			return nil, fmt.Errorf("scanning autocomplete row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
