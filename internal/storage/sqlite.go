package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"earnbot/internal/model"
	"earnbot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// Library entries stay listed until their deadline; they are purged
// once the deadline is more than a day in the past.
const expiredGrace = 24 * time.Hour

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=OFF"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("disable foreign keys: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// UpsertUser inserts a user or refreshes their username and first name.
func (s *SQLite) UpsertUser(ctx context.Context, user *model.User) error {
	now := time.Now().UTC().Format(timeLayout)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (telegram_id, username, first_name, is_active, created_at)
		 VALUES (?, ?, ?, 1, ?)
		 ON CONFLICT (telegram_id) DO UPDATE SET username = excluded.username, first_name = excluded.first_name`,
		user.TelegramID, user.Username, user.FirstName, now,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// GetUser returns a single user by Telegram ID.
func (s *SQLite) GetUser(ctx context.Context, telegramID int64) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT telegram_id, username, first_name, is_active, created_at FROM users WHERE telegram_id = ?`,
		telegramID,
	)
	var u model.User
	var isActive int
	var created sql.NullString
	if err := row.Scan(&u.TelegramID, &u.Username, &u.FirstName, &isActive, &created); err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.IsActive = isActive == 1
	if created.Valid {
		u.CreatedAt, _ = time.Parse(timeLayout, created.String)
	}
	return &u, nil
}

// SetUserActive toggles whether a user receives notifications.
func (s *SQLite) SetUserActive(ctx context.Context, telegramID int64, active bool) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET is_active = ? WHERE telegram_id = ?`,
		boolToInt(active), telegramID,
	)
	if err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	return nil
}

// GetPreferences returns the user's preferences, or nil if none exist.
func (s *SQLite) GetPreferences(ctx context.Context, userID int64) (*model.UserPreferences, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, min_usd_value, max_usd_value, bounties, projects, skills
		 FROM preferences WHERE user_id = ?`, userID,
	)
	p, err := scanPreferences(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertPreferences creates or fully replaces a user's preferences.
func (s *SQLite) UpsertPreferences(ctx context.Context, prefs *model.UserPreferences) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (user_id, min_usd_value, max_usd_value, bounties, projects, skills)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   min_usd_value = excluded.min_usd_value,
		   max_usd_value = excluded.max_usd_value,
		   bounties = excluded.bounties,
		   projects = excluded.projects,
		   skills = excluded.skills`,
		prefs.UserID, prefs.MinUSDValue, prefs.MaxUSDValue,
		boolToInt(prefs.Bounties), boolToInt(prefs.Projects), joinSkills(prefs.Skills),
	)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

// ListNotifiableUsers returns all active users with their preferences
// attached. Users without a preferences row get nil Preferences.
func (s *SQLite) ListNotifiableUsers(ctx context.Context) ([]model.NotifiableUser, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.telegram_id, u.first_name,
		        p.user_id, p.min_usd_value, p.max_usd_value, p.bounties, p.projects, p.skills
		 FROM users u
		 LEFT JOIN preferences p ON p.user_id = u.telegram_id
		 WHERE u.is_active = 1
		 ORDER BY u.telegram_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query notifiable users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []model.NotifiableUser
	for rows.Next() {
		var u model.NotifiableUser
		var prefUserID sql.NullInt64
		var minUSD, maxUSD sql.NullFloat64
		var bounties, projects sql.NullInt64
		var skills sql.NullString
		if err := rows.Scan(&u.TelegramID, &u.FirstName,
			&prefUserID, &minUSD, &maxUSD, &bounties, &projects, &skills); err != nil {
			return nil, fmt.Errorf("scan notifiable user: %w", err)
		}
		if prefUserID.Valid {
			p := model.UserPreferences{
				UserID:   prefUserID.Int64,
				Bounties: bounties.Int64 == 1,
				Projects: projects.Int64 == 1,
				Skills:   splitSkills(skills.String),
			}
			if minUSD.Valid {
				v := minUSD.Float64
				p.MinUSDValue = &v
			}
			if maxUSD.Valid {
				v := maxUSD.Float64
				p.MaxUSDValue = &v
			}
			u.Preferences = &p
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SaveListing adds a listing to the user's library. Saving the same
// listing again refreshes the saved-at timestamp.
func (s *SQLite) SaveListing(ctx context.Context, entry *model.SavedListing) error {
	now := time.Now().UTC().Format(timeLayout)
	var deadline *string
	if entry.Deadline != nil {
		v := entry.Deadline.UTC().Format(timeLayout)
		deadline = &v
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO library (user_id, listing_id, title, slug, sponsor, reward_text, deadline, url, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, listing_id) DO UPDATE SET saved_at = excluded.saved_at`,
		entry.UserID, entry.ListingID, entry.Title, entry.Slug, entry.Sponsor,
		entry.RewardText, deadline, entry.URL, now,
	)
	if err != nil {
		return fmt.Errorf("save listing: %w", err)
	}
	entry.SavedAt, _ = time.Parse(timeLayout, now)
	return nil
}

// ListSavedListings returns the user's unexpired library entries,
// soonest deadline first. Entries without a deadline sort last.
func (s *SQLite) ListSavedListings(ctx context.Context, userID int64) ([]model.SavedListing, error) {
	now := time.Now().UTC().Format(timeLayout)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, listing_id, title, slug, sponsor, reward_text, deadline, url, saved_at
		 FROM library
		 WHERE user_id = ? AND (deadline IS NULL OR deadline >= ?)
		 ORDER BY deadline IS NULL, deadline, id`,
		userID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("query library: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var saved []model.SavedListing
	for rows.Next() {
		entry, err := scanSavedListing(rows)
		if err != nil {
			return nil, err
		}
		saved = append(saved, entry)
	}
	return saved, rows.Err()
}

// DeleteExpiredSaved removes library entries whose deadline passed more
// than a day ago and returns how many were removed.
func (s *SQLite) DeleteExpiredSaved(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-expiredGrace).Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM library WHERE deadline IS NOT NULL AND deadline < ?`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired saved: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func joinSkills(skills []string) string {
	return strings.Join(skills, ",")
}

func splitSkills(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

type scannable interface {
	Scan(dest ...any) error
}

func scanPreferences(row scannable) (*model.UserPreferences, error) {
	var p model.UserPreferences
	var minUSD, maxUSD sql.NullFloat64
	var bounties, projects int
	var skills string
	err := row.Scan(&p.UserID, &minUSD, &maxUSD, &bounties, &projects, &skills)
	if err != nil {
		return nil, err
	}
	p.Bounties = bounties == 1
	p.Projects = projects == 1
	p.Skills = splitSkills(skills)
	if minUSD.Valid {
		v := minUSD.Float64
		p.MinUSDValue = &v
	}
	if maxUSD.Valid {
		v := maxUSD.Float64
		p.MaxUSDValue = &v
	}
	return &p, nil
}

func scanSavedListing(row scannable) (model.SavedListing, error) {
	var e model.SavedListing
	var deadline, saved sql.NullString
	err := row.Scan(&e.ID, &e.UserID, &e.ListingID, &e.Title, &e.Slug,
		&e.Sponsor, &e.RewardText, &deadline, &e.URL, &saved)
	if err != nil {
		return e, fmt.Errorf("scan saved listing: %w", err)
	}
	if deadline.Valid {
		t, _ := time.Parse(timeLayout, deadline.String)
		e.Deadline = &t
	}
	if saved.Valid {
		e.SavedAt, _ = time.Parse(timeLayout, saved.String)
	}
	return e, nil
}
