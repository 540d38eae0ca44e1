package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/resumatch/pkg/models"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrUserExists = errors.New("user already exists")
	ErrNotFound   = errors.New("not found")
)

// Store persists accounts and analysis history. Inserts are serialized.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewStore wraps an open database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// User operations

// CreateUser inserts an account. passwordHash must already be a one-way digest.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT INTO users (username, password, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, s.now().UTC())
	if isConstraintViolation(err) {
		return fmt.Errorf("%w: %s", ErrUserExists, username)
	}
	return err
}

func (s *Store) GetUser(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, `SELECT username, password, created_at FROM users WHERE username=?`, username).
		Scan(&user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// History operations

// AddAnalysis appends a record, assigning an ID and timestamp when unset
func (s *Store) AddAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Time.IsZero() {
		rec.Time = s.now()
	}
	rec.Time = rec.Time.UTC()

	_, err := s.db.ExecContext(ctx, `INSERT INTO history (id, user, role, jd_match, time) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.User, rec.Role, rec.JDMatch, rec.Time)
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

// History returns every record of user, oldest first
func (s *Store) History(ctx context.Context, user string) ([]*models.AnalysisRecord, error) {
	return s.queryHistory(ctx, `SELECT id, user, role, jd_match, time FROM history
		WHERE user=? ORDER BY time, rowid`, user)
}

// AllHistory returns every record, oldest first
func (s *Store) AllHistory(ctx context.Context) ([]*models.AnalysisRecord, error) {
	return s.queryHistory(ctx, `SELECT id, user, role, jd_match, time FROM history ORDER BY time, rowid`)
}

func (s *Store) queryHistory(ctx context.Context, query string, args ...any) ([]*models.AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.AnalysisRecord{}
	for rows.Next() {
		rec := &models.AnalysisRecord{}
		if err := rows.Scan(&rec.ID, &rec.User, &rec.Role, &rec.JDMatch, &rec.Time); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UserStats summarizes the history of user. The average is truncated.
func (s *Store) UserStats(ctx context.Context, user string) (models.UserStats, error) {
	var stats models.UserStats
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), AVG(jd_match) FROM history WHERE user=?`, user).
		Scan(&stats.Total, &avg)
	if err != nil {
		return stats, err
	}
	if avg.Valid {
		stats.AverageMatch = int(avg.Float64)
	}
	if stats.Total > 0 {
		stats.Gap = 100 - stats.AverageMatch
	}
	return stats, nil
}

// RoleDistribution counts how often each role was the best fit, most common first
func (s *Store) RoleDistribution(ctx context.Context) ([]models.RoleCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT role, COUNT(*) AS n FROM history
		GROUP BY role ORDER BY n DESC, role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.RoleCount{}
	for rows.Next() {
		var rc models.RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, rc)
	}
	return counts, rows.Err()
}

// DailyCounts returns the number of analyses per UTC day, oldest first
func (s *Store) DailyCounts(ctx context.Context) ([]models.DayCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT substr(time, 1, 10) AS day, COUNT(*) FROM history
		GROUP BY day ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.DayCount{}
	for rows.Next() {
		var dc models.DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
