package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/khrees2412/resumatch/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestDB creates a migrated database in a temp directory
func createTestDB(tb testing.TB) *sql.DB {
	tb.Helper()
	db, err := Open(filepath.Join(tb.TempDir(), "nested", "test.db"))
	require.NoError(tb, err)
	tb.Cleanup(func() { db.Close() })
	return db
}

// newTestStore returns a store whose clock advances one minute per call
func newTestStore(tb testing.TB) *Store {
	s := NewStore(createTestDB(tb))
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	calls := 0
	s.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return s
}

func TestRunMigrationsIdempotent(t *testing.T) {
	db := createTestDB(t)
	assert.NoError(t, RunMigrations(db))
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "$argon2id$digest"))

	err := s.CreateUser(ctx, "alice", "$argon2id$other")
	assert.ErrorIs(t, err, ErrUserExists)

	user, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$argon2id$digest", user.PasswordHash, "duplicate signup must not overwrite")
	assert.False(t, user.CreatedAt.IsZero())

	_, err = s.GetUser(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAddAnalysisAndHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, match := range []int{40, 60, 80} {
		rec := &models.AnalysisRecord{User: "alice", Role: "Data Analyst", JDMatch: match}
		require.NoError(t, s.AddAnalysis(ctx, rec), "record %d", i)
		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.Time.IsZero())
	}
	require.NoError(t, s.AddAnalysis(ctx, &models.AnalysisRecord{User: "bob", Role: "ML Engineer", JDMatch: 10}))

	history, err := s.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, want := range []int{40, 60, 80} {
		assert.Equal(t, want, history[i].JDMatch)
		assert.Equal(t, "alice", history[i].User)
	}
	assert.True(t, history[0].Time.Before(history[2].Time))

	all, err := s.AllHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	empty, err := s.History(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAddAnalysisKeepsExplicitTime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	at := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	require.NoError(t, s.AddAnalysis(ctx, &models.AnalysisRecord{ID: "fixed", User: "alice", Role: "QA Engineer", JDMatch: 5, Time: at}))

	history, err := s.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "fixed", history[0].ID)
	assert.True(t, at.Equal(history[0].Time))
}

func TestAddAnalysisRejectsOutOfRange(t *testing.T) {
	s := newTestStore(t)
	err := s.AddAnalysis(context.Background(), &models.AnalysisRecord{User: "alice", Role: "x", JDMatch: 150})
	assert.Error(t, err)
}

func TestUserStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stats, err := s.UserStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{}, stats)

	for _, m := range []int{50, 61} {
		require.NoError(t, s.AddAnalysis(ctx, &models.AnalysisRecord{User: "alice", Role: "r", JDMatch: m}))
	}
	stats, err = s.UserStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{Total: 2, AverageMatch: 55, Gap: 45}, stats)
}

func TestRoleDistributionAndDailyCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	day1 := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	records := []models.AnalysisRecord{
		{User: "a", Role: "Data Analyst", JDMatch: 10, Time: day1},
		{User: "b", Role: "ML Engineer", JDMatch: 20, Time: day1.Add(time.Hour)},
		{User: "a", Role: "Data Analyst", JDMatch: 30, Time: day2},
	}
	for i := range records {
		require.NoError(t, s.AddAnalysis(ctx, &records[i]))
	}

	roles, err := s.RoleDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.RoleCount{{Role: "Data Analyst", Count: 2}, {Role: "ML Engineer", Count: 1}}, roles)

	days, err := s.DailyCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.DayCount{{Day: "2026-01-05", Count: 2}, {Day: "2026-01-06", Count: 1}}, days)
}

func TestConcurrentAddAnalysis(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := &models.AnalysisRecord{User: fmt.Sprintf("user%d", i%4), Role: "r", JDMatch: i}
			assert.NoError(t, s.AddAnalysis(ctx, rec))
		}(i)
	}
	wg.Wait()

	all, err := s.AllHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

func BenchmarkAddAnalysis(b *testing.B) {
	s := newTestStore(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.AddAnalysis(ctx, &models.AnalysisRecord{User: "bench", Role: "r", JDMatch: i % 101})
	}
}
