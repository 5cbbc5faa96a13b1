package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eduops/scheduling-api/internal/dto"
	"github.com/eduops/scheduling-api/internal/models"
	"github.com/eduops/scheduling-api/internal/repository"
	appErrors "github.com/eduops/scheduling-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries map[string][]byte
	sets    int
	deletes int
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.deletes++
	m.entries = make(map[string][]byte)
	return nil
}

func seedCalendarFixture(t *testing.T, d *repository.Directory) {
	t.Helper()
	require.NoError(t, d.Update(func(tx *repository.Tx) error {
		teacher, err := tx.AddTeacher("t-1", "Taylor")
		if err != nil {
			return err
		}
		if _, err := tx.AddStudent("stu-1", "Sam"); err != nil {
			return err
		}

		late := models.NewSession("s-late", "Art", "2026-09-01", 14)
		early := models.NewSession("s-early", "Math", "2026-09-01", 9)
		other := models.NewSession("s-other", "History", "2026-09-02", 9)
		early.TeacherID = teacher.ID
		teacher.Assign(early.ID)
		early.Enroll("stu-1")

		for _, session := range []*models.Session{late, early, other} {
			if err := tx.AddSession(session); err != nil {
				return err
			}
		}
		return nil
	}))
}

func TestSessionsOnDateOrdersAndFiltersByDate(t *testing.T) {
	d := repository.NewDirectory()
	seedCalendarFixture(t, d)

	svc := NewCalendarService(d, nil, time.Minute, zap.NewNop())
	sessions, cached, err := svc.SessionsOnDate(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, sessions, 2)

	assert.Equal(t, "s-early", sessions[0].SessionID)
	assert.Equal(t, "Taylor", sessions[0].TeacherName)
	assert.Equal(t, 1, sessions[0].Enrolled)

	assert.Equal(t, "s-late", sessions[1].SessionID)
	assert.Equal(t, "TBD", sessions[1].TeacherName)
	assert.Equal(t, 0, sessions[1].Enrolled)
}

func TestSessionsOnDateEmptyDay(t *testing.T) {
	d := repository.NewDirectory()
	seedCalendarFixture(t, d)

	svc := NewCalendarService(d, nil, time.Minute, zap.NewNop())
	sessions, _, err := svc.SessionsOnDate(context.Background(), "2026-12-25")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessionsOnDateRejectsBadDate(t *testing.T) {
	svc := NewCalendarService(repository.NewDirectory(), nil, time.Minute, zap.NewNop())

	_, _, err := svc.SessionsOnDate(context.Background(), "01/09/2026")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestSessionsOnDateServesSecondCallFromCache(t *testing.T) {
	d := repository.NewDirectory()
	seedCalendarFixture(t, d)

	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, NewMetricsService(), time.Minute, zap.NewNop())
	svc := NewCalendarService(d, cache, time.Minute, zap.NewNop())
	ctx := context.Background()

	first, cached, err := svc.SessionsOnDate(ctx, "2026-09-01")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 1, repo.sets)

	second, cached, err := svc.SessionsOnDate(ctx, "2026-09-01")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.sets)
}

func TestCalendarCacheInvalidatedBySessionMutation(t *testing.T) {
	d := repository.NewDirectory()
	seedCalendarFixture(t, d)

	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, NewMetricsService(), time.Minute, zap.NewNop())
	calendar := NewCalendarService(d, cache, time.Minute, zap.NewNop())
	roster := NewRosterService(d, cache, nil, zap.NewNop(), 10)
	ctx := context.Background()

	_, _, err := calendar.SessionsOnDate(ctx, "2026-09-01")
	require.NoError(t, err)

	_, err = roster.AddSession(ctx, dto.AddSessionRequest{ID: "s-extra", Name: "Extra", Date: "2026-09-01", Hour: 16})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.deletes)

	sessions, cached, err := calendar.SessionsOnDate(ctx, "2026-09-01")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Len(t, sessions, 3)
}
