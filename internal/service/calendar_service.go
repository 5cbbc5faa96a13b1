package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/eduops/scheduling-api/internal/dto"
	"github.com/eduops/scheduling-api/internal/models"
	"github.com/eduops/scheduling-api/internal/repository"
	appErrors "github.com/eduops/scheduling-api/pkg/errors"
)

// CalendarService answers read-only day-roster queries, serving from
// the cache when a fresh payload exists.
type CalendarService struct {
	directory *repository.Directory
	cache     *CacheService
	ttl       time.Duration
	logger    *zap.Logger
}

// NewCalendarService wires the calendar query service.
func NewCalendarService(directory *repository.Directory, cache *CacheService, ttl time.Duration, logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{directory: directory, cache: cache, ttl: ttl, logger: logger}
}

// SessionsOnDate returns every session scheduled on the given date,
// ordered by hour then id, and whether the payload came from cache.
// Sessions without a teacher show "TBD".
func (s *CalendarService) SessionsOnDate(ctx context.Context, date string) ([]dto.DaySession, bool, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "date must be in YYYY-MM-DD form")
	}

	key := "calendar:" + date
	var cached []dto.DaySession
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, true, nil
	}

	result := make([]dto.DaySession, 0)
	_ = s.directory.View(func(tx *repository.Tx) error {
		for _, session := range tx.Sessions() {
			if session.Date != date {
				continue
			}
			teacherName := "TBD"
			if session.TeacherID != "" {
				if teacher, err := tx.Teacher(session.TeacherID); err == nil {
					teacherName = teacher.Name
				}
			}
			result = append(result, dto.DaySession{
				SessionID:   session.ID,
				Name:        session.Name,
				TeacherName: teacherName,
				Hour:        session.Hour,
				Enrolled:    len(session.Enrolled),
			})
		}
		return nil
	})

	sort.Slice(result, func(i, j int) bool {
		if result[i].Hour == result[j].Hour {
			return result[i].SessionID < result[j].SessionID
		}
		return result[i].Hour < result[j].Hour
	})

	_ = s.cache.Set(ctx, key, result, s.ttl)
	return result, false, nil
}
