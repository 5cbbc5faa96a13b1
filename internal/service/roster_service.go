package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eduops/scheduling-api/internal/dto"
	"github.com/eduops/scheduling-api/internal/models"
	"github.com/eduops/scheduling-api/internal/repository"
	appErrors "github.com/eduops/scheduling-api/pkg/errors"
)

// calendarCachePattern matches every cached day-roster payload. Any
// operation that can change what a calendar query returns invalidates it.
const calendarCachePattern = "calendar:*"

// RosterService populates the directory: students, teachers, sessions,
// recurring templates, and per-person availability and preferences.
type RosterService struct {
	directory      *repository.Directory
	cache          *CacheService
	validator      *validator.Validate
	logger         *zap.Logger
	expansionCount int
}

// NewRosterService wires the roster service.
func NewRosterService(directory *repository.Directory, cache *CacheService, validate *validator.Validate, logger *zap.Logger, expansionCount int) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if expansionCount <= 0 {
		expansionCount = 10
	}
	return &RosterService{
		directory:      directory,
		cache:          cache,
		validator:      validate,
		logger:         logger,
		expansionCount: expansionCount,
	}
}

// AddStudent registers a new student.
func (s *RosterService) AddStudent(ctx context.Context, req dto.AddPersonRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	var student *models.Student
	err := s.directory.Update(func(tx *repository.Tx) error {
		var err error
		student, err = tx.AddStudent(req.ID, req.Name)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("student added", zap.String("student_id", req.ID))
	return student, nil
}

// AddTeacher registers a new teacher.
func (s *RosterService) AddTeacher(ctx context.Context, req dto.AddPersonRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	var teacher *models.Teacher
	err := s.directory.Update(func(tx *repository.Tx) error {
		var err error
		teacher, err = tx.AddTeacher(req.ID, req.Name)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("teacher added", zap.String("teacher_id", req.ID))
	return teacher, nil
}

// AddSession registers one concrete session.
func (s *RosterService) AddSession(ctx context.Context, req dto.AddSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	session := models.NewSession(req.ID, req.Name, req.Date, req.Hour)
	err := s.directory.Update(func(tx *repository.Tx) error {
		return tx.AddSession(session)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	s.logger.Info("session added", zap.String("session_id", req.ID), zap.String("date", req.Date), zap.Int("hour", req.Hour))
	return session, nil
}

// AddRecurringSession expands a template into its bounded run of
// sessions and inserts every instance. Insertion is all-or-nothing: a
// composite-id collision rejects the whole template.
func (s *RosterService) AddRecurringSession(ctx context.Context, req dto.AddRecurringSessionRequest) ([]*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid recurring session payload")
	}
	template := models.RecurringSessionTemplate{
		ID:        req.ID,
		Name:      req.Name,
		StartDate: req.StartDate,
		Hour:      req.Hour,
		Frequency: models.Frequency(req.Frequency),
		Count:     s.expansionCount,
	}
	sessions, err := template.Expand()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to expand recurring session")
	}
	err = s.directory.Update(func(tx *repository.Tx) error {
		for _, session := range sessions {
			if _, lookupErr := tx.Session(session.ID); lookupErr == nil {
				return appErrors.Clone(appErrors.ErrDuplicateID, "session id already in use: "+session.ID)
			}
		}
		for _, session := range sessions {
			if addErr := tx.AddSession(session); addErr != nil {
				return addErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	s.logger.Info("recurring session expanded",
		zap.String("template_id", req.ID),
		zap.String("frequency", req.Frequency),
		zap.Int("instances", len(sessions)))
	return sessions, nil
}

// SetAvailability replaces the available hours for the listed dates on
// any person, student or teacher.
func (s *RosterService) SetAvailability(ctx context.Context, personID string, req dto.SetAvailabilityRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	return s.directory.Update(func(tx *repository.Tx) error {
		person, err := tx.Person(personID)
		if err != nil {
			return err
		}
		for _, entry := range req.Entries {
			person.SetAvailability(entry.Date, entry.Hours)
		}
		return nil
	})
}

// SetPreference replaces the hour weights for the listed dates on any person.
func (s *RosterService) SetPreference(ctx context.Context, personID string, req dto.SetPreferenceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preference payload")
	}
	return s.directory.Update(func(tx *repository.Tx) error {
		person, err := tx.Person(personID)
		if err != nil {
			return err
		}
		for _, entry := range req.Entries {
			person.SetPreference(entry.Date, entry.Weights)
		}
		return nil
	})
}

func (s *RosterService) invalidateCalendar(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, calendarCachePattern)
	}
}
