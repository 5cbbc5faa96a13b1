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

// TransferService handles last-minute roster changes: moving a student
// into a new session while keeping them enrolled in at most one.
type TransferService struct {
	directory *repository.Directory
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTransferService wires the roster mutator.
func NewTransferService(directory *repository.Directory, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *TransferService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransferService{directory: directory, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Transfer withdraws the student from every session and enrolls them in
// the target, returning the target session. Either endpoint missing
// yields INVALID_REFERENCE with no mutation at all.
func (s *TransferService) Transfer(ctx context.Context, req dto.TransferRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid transfer payload")
	}

	var result *models.Session
	err := s.directory.Update(func(tx *repository.Tx) error {
		if _, err := tx.Student(req.StudentID); err != nil {
			return appErrors.Clone(appErrors.ErrInvalidReference, "unknown student: "+req.StudentID)
		}
		target, err := tx.Session(req.SessionID)
		if err != nil {
			return appErrors.Clone(appErrors.ErrInvalidReference, "unknown session: "+req.SessionID)
		}

		for _, session := range tx.Sessions() {
			session.Withdraw(req.StudentID)
		}
		target.Enroll(req.StudentID)
		result = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTransfer()
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, calendarCachePattern)
	}
	s.logger.Info("student transferred",
		zap.String("student_id", req.StudentID),
		zap.String("session_id", req.SessionID))
	return result, nil
}
