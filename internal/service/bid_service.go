package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eduops/scheduling-api/internal/dto"
	"github.com/eduops/scheduling-api/internal/models"
	"github.com/eduops/scheduling-api/internal/repository"
	appErrors "github.com/eduops/scheduling-api/pkg/errors"
)

// BidService records student interest in sessions and resolves the
// accumulated bids into enrollment in bulk.
type BidService struct {
	directory *repository.Directory
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBidService wires the bid ledger.
func NewBidService(directory *repository.Directory, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BidService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BidService{directory: directory, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// PlaceBid appends a bid to the student's outstanding list. Duplicates
// are allowed and the target session is deliberately not verified here;
// dangling bids are skipped (and counted) at resolution time.
func (s *BidService) PlaceBid(ctx context.Context, req dto.PlaceBidRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bid payload")
	}
	err := s.directory.Update(func(tx *repository.Tx) error {
		student, err := tx.Student(req.StudentID)
		if err != nil {
			return err
		}
		student.PlaceBid(models.Bid{StudentID: req.StudentID, SessionID: req.SessionID})
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("bid placed", zap.String("student_id", req.StudentID), zap.String("session_id", req.SessionID))
	return nil
}

// ResolveBids enrolls every bidding student into their target sessions.
// Enrollment is a set, so duplicate bids collapse and resolution is
// idempotent. Students iterate in directory insertion order and bids in
// submission order; the final enrolled sets do not depend on either.
func (s *BidService) ResolveBids(ctx context.Context) dto.ResolveBidsResult {
	start := time.Now()
	var result dto.ResolveBidsResult

	_ = s.directory.Update(func(tx *repository.Tx) error {
		for _, student := range tx.Students() {
			for _, bid := range student.Bids {
				result.BidsSeen++
				session, err := tx.Session(bid.SessionID)
				if err != nil {
					result.Dangling++
					continue
				}
				if session.Enroll(bid.StudentID) {
					result.Enrollments++
				} else {
					result.Duplicates++
				}
			}
		}
		return nil
	})

	s.metrics.RecordBidsResolved(result.Enrollments)
	s.metrics.ObserveEngineOperation("resolve_bids", time.Since(start))
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, calendarCachePattern)
	}
	s.logger.Info("bids resolved",
		zap.Int("bids_seen", result.BidsSeen),
		zap.Int("enrollments", result.Enrollments),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("dangling", result.Dangling))
	return result
}
