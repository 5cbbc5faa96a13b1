package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eduops/scheduling-api/internal/dto"
	"github.com/eduops/scheduling-api/internal/models"
	"github.com/eduops/scheduling-api/internal/repository"
)

// AssignmentService matches sessions to teachers under availability and
// preference constraints, and finds substitutes when a teacher calls out.
type AssignmentService struct {
	directory *repository.Directory
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewAssignmentService wires the assignment engine.
func NewAssignmentService(directory *repository.Directory, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{directory: directory, cache: cache, metrics: metrics, logger: logger}
}

// pickTeacher selects the best candidate for a slot: teachers whose
// availability covers (date, hour), excluding excludeID, maximising the
// preference weight for that slot. Candidates iterate in directory
// insertion order and ties keep the first encountered, so selection is
// deterministic.
func pickTeacher(teachers []*models.Teacher, date string, hour int, excludeID string) (*models.Teacher, float64) {
	var best *models.Teacher
	var bestWeight float64
	for _, teacher := range teachers {
		if teacher.ID == excludeID {
			continue
		}
		if !teacher.Availability.Covers(date, hour) {
			continue
		}
		weight := teacher.Preference.Weight(date, hour)
		if best == nil || weight > bestWeight {
			best = teacher
			bestWeight = weight
		}
	}
	return best, bestWeight
}

// AssignAll walks every session and assigns the best available teacher.
// With onlyUnassigned set, sessions that already have a teacher are
// kept; otherwise the whole roster is re-solved. Sessions no available
// teacher can cover are left without one. The pass never fails.
func (s *AssignmentService) AssignAll(ctx context.Context, onlyUnassigned bool) dto.AssignmentReport {
	start := time.Now()
	report := dto.AssignmentReport{Outcomes: make([]dto.AssignmentOutcome, 0)}

	_ = s.directory.Update(func(tx *repository.Tx) error {
		teachers := tx.Teachers()
		for _, session := range tx.Sessions() {
			if onlyUnassigned && session.TeacherID != "" {
				report.Outcomes = append(report.Outcomes, dto.AssignmentOutcome{
					SessionID: session.ID,
					Status:    dto.AssignmentStatusKept,
					TeacherID: session.TeacherID,
				})
				report.Kept++
				continue
			}

			best, weight := pickTeacher(teachers, session.Date, session.Hour, "")
			if best == nil {
				report.Outcomes = append(report.Outcomes, dto.AssignmentOutcome{
					SessionID: session.ID,
					Status:    dto.AssignmentStatusNoTeacher,
				})
				report.Unassigned++
				continue
			}

			if session.TeacherID != "" && session.TeacherID != best.ID {
				if prev, err := tx.Teacher(session.TeacherID); err == nil {
					prev.Unassign(session.ID)
				}
			}
			session.TeacherID = best.ID
			best.Assign(session.ID)
			report.Outcomes = append(report.Outcomes, dto.AssignmentOutcome{
				SessionID: session.ID,
				Status:    dto.AssignmentStatusAssigned,
				TeacherID: best.ID,
				Weight:    weight,
			})
			report.Assigned++
		}
		return nil
	})

	s.metrics.RecordAssignment(report.Assigned)
	s.metrics.ObserveEngineOperation("assign_all", time.Since(start))
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, calendarCachePattern)
	}
	s.logger.Info("assignment pass completed",
		zap.Bool("only_unassigned", onlyUnassigned),
		zap.Int("assigned", report.Assigned),
		zap.Int("kept", report.Kept),
		zap.Int("unassigned", report.Unassigned))
	return report
}

// HandleCallOut reassigns every session held by the absent teacher to
// the best available substitute. The session always leaves the absent
// teacher's assigned set; when no substitute covers the slot the
// session's teacher is cleared so it surfaces as TBD and a later
// AssignAll can pick it up.
func (s *AssignmentService) HandleCallOut(ctx context.Context, teacherID string) (*dto.CallOutReport, error) {
	start := time.Now()
	report := &dto.CallOutReport{
		ReportID:  uuid.NewString(),
		TeacherID: teacherID,
		Outcomes:  make([]dto.CallOutOutcome, 0),
	}

	err := s.directory.Update(func(tx *repository.Tx) error {
		absent, err := tx.Teacher(teacherID)
		if err != nil {
			return err
		}

		assigned := append([]string(nil), absent.Assigned...)
		for _, sessionID := range assigned {
			session, err := tx.Session(sessionID)
			if err != nil {
				absent.Unassign(sessionID)
				continue
			}

			substitute, _ := pickTeacher(tx.Teachers(), session.Date, session.Hour, absent.ID)
			absent.Unassign(session.ID)

			if substitute != nil {
				session.TeacherID = substitute.ID
				substitute.Assign(session.ID)
				report.Outcomes = append(report.Outcomes, dto.CallOutOutcome{
					SessionID:    session.ID,
					Status:       dto.CallOutStatusReassigned,
					SubstituteID: substitute.ID,
				})
				report.Covered++
				s.metrics.RecordCallOut(true)
				continue
			}

			session.TeacherID = ""
			report.Outcomes = append(report.Outcomes, dto.CallOutOutcome{
				SessionID: session.ID,
				Status:    dto.CallOutStatusNoCoverage,
			})
			report.Uncovered++
			s.metrics.RecordCallOut(false)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveEngineOperation("handle_callout", time.Since(start))
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, calendarCachePattern)
	}
	s.logger.Info("call-out handled",
		zap.String("teacher_id", teacherID),
		zap.String("report_id", report.ReportID),
		zap.Int("covered", report.Covered),
		zap.Int("uncovered", report.Uncovered))
	return report, nil
}
