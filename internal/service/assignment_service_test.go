package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eduops/scheduling-api/internal/dto"
	"github.com/eduops/scheduling-api/internal/models"
	"github.com/eduops/scheduling-api/internal/repository"
	appErrors "github.com/eduops/scheduling-api/pkg/errors"
)

func newAssignmentService(d *repository.Directory) *AssignmentService {
	return NewAssignmentService(d, nil, NewMetricsService(), zap.NewNop())
}

func addTeacher(t *testing.T, d *repository.Directory, id, name, date string, hours []int, weights map[int]float64) {
	t.Helper()
	require.NoError(t, d.Update(func(tx *repository.Tx) error {
		teacher, err := tx.AddTeacher(id, name)
		if err != nil {
			return err
		}
		if hours != nil {
			teacher.SetAvailability(date, hours)
		}
		if weights != nil {
			teacher.SetPreference(date, weights)
		}
		return nil
	}))
}

func addSession(t *testing.T, d *repository.Directory, id, name, date string, hour int) {
	t.Helper()
	require.NoError(t, d.Update(func(tx *repository.Tx) error {
		return tx.AddSession(models.NewSession(id, name, date, hour))
	}))
}

func TestAssignAllRespectsAvailability(t *testing.T) {
	d := repository.NewDirectory()
	addTeacher(t, d, "t-1", "Taylor", "2026-09-01", []int{9, 10}, nil)
	addSession(t, d, "s-1", "Math", "2026-09-01", 9)
	addSession(t, d, "s-2", "Art", "2026-09-01", 13)

	report := newAssignmentService(d).AssignAll(context.Background(), true)

	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, 1, report.Assigned)
	assert.Equal(t, 1, report.Unassigned)
	assert.Equal(t, dto.AssignmentStatusAssigned, report.Outcomes[0].Status)
	assert.Equal(t, "t-1", report.Outcomes[0].TeacherID)
	assert.Equal(t, dto.AssignmentStatusNoTeacher, report.Outcomes[1].Status)

	_ = d.View(func(tx *repository.Tx) error {
		session, err := tx.Session("s-1")
		require.NoError(t, err)
		assert.Equal(t, "t-1", session.TeacherID)

		uncovered, err := tx.Session("s-2")
		require.NoError(t, err)
		assert.Empty(t, uncovered.TeacherID)

		teacher, err := tx.Teacher("t-1")
		require.NoError(t, err)
		assert.True(t, teacher.HasAssigned("s-1"))
		return nil
	})
}

func TestAssignAllPicksHighestPreferenceWeight(t *testing.T) {
	d := repository.NewDirectory()
	addTeacher(t, d, "t-low", "Low", "2026-09-01", []int{9}, map[int]float64{9: 1})
	addTeacher(t, d, "t-high", "High", "2026-09-01", []int{9}, map[int]float64{9: 5})
	addSession(t, d, "s-1", "Math", "2026-09-01", 9)

	report := newAssignmentService(d).AssignAll(context.Background(), true)

	require.Equal(t, 1, report.Assigned)
	assert.Equal(t, "t-high", report.Outcomes[0].TeacherID)
	assert.Equal(t, 5.0, report.Outcomes[0].Weight)
}

func TestAssignAllTieKeepsFirstInserted(t *testing.T) {
	d := repository.NewDirectory()
	addTeacher(t, d, "t-first", "First", "2026-09-01", []int{9}, map[int]float64{9: 2})
	addTeacher(t, d, "t-second", "Second", "2026-09-01", []int{9}, map[int]float64{9: 2})
	addSession(t, d, "s-1", "Math", "2026-09-01", 9)

	report := newAssignmentService(d).AssignAll(context.Background(), true)

	assert.Equal(t, "t-first", report.Outcomes[0].TeacherID)
}

func TestAssignAllKeepsStaffedSessions(t *testing.T) {
	d := repository.NewDirectory()
	addTeacher(t, d, "t-1", "Taylor", "2026-09-01", []int{9}, map[int]float64{9: 1})
	addTeacher(t, d, "t-2", "Morgan", "2026-09-01", []int{9}, map[int]float64{9: 9})
	addSession(t, d, "s-1", "Math", "2026-09-01", 9)

	require.NoError(t, d.Update(func(tx *repository.Tx) error {
		session, err := tx.Session("s-1")
		if err != nil {
			return err
		}
		session.TeacherID = "t-1"
		teacher, err := tx.Teacher("t-1")
		if err != nil {
			return err
		}
		teacher.Assign("s-1")
		return nil
	}))

	report := newAssignmentService(d).AssignAll(context.Background(), true)

	require.Equal(t, 1, report.Kept)
	assert.Equal(t, dto.AssignmentStatusKept, report.Outcomes[0].Status)
	assert.Equal(t, "t-1", report.Outcomes[0].TeacherID)
}

func TestAssignAllFullReSolveMovesSession(t *testing.T) {
	d := repository.NewDirectory()
	addTeacher(t, d, "t-1", "Taylor", "2026-09-01", []int{9}, map[int]float64{9: 1})
	addTeacher(t, d, "t-2", "Morgan", "2026-09-01", []int{9}, map[int]float64{9: 9})
	addSession(t, d, "s-1", "Math", "2026-09-01", 9)

	svc := newAssignmentService(d)
	_ = svc.AssignAll(context.Background(), true)

	// First pass gives the slot to t-2 outright; force it onto t-1 to
	// observe the re-solve moving it back.
	require.NoError(t, d.Update(func(tx *repository.Tx) error {
		session, err := tx.Session("s-1")
		if err != nil {
			return err
		}
		if prev, err := tx.Teacher(session.TeacherID); err == nil {
			prev.Unassign(session.ID)
		}
		session.TeacherID = "t-1"
		teacher, err := tx.Teacher("t-1")
		if err != nil {
			return err
		}
		teacher.Assign("s-1")
		return nil
	}))

	report := svc.AssignAll(context.Background(), false)

	require.Equal(t, 1, report.Assigned)
	assert.Equal(t, "t-2", report.Outcomes[0].TeacherID)

	_ = d.View(func(tx *repository.Tx) error {
		previous, err := tx.Teacher("t-1")
		require.NoError(t, err)
		assert.False(t, previous.HasAssigned("s-1"))

		current, err := tx.Teacher("t-2")
		require.NoError(t, err)
		assert.True(t, current.HasAssigned("s-1"))
		return nil
	})
}

func TestHandleCallOutReassignsToSubstitute(t *testing.T) {
	d := repository.NewDirectory()
	addTeacher(t, d, "t-absent", "Absent", "2026-09-01", []int{9}, nil)
	addTeacher(t, d, "t-sub", "Substitute", "2026-09-01", []int{9}, nil)
	addSession(t, d, "s-1", "Math", "2026-09-01", 9)

	svc := newAssignmentService(d)
	_ = svc.AssignAll(context.Background(), true)

	report, err := svc.HandleCallOut(context.Background(), "t-absent")
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)
	assert.NotEmpty(t, report.ReportID)
	assert.Equal(t, 1, report.Covered)
	assert.Equal(t, dto.CallOutStatusReassigned, report.Outcomes[0].Status)
	assert.Equal(t, "t-sub", report.Outcomes[0].SubstituteID)

	_ = d.View(func(tx *repository.Tx) error {
		session, err := tx.Session("s-1")
		require.NoError(t, err)
		assert.Equal(t, "t-sub", session.TeacherID)

		absent, err := tx.Teacher("t-absent")
		require.NoError(t, err)
		assert.False(t, absent.HasAssigned("s-1"))

		sub, err := tx.Teacher("t-sub")
		require.NoError(t, err)
		assert.True(t, sub.HasAssigned("s-1"))
		return nil
	})
}

func TestHandleCallOutPrefersHigherWeightSubstitute(t *testing.T) {
	d := repository.NewDirectory()
	addTeacher(t, d, "t-absent", "Absent", "2026-09-01", []int{9}, map[int]float64{9: 10})
	addTeacher(t, d, "t-low", "Low", "2026-09-01", []int{9}, map[int]float64{9: 1})
	addTeacher(t, d, "t-high", "High", "2026-09-01", []int{9}, map[int]float64{9: 5})
	addSession(t, d, "s-1", "Math", "2026-09-01", 9)

	svc := newAssignmentService(d)
	_ = svc.AssignAll(context.Background(), true)

	report, err := svc.HandleCallOut(context.Background(), "t-absent")
	require.NoError(t, err)
	require.Equal(t, 1, report.Covered)
	assert.Equal(t, "t-high", report.Outcomes[0].SubstituteID)
}

func TestHandleCallOutNeverPicksAbsentTeacher(t *testing.T) {
	d := repository.NewDirectory()
	addTeacher(t, d, "t-absent", "Absent", "2026-09-01", []int{9}, map[int]float64{9: 10})
	addSession(t, d, "s-1", "Math", "2026-09-01", 9)

	svc := newAssignmentService(d)
	_ = svc.AssignAll(context.Background(), true)

	report, err := svc.HandleCallOut(context.Background(), "t-absent")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Uncovered)
	assert.Equal(t, dto.CallOutStatusNoCoverage, report.Outcomes[0].Status)

	_ = d.View(func(tx *repository.Tx) error {
		session, err := tx.Session("s-1")
		require.NoError(t, err)
		assert.Empty(t, session.TeacherID)

		absent, err := tx.Teacher("t-absent")
		require.NoError(t, err)
		assert.Empty(t, absent.Assigned)
		return nil
	})
}

func TestHandleCallOutUnknownTeacher(t *testing.T) {
	d := repository.NewDirectory()

	_, err := newAssignmentService(d).HandleCallOut(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownTeacher))
}

func TestHandleCallOutUncoveredSessionPicksUpOnNextPass(t *testing.T) {
	d := repository.NewDirectory()
	addTeacher(t, d, "t-absent", "Absent", "2026-09-01", []int{9}, nil)
	addSession(t, d, "s-1", "Math", "2026-09-01", 9)

	svc := newAssignmentService(d)
	_ = svc.AssignAll(context.Background(), true)
	_, err := svc.HandleCallOut(context.Background(), "t-absent")
	require.NoError(t, err)

	addTeacher(t, d, "t-new", "New Hire", "2026-09-01", []int{9}, nil)
	report := svc.AssignAll(context.Background(), true)

	require.Equal(t, 1, report.Assigned)
	assert.Equal(t, "t-new", report.Outcomes[0].TeacherID)
}
