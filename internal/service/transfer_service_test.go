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

func newTransferService(d *repository.Directory) *TransferService {
	return NewTransferService(d, nil, NewMetricsService(), nil, zap.NewNop())
}

func seedTransferFixture(t *testing.T, d *repository.Directory) {
	t.Helper()
	require.NoError(t, d.Update(func(tx *repository.Tx) error {
		if _, err := tx.AddStudent("stu-1", "Sam"); err != nil {
			return err
		}
		if err := tx.AddSession(models.NewSession("s-old", "Math", "2026-09-01", 9)); err != nil {
			return err
		}
		if err := tx.AddSession(models.NewSession("s-new", "Art", "2026-09-01", 11)); err != nil {
			return err
		}
		old, err := tx.Session("s-old")
		if err != nil {
			return err
		}
		old.Enroll("stu-1")
		return nil
	}))
}

func TestTransferMovesStudentBetweenSessions(t *testing.T) {
	d := repository.NewDirectory()
	seedTransferFixture(t, d)

	session, err := newTransferService(d).Transfer(context.Background(), dto.TransferRequest{
		StudentID: "stu-1",
		SessionID: "s-new",
	})
	require.NoError(t, err)
	assert.Equal(t, "s-new", session.ID)
	assert.True(t, session.HasStudent("stu-1"))

	_ = d.View(func(tx *repository.Tx) error {
		old, err := tx.Session("s-old")
		require.NoError(t, err)
		assert.False(t, old.HasStudent("stu-1"))

		target, err := tx.Session("s-new")
		require.NoError(t, err)
		assert.True(t, target.HasStudent("stu-1"))
		return nil
	})
}

func TestTransferIntoCurrentSessionIsIdempotent(t *testing.T) {
	d := repository.NewDirectory()
	seedTransferFixture(t, d)

	session, err := newTransferService(d).Transfer(context.Background(), dto.TransferRequest{
		StudentID: "stu-1",
		SessionID: "s-old",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"stu-1"}, session.Enrolled)
}

func TestTransferUnknownSessionLeavesRosterUntouched(t *testing.T) {
	d := repository.NewDirectory()
	seedTransferFixture(t, d)

	_, err := newTransferService(d).Transfer(context.Background(), dto.TransferRequest{
		StudentID: "stu-1",
		SessionID: "s-ghost",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidReference))

	_ = d.View(func(tx *repository.Tx) error {
		old, err := tx.Session("s-old")
		require.NoError(t, err)
		assert.True(t, old.HasStudent("stu-1"))
		return nil
	})
}

func TestTransferUnknownStudent(t *testing.T) {
	d := repository.NewDirectory()
	seedTransferFixture(t, d)

	_, err := newTransferService(d).Transfer(context.Background(), dto.TransferRequest{
		StudentID: "ghost",
		SessionID: "s-new",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidReference))
}
