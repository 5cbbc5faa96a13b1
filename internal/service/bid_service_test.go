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

func newBidService(d *repository.Directory) *BidService {
	return NewBidService(d, nil, NewMetricsService(), nil, zap.NewNop())
}

func seedStudent(t *testing.T, d *repository.Directory, id, name string) {
	t.Helper()
	require.NoError(t, d.Update(func(tx *repository.Tx) error {
		_, err := tx.AddStudent(id, name)
		return err
	}))
}

func TestPlaceBidUnknownStudent(t *testing.T) {
	d := repository.NewDirectory()

	err := newBidService(d).PlaceBid(context.Background(), dto.PlaceBidRequest{StudentID: "ghost", SessionID: "s-1"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownStudent))
}

func TestPlaceBidDoesNotVerifySession(t *testing.T) {
	d := repository.NewDirectory()
	seedStudent(t, d, "stu-1", "Sam")

	err := newBidService(d).PlaceBid(context.Background(), dto.PlaceBidRequest{StudentID: "stu-1", SessionID: "not-yet-created"})
	require.NoError(t, err)

	_ = d.View(func(tx *repository.Tx) error {
		student, err := tx.Student("stu-1")
		require.NoError(t, err)
		require.Len(t, student.Bids, 1)
		assert.Equal(t, "not-yet-created", student.Bids[0].SessionID)
		return nil
	})
}

func TestResolveBidsEnrollsAndCountsDuplicates(t *testing.T) {
	d := repository.NewDirectory()
	seedStudent(t, d, "stu-1", "Sam")
	seedStudent(t, d, "stu-2", "Alex")
	require.NoError(t, d.Update(func(tx *repository.Tx) error {
		return tx.AddSession(models.NewSession("s-1", "Math", "2026-09-01", 9))
	}))

	svc := newBidService(d)
	ctx := context.Background()
	require.NoError(t, svc.PlaceBid(ctx, dto.PlaceBidRequest{StudentID: "stu-1", SessionID: "s-1"}))
	require.NoError(t, svc.PlaceBid(ctx, dto.PlaceBidRequest{StudentID: "stu-1", SessionID: "s-1"}))
	require.NoError(t, svc.PlaceBid(ctx, dto.PlaceBidRequest{StudentID: "stu-2", SessionID: "s-1"}))
	require.NoError(t, svc.PlaceBid(ctx, dto.PlaceBidRequest{StudentID: "stu-2", SessionID: "s-missing"}))

	result := svc.ResolveBids(ctx)

	assert.Equal(t, 4, result.BidsSeen)
	assert.Equal(t, 2, result.Enrollments)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 1, result.Dangling)

	_ = d.View(func(tx *repository.Tx) error {
		session, err := tx.Session("s-1")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"stu-1", "stu-2"}, session.Enrolled)
		return nil
	})
}

func TestResolveBidsIsIdempotent(t *testing.T) {
	d := repository.NewDirectory()
	seedStudent(t, d, "stu-1", "Sam")
	require.NoError(t, d.Update(func(tx *repository.Tx) error {
		return tx.AddSession(models.NewSession("s-1", "Math", "2026-09-01", 9))
	}))

	svc := newBidService(d)
	ctx := context.Background()
	require.NoError(t, svc.PlaceBid(ctx, dto.PlaceBidRequest{StudentID: "stu-1", SessionID: "s-1"}))

	first := svc.ResolveBids(ctx)
	assert.Equal(t, 1, first.Enrollments)

	// Bids stay on the ledger; a second pass finds them all duplicates.
	second := svc.ResolveBids(ctx)
	assert.Equal(t, 1, second.BidsSeen)
	assert.Equal(t, 0, second.Enrollments)
	assert.Equal(t, 1, second.Duplicates)

	_ = d.View(func(tx *repository.Tx) error {
		session, err := tx.Session("s-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"stu-1"}, session.Enrolled)
		return nil
	})
}

func TestResolveBidsEmptyLedger(t *testing.T) {
	d := repository.NewDirectory()

	result := newBidService(d).ResolveBids(context.Background())
	assert.Zero(t, result.BidsSeen)
	assert.Zero(t, result.Enrollments)
}
