package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduops/scheduling-api/internal/dto"
	appErrors "github.com/eduops/scheduling-api/pkg/errors"
	"github.com/eduops/scheduling-api/pkg/response"
)

// AssignmentRunner solves teacher assignments for the whole directory.
type AssignmentRunner interface {
	AssignAll(ctx context.Context, onlyUnassigned bool) dto.AssignmentReport
	HandleCallOut(ctx context.Context, teacherID string) (*dto.CallOutReport, error)
}

// AssignmentHandler exposes the assignment engine over HTTP.
type AssignmentHandler struct {
	assignments        AssignmentRunner
	defaultKeepCurrent bool
}

// NewAssignmentHandler constructs a new AssignmentHandler. When
// defaultKeepCurrent is true, runs without an explicit flag leave
// already-staffed sessions untouched.
func NewAssignmentHandler(assignments AssignmentRunner, defaultKeepCurrent bool) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, defaultKeepCurrent: defaultKeepCurrent}
}

// Run godoc
// @Summary Assign teachers to sessions
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body dto.RunAssignmentsRequest false "Run options"
// @Success 200 {object} response.Envelope
// @Router /assignments/run [post]
func (h *AssignmentHandler) Run(c *gin.Context) {
	var req dto.RunAssignmentsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment run payload"))
			return
		}
	}
	onlyUnassigned := h.defaultKeepCurrent
	if req.OnlyUnassigned != nil {
		onlyUnassigned = *req.OnlyUnassigned
	}
	report := h.assignments.AssignAll(c.Request.Context(), onlyUnassigned)
	response.JSON(c, http.StatusOK, report)
}

// CallOut godoc
// @Summary Reassign an absent teacher's sessions
// @Tags Assignments
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/callout [post]
func (h *AssignmentHandler) CallOut(c *gin.Context) {
	report, err := h.assignments.HandleCallOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
