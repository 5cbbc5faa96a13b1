package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduops/scheduling-api/internal/dto"
	"github.com/eduops/scheduling-api/internal/service"
	appErrors "github.com/eduops/scheduling-api/pkg/errors"
	"github.com/eduops/scheduling-api/pkg/response"
)

// RosterHandler wires directory population to HTTP routes.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler constructs a new RosterHandler.
func NewRosterHandler(roster *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// AddStudent godoc
// @Summary Register a student
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.AddPersonRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *RosterHandler) AddStudent(c *gin.Context) {
	var req dto.AddPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	student, err := h.roster.AddStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// AddTeacher godoc
// @Summary Register a teacher
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.AddPersonRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Router /teachers [post]
func (h *RosterHandler) AddTeacher(c *gin.Context) {
	var req dto.AddPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher payload"))
		return
	}
	teacher, err := h.roster.AddTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// AddSession godoc
// @Summary Register a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.AddSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *RosterHandler) AddSession(c *gin.Context) {
	var req dto.AddSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}
	session, err := h.roster.AddSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// AddRecurringSession godoc
// @Summary Register a recurring session template
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.AddRecurringSessionRequest true "Template payload"
// @Success 201 {object} response.Envelope
// @Router /sessions/recurring [post]
func (h *RosterHandler) AddRecurringSession(c *gin.Context) {
	var req dto.AddRecurringSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid recurring session payload"))
		return
	}
	sessions, err := h.roster.AddRecurringSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sessions)
}

// SetAvailability godoc
// @Summary Replace a person's availability
// @Tags Roster
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param payload body dto.SetAvailabilityRequest true "Availability payload"
// @Success 204
// @Router /people/{id}/availability [put]
func (h *RosterHandler) SetAvailability(c *gin.Context) {
	var req dto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability payload"))
		return
	}
	if err := h.roster.SetAvailability(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetPreference godoc
// @Summary Replace a person's preference weights
// @Tags Roster
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param payload body dto.SetPreferenceRequest true "Preference payload"
// @Success 204
// @Router /people/{id}/preferences [put]
func (h *RosterHandler) SetPreference(c *gin.Context) {
	var req dto.SetPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid preference payload"))
		return
	}
	if err := h.roster.SetPreference(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
