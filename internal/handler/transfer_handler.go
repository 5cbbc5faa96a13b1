package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduops/scheduling-api/internal/dto"
	"github.com/eduops/scheduling-api/internal/service"
	appErrors "github.com/eduops/scheduling-api/pkg/errors"
	"github.com/eduops/scheduling-api/pkg/response"
)

// TransferHandler exposes the single-enrollment transfer endpoint.
type TransferHandler struct {
	transfers *service.TransferService
}

// NewTransferHandler constructs a new TransferHandler.
func NewTransferHandler(transfers *service.TransferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

// Transfer godoc
// @Summary Move a student into a session, withdrawing them everywhere else
// @Tags Transfers
// @Accept json
// @Produce json
// @Param payload body dto.TransferRequest true "Transfer payload"
// @Success 200 {object} response.Envelope
// @Router /transfers [post]
func (h *TransferHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid transfer payload"))
		return
	}
	session, err := h.transfers.Transfer(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}
