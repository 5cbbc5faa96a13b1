package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduops/scheduling-api/internal/dto"
	"github.com/eduops/scheduling-api/internal/service"
	appErrors "github.com/eduops/scheduling-api/pkg/errors"
	"github.com/eduops/scheduling-api/pkg/response"
)

// BidHandler exposes enrollment bid endpoints.
type BidHandler struct {
	bids *service.BidService
}

// NewBidHandler constructs a new BidHandler.
func NewBidHandler(bids *service.BidService) *BidHandler {
	return &BidHandler{bids: bids}
}

// PlaceBid godoc
// @Summary Record a student's bid for a session
// @Tags Bids
// @Accept json
// @Produce json
// @Param payload body dto.PlaceBidRequest true "Bid payload"
// @Success 201 {object} response.Envelope
// @Router /bids [post]
func (h *BidHandler) PlaceBid(c *gin.Context) {
	var req dto.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bid payload"))
		return
	}
	if err := h.bids.PlaceBid(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, req)
}

// ResolveBids godoc
// @Summary Convert pending bids into enrollments
// @Tags Bids
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /bids/resolve [post]
func (h *BidHandler) ResolveBids(c *gin.Context) {
	result := h.bids.ResolveBids(c.Request.Context())
	response.JSON(c, http.StatusOK, result)
}
