package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/server/http/dto"
	"github.com/polkiloo/eatery/internal/usecase"
)

const notSavedMessage = "status shown locally only, the change was not saved"

// AdminHandler serves the admin dashboard API. Routes are mounted behind
// AdminRequired; the facade checks the role again.
type AdminHandler struct {
	facade AdminFacade
}

func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// List handles GET /api/admin/orders?search=&status=&date=.
func (h *AdminHandler) List(c *gin.Context) {
	listing, err := h.facade.ListOrders(c.Request.Context(), CurrentIdentity(c), filterFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{
		Orders: toOrderResponses(listing.Orders),
		Counts: toCountsResponse(listing.Counts),
	})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	counts, err := h.facade.OrderStats(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCountsResponse(counts))
}

// UpdateStatus handles PATCH /api/admin/orders/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}

	update, err := h.facade.UpdateOrderStatus(c.Request.Context(), CurrentIdentity(c), c.Param("id"), model.OrderStatus(req.Status))
	if update != nil && !update.Durable {
		// The caller may keep the requested status on screen, flagged as unsaved.
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, dto.StatusUpdateResponse{
			OrderID:  update.OrderID,
			Previous: string(update.Previous),
			Status:   string(update.Current),
			Durable:  false,
			Message:  notSavedMessage,
		})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	updatedAt := update.UpdatedAt
	c.JSON(http.StatusOK, dto.StatusUpdateResponse{
		OrderID:   update.OrderID,
		Previous:  string(update.Previous),
		Status:    string(update.Current),
		Durable:   true,
		UpdatedAt: &updatedAt,
	})
}

func filterFromQuery(c *gin.Context) usecase.OrderFilter {
	return usecase.OrderFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Day:    c.Query("date"),
	}
}
