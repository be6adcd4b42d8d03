package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polkiloo/eatery/internal/server/http/dto"
)

// OrderHandler manages customer order endpoints.
type OrderHandler struct {
	facade OrderFacade
	qr     QREncoder
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, qr QREncoder) *OrderHandler {
	return &OrderHandler{facade: facade, qr: qr}
}

// Submit handles POST /api/orders. Anonymous customers may order; the owner
// is taken from the session, never from the body.
func (h *OrderHandler) Submit(c *gin.Context) {
	var req dto.OrderForm
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed order form")
		return
	}

	receipt, err := h.facade.SubmitOrder(c.Request.Context(), CurrentIdentity(c), fromOrderForm(req))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ReceiptResponse{
		Order:   toOrderResponse(*receipt.Order),
		Message: "Order placed! Your confirmation number is " + receipt.Order.ID,
		QRCode:  "/api/orders/" + receipt.Order.ID + "/qr",
		Next:    toOrderForm(receipt.Next),
	})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentIdentity(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// QRCode handles GET /api/orders/:id/qr. The code only carries the
// confirmation number, so it is served without looking the order up.
func (h *OrderHandler) QRCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
		return
	}
	png, err := h.qr.OrderConfirmation(id.String())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400, immutable")
	c.Data(http.StatusOK, "image/png", png)
}

// Form handles GET /api/cart/form: the order form prefilled for the caller.
func (h *OrderHandler) Form(c *gin.Context) {
	form, err := h.facade.OrderForm(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderForm(form))
}
