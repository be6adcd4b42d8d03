package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatery/internal/server/http/dto"
)

// MenuHandler serves the catalog and cart previews.
type MenuHandler struct {
	facade CatalogFacade
}

func NewMenuHandler(facade CatalogFacade) *MenuHandler {
	return &MenuHandler{facade: facade}
}

// Menu handles GET /api/menu.
func (h *MenuHandler) Menu(c *gin.Context) {
	c.JSON(http.StatusOK, toMenuResponse(h.facade.Menu()))
}

// Preview handles POST /api/cart/preview.
func (h *MenuHandler) Preview(c *gin.Context) {
	var req dto.OrderForm
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed cart")
		return
	}
	preview, err := h.facade.PreviewCart(fromOrderForm(req))
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.LineItem, 0, len(preview.Items))
	for _, item := range preview.Items {
		items = append(items, dto.LineItem{Name: item.Name, Price: item.Price, Quantity: item.Quantity})
	}
	c.JSON(http.StatusOK, dto.CartPreviewResponse{
		Items:       items,
		Subtotal:    preview.Subtotal,
		DeliveryFee: preview.DeliveryFee,
		Total:       preview.Total,
		Currency:    preview.Currency,
	})
}
