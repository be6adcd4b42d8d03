package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatery/internal/server/http/dto"
	"github.com/polkiloo/eatery/internal/server/http/middleware"
	"github.com/polkiloo/eatery/internal/usecase"
)

// PageHandler renders the view model of every page route. Access to
// protected pages is decided by the route guard before these run.
type PageHandler struct {
	facade RestaurantFacade
}

func NewPageHandler(facade RestaurantFacade) *PageHandler {
	return &PageHandler{facade: facade}
}

type loginPage struct {
	CallbackURL string `json:"callbackUrl"`
}

type profilePage struct {
	Profile dto.ProfileResponse `json:"profile"`
	Orders  []dto.OrderResponse `json:"orders"`
	Form    dto.OrderForm       `json:"form"`
}

func (h *PageHandler) Home(c *gin.Context) { h.render(c, "home", "Eatery", nil) }

func (h *PageHandler) About(c *gin.Context) { h.render(c, "about", "About us", nil) }

func (h *PageHandler) Menu(c *gin.Context) {
	h.render(c, "menu", "Menu", toMenuResponse(h.facade.Menu()))
}

// Cart renders the order form prefilled for the caller.
func (h *PageHandler) Cart(c *gin.Context) {
	form, err := h.facade.OrderForm(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, "cart", "Your order", toOrderForm(form))
}

// Login renders the sign-in page. Signed-in visitors are sent on to the
// callback right away.
func (h *PageHandler) Login(c *gin.Context) {
	callback := c.Query("callbackUrl")
	if middleware.CurrentSession(c).Authenticated() {
		c.Redirect(http.StatusFound, usecase.SafeCallback(callback))
		return
	}
	h.render(c, "login", "Sign in", loginPage{CallbackURL: usecase.SafeCallback(callback)})
}

func (h *PageHandler) SignUp(c *gin.Context) {
	if middleware.CurrentSession(c).Authenticated() {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, "signup", "Create account", nil)
}

func (h *PageHandler) AccessDenied(c *gin.Context) {
	h.renderStatus(c, http.StatusForbidden, "access-denied", "Access denied", nil)
}

func (h *PageHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	identity := CurrentIdentity(c)

	profile, err := h.facade.Profile(ctx, identity)
	if err != nil {
		writeError(c, err)
		return
	}
	orders, err := h.facade.ProfileOrders(ctx, identity)
	if err != nil {
		writeError(c, err)
		return
	}
	form, err := h.facade.OrderForm(ctx, identity)
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, "profile", "My profile", profilePage{
		Profile: toProfileResponse(profile),
		Orders:  toOrderResponses(orders),
		Form:    toOrderForm(form),
	})
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	counts, err := h.facade.OrderStats(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, "admin", "Dashboard", toCountsResponse(counts))
}

func (h *PageHandler) Orders(c *gin.Context) {
	listing, err := h.facade.ListOrders(c.Request.Context(), CurrentIdentity(c), filterFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, "admin-orders", "Orders", dto.OrderListResponse{
		Orders: toOrderResponses(listing.Orders),
		Counts: toCountsResponse(listing.Counts),
	})
}

func (h *PageHandler) render(c *gin.Context, page, title string, data any) {
	h.renderStatus(c, http.StatusOK, page, title, data)
}

func (h *PageHandler) renderStatus(c *gin.Context, status int, page, title string, data any) {
	session := middleware.CurrentSession(c)
	c.JSON(status, dto.PageResponse{
		Page:    page,
		Title:   title,
		Session: toSessionResponse(session, h.facade.IsAdmin(session.Identity)),
		Data:    data,
	})
}
