package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatery/internal/domain/model"
	"github.com/polkiloo/eatery/internal/server/http/dto"
)

// ProfileHandler serves the caller's profile. Routes are mounted behind
// AuthRequired.
type ProfileHandler struct {
	facade ProfileFacade
}

func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.facade.Profile(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed profile")
		return
	}
	update := model.ProfileUpdate{
		DisplayName: req.DisplayName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		PhotoURL:    req.PhotoURL,
	}
	profile, err := h.facade.UpdateProfile(c.Request.Context(), CurrentIdentity(c), update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Orders handles GET /api/profile/orders.
func (h *ProfileHandler) Orders(c *gin.Context) {
	orders, err := h.facade.ProfileOrders(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}
