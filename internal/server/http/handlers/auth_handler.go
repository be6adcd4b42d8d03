package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eatery/internal/server/http/dto"
	"github.com/polkiloo/eatery/internal/server/http/middleware"
	"github.com/polkiloo/eatery/internal/usecase"
)

// AuthHandler processes sign-up, login and logout.
type AuthHandler struct {
	facade SessionFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade SessionFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	result, err := h.facade.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, result.Token)
	c.JSON(http.StatusCreated, signInResponse(result))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	result, err := h.facade.SignIn(c.Request.Context(), req.Email, req.Password, req.CallbackURL)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, result.Token)
	c.JSON(http.StatusOK, signInResponse(result))
}

// Logout handles POST /api/auth/logout. The cookie is cleared even when
// revocation fails.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := middleware.CurrentSession(c)
	middleware.ClearAuthCookie(c)
	if session.Token != "" {
		if err := h.facade.SignOut(c.Request.Context(), session.Token); err != nil {
			writeError(c, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, toSessionResponse(session, h.facade.IsAdmin(session.Identity)))
}

func signInResponse(result *usecase.SignInResult) dto.SessionResponse {
	return dto.SessionResponse{
		Authenticated: true,
		UID:           result.Identity.UID,
		Email:         result.Identity.Email,
		Admin:         result.Admin,
		Redirect:      result.Redirect,
	}
}
