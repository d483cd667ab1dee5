package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatherly/event-backend/internal/service"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Auth *service.Authenticator
}

func NewAuthHandler(a *service.Authenticator) *AuthHandler {
	return &AuthHandler{Auth: a}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
type loginReq struct {
	Identifier string `json:"identifier"` // email or username
	Password   string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type resetRequestReq struct {
	Email string `json:"email"`
}
type resetConfirmReq struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
type loginResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Register creates an account.  Tokens are not issued here; the client logs
// in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	u, err := h.Auth.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role})
}

// Login verifies credentials and returns a fresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	u, pair, err := h.Auth.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, loginResp{
		User:    userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role},
		Access:  tokenPart{Token: pair.Access.Token, Expires: pair.Access.Exp},
		Refresh: tokenPart{Token: pair.Refresh, Expires: pair.RefreshExp},
	})
}

// Refresh exchanges a refresh token for a new access token.  The refresh
// field is present in the response only when rotation is enabled.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	pair, err := h.Auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return serviceError(c, err)
	}
	resp := echo.Map{
		"access": tokenPart{Token: pair.Access.Token, Expires: pair.Access.Exp},
	}
	if pair.Refresh != "" {
		resp["refresh"] = tokenPart{Token: pair.Refresh, Expires: pair.RefreshExp}
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.Auth.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me resolves the bearer token to the account it belongs to.
func (h *AuthHandler) Me(c echo.Context) error {
	header := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return serviceError(c, service.ErrUnauthenticated)
	}
	u, err := h.Auth.CurrentUser(c.Request().Context(), strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role})
}

// RequestPasswordReset issues a one-time reset token.  Delivery is out of
// scope, so the token comes back in the response.
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req resetRequestReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	t, err := h.Auth.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reset_token": t.Token, "expires": t.Exp})
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var req resetConfirmReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.Auth.ConfirmPasswordReset(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
