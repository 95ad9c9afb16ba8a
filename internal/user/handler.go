package user

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stickify/stickify/internal/errs"
	"github.com/stickify/stickify/internal/httperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SignUp handles both POST /auth/sign-up and POST /users. Duplicate
// username/email reports 400 per the API contract.
func (h *Handler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}

	token, _, err := h.service.SignUp(c.Request().Context(), &req)
	if err != nil {
		if errs.IsConflict(err) {
			return httperr.JSONWithStatus(c, http.StatusBadRequest, err)
		}
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}

	token, u, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httperr.JSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    u,
	})
}

func (h *Handler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return httperr.JSON(c, err)
	}
	if users == nil {
		users = []User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Get and its by-email/by-username variants return null instead of 404 when
// nothing matches, so lookups can be used as existence probes by the client.
func (h *Handler) Get(c echo.Context) error {
	u, err := h.service.Get(c.Request().Context(), c.Param("id"))
	return h.respondUser(c, u, err)
}

func (h *Handler) GetByEmail(c echo.Context) error {
	u, err := h.service.GetByEmail(c.Request().Context(), c.Param("email"))
	return h.respondUser(c, u, err)
}

func (h *Handler) GetByUsername(c echo.Context) error {
	u, err := h.service.GetByUsername(c.Request().Context(), c.Param("username"))
	return h.respondUser(c, u, err)
}

func (h *Handler) respondUser(c echo.Context, u *User, err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return c.JSON(http.StatusOK, nil)
	}
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) Update(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}

	u, err := h.service.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Follow toggles the relationship; a missing party reports 400 per the API
// contract rather than the usual 404.
func (h *Handler) Follow(c echo.Context) error {
	var req FollowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}

	u, err := h.service.ToggleFollow(c.Request().Context(), c.Param("id"), req.TargetEmail, req.Follow)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return httperr.JSONWithStatus(c, http.StatusBadRequest, err)
		}
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) Followers(c echo.Context) error {
	emails, err := h.service.Followers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, emails)
}

func (h *Handler) Following(c echo.Context) error {
	emails, err := h.service.Following(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, emails)
}

func (h *Handler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}
	if err := h.service.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}
	if err := h.service.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
