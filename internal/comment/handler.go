package comment

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stickify/stickify/internal/httperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c echo.Context) error {
	var cm Comment
	if err := c.Bind(&cm); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}

	created, err := h.service.Create(c.Request().Context(), &cm)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) List(c echo.Context) error {
	comments, err := h.service.List(c.Request().Context())
	if err != nil {
		return httperr.JSON(c, err)
	}
	if comments == nil {
		comments = []Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *Handler) Get(c echo.Context) error {
	cm, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, cm)
}

func (h *Handler) ListByUser(c echo.Context) error {
	comments, err := h.service.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	if comments == nil {
		comments = []Comment{}
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *Handler) Update(c echo.Context) error {
	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}

	cm, err := h.service.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, cm)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return httperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
