package rating

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stickify/stickify/internal/httperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Rate(c echo.Context) error {
	var req Rating
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}

	rt, err := h.service.Rate(c.Request().Context(), req.UserID, req.TrackID, req.Rating)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, rt)
}

func (h *Handler) Ratings(c echo.Context) error {
	trackID, err := strconv.ParseInt(c.Param("trackId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "invalid track id"})
	}

	ratings, err := h.service.Ratings(c.Request().Context(), trackID)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, ratings)
}

func (h *Handler) Average(c echo.Context) error {
	trackID, err := strconv.ParseInt(c.Param("trackId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "invalid track id"})
	}

	avg, err := h.service.Average(c.Request().Context(), trackID)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, avg)
}
