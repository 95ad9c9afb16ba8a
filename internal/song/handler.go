package song

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

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

// Create accepts one song or a JSON array of songs on the same endpoint. The
// array form has partial-success semantics: the response lists what was
// created and what was dropped.
func (h *Handler) Create(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "unreadable body"})
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var songs []Song
		if err := json.Unmarshal(trimmed, &songs); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
		}
		result := h.service.CreateBatch(c.Request().Context(), songs)
		return c.JSON(http.StatusCreated, result)
	}

	var one Song
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}
	created, err := h.service.Create(c.Request().Context(), &one)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) List(c echo.Context) error {
	var filter Filter
	if v := c.QueryParam("isUserUpload"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "isUserUpload must be a boolean"})
		}
		filter.IsUserUpload = &b
	}
	filter.Search = c.QueryParam("search")

	songs, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return httperr.JSON(c, err)
	}
	if songs == nil {
		songs = []Song{}
	}
	return c.JSON(http.StatusOK, songs)
}

func (h *Handler) Get(c echo.Context) error {
	trackID, err := strconv.ParseInt(c.Param("trackId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "invalid track id"})
	}
	sng, err := h.service.Get(c.Request().Context(), trackID)
	if errors.Is(err, errs.ErrNotFound) {
		return c.JSON(http.StatusOK, nil)
	}
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, sng)
}

// Update returns null when no row was affected, per the API contract.
func (h *Handler) Update(c echo.Context) error {
	trackID, err := strconv.ParseInt(c.Param("trackId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "invalid track id"})
	}

	var req UpdateSongRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}

	sng, err := h.service.Update(c.Request().Context(), trackID, &req)
	if errors.Is(err, errs.ErrNotFound) {
		return c.JSON(http.StatusOK, nil)
	}
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, sng)
}

func (h *Handler) Delete(c echo.Context) error {
	trackID, err := strconv.ParseInt(c.Param("trackId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "invalid track id"})
	}
	if err := h.service.Remove(c.Request().Context(), trackID); err != nil {
		return httperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Artwork(c echo.Context) error {
	trackID, err := strconv.ParseInt(c.Param("trackId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "invalid track id"})
	}

	stream, err := h.service.Artwork(c.Request().Context(), trackID)
	if err != nil {
		return httperr.JSON(c, err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", data)
}
