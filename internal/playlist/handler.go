package playlist

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

func (h *Handler) Create(c echo.Context) error {
	var p Playlist
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}

	created, err := h.service.Create(c.Request().Context(), &p)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) List(c echo.Context) error {
	playlists, err := h.service.List(c.Request().Context())
	if err != nil {
		return httperr.JSON(c, err)
	}
	if playlists == nil {
		playlists = []Playlist{}
	}
	return c.JSON(http.StatusOK, playlists)
}

func (h *Handler) ListByUser(c echo.Context) error {
	playlists, err := h.service.ListByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	if playlists == nil {
		playlists = []Playlist{}
	}
	return c.JSON(http.StatusOK, playlists)
}

// GetByName returns null when nothing matches, per the API contract.
func (h *Handler) GetByName(c echo.Context) error {
	p, err := h.service.FindByName(c.Request().Context(), c.Param("name"))
	if errors.Is(err, errs.ErrNotFound) {
		return c.JSON(http.StatusOK, nil)
	}
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Update(c echo.Context) error {
	var req UpdatePlaylistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return httperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Save bookmarks a playlist for a user: 404 when either is missing, 409 when
// the pair is already saved.
func (h *Handler) Save(c echo.Context) error {
	var req SaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"code": "bad_request", "detail": "malformed body"})
	}

	link, err := h.service.SavePlaylist(c.Request().Context(), req.UserID, req.PlaylistID)
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, link)
}

func (h *Handler) IsSaved(c echo.Context) error {
	saved, err := h.service.IsPlaylistSaved(c.Request().Context(), c.Param("userId"), c.Param("playlistId"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"saved": saved})
}

func (h *Handler) Saved(c echo.Context) error {
	playlists, err := h.service.GetSavedPlaylists(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return httperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, playlists)
}

func (h *Handler) Unsave(c echo.Context) error {
	if err := h.service.RemoveSaved(c.Request().Context(), c.Param("userId"), c.Param("playlistId")); err != nil {
		return httperr.JSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
