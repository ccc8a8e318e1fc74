// Package server exposes card generation over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ljmurray/marquee/internal/app"
	"github.com/ljmurray/marquee/internal/font"
)

// Handler serves the card-generation API.
type Handler struct {
	gen    *app.Generator
	logger *slog.Logger
}

func NewHandler(gen *app.Generator, logger *slog.Logger) *Handler {
	return &Handler{gen: gen, logger: logger}
}

// Register attaches routes to the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.health)
	e.POST("/api/cards", h.createCard)
}

func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// cardRequest is the JSON construction surface; it mirrors the declarative
// parameters every card type accepts.
type cardRequest struct {
	Variant string `json:"variant"`

	Source string `json:"source"`
	Output string `json:"output"`

	Title       string `json:"title"`
	SeasonText  string `json:"season_text"`
	EpisodeText string `json:"episode_text"`

	HideSeasonText  bool `json:"hide_season_text"`
	HideEpisodeText bool `json:"hide_episode_text"`

	// Font is an inline attribute object or a configured label.
	Font font.Ref `json:"font"`

	Blur      bool `json:"blur"`
	Grayscale bool `json:"grayscale"`

	Extras map[string]string `json:"extras"`
}

type cardResponse struct {
	Output string `json:"output"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) createCard(c echo.Context) error {
	var req cardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.Variant == "" {
		req.Variant = "overline"
	}

	err := h.gen.Generate(app.Request{
		Variant:         req.Variant,
		Source:          req.Source,
		Output:          req.Output,
		Title:           req.Title,
		SeasonText:      req.SeasonText,
		EpisodeText:     req.EpisodeText,
		HideSeasonText:  req.HideSeasonText,
		HideEpisodeText: req.HideEpisodeText,
		Font:            req.Font,
		Blur:            req.Blur,
		Grayscale:       req.Grayscale,
		Extras:          req.Extras,
	})
	if err != nil {
		h.logger.Error("card generation failed", "output", req.Output, "error", err)
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusCreated, cardResponse{Output: req.Output})
}
