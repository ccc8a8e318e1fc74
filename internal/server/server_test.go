package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ljmurray/marquee/internal/app"
	"github.com/ljmurray/marquee/internal/card"
	"github.com/ljmurray/marquee/internal/font"
	"github.com/ljmurray/marquee/internal/geometry"
)

type stubMeasurer struct{}

func (stubMeasurer) Measure(fragment card.Commands, _, _ card.Metric) (geometry.Dimensions, error) {
	if len(fragment) == 0 {
		return geometry.Dimensions{}, nil
	}
	return geometry.Dimensions{Width: 1000, Height: 120}, nil
}

type stubRunner struct {
	instructions []string
	err          error
}

func (r *stubRunner) Run(instruction string) error {
	if r.err != nil {
		return r.err
	}
	r.instructions = append(r.instructions, instruction)
	return nil
}

func newTestServer(r *stubRunner) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := &app.Generator{
		AssetsDir: "/assets",
		FontMap:   map[string]*font.Spec{},
		Measurer:  stubMeasurer{},
		Runner:    r,
		Logger:    logger,
	}

	e := echo.New()
	NewHandler(gen, logger).Register(e)
	return e
}

func TestHealth(t *testing.T) {
	e := newTestServer(&stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d", rec.Code)
	}
}

func TestCreateCard(t *testing.T) {
	r := &stubRunner{}
	e := newTestServer(r)

	body := `{
		"source": "/frames/s1e5.jpg",
		"output": "/cards/s1e5.jpg",
		"title": "The Long Way Home",
		"season_text": "Season 1",
		"episode_text": "Episode 5",
		"font": {"size": "150%", "vertical_shift": -20}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/cards", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/cards = %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "/cards/s1e5.jpg") {
		t.Errorf("response body = %s", rec.Body)
	}

	if len(r.instructions) != 1 {
		t.Fatalf("runner received %d instructions", len(r.instructions))
	}
	if !strings.Contains(r.instructions[0], "-pointsize 82.5") {
		t.Errorf("inline font size not applied: %q", r.instructions[0])
	}
}

func TestCreateCardBadBody(t *testing.T) {
	e := newTestServer(&stubRunner{})

	req := httptest.NewRequest(http.MethodPost, "/api/cards", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body = %d, want 400", rec.Code)
	}
}

func TestCreateCardGenerationFailure(t *testing.T) {
	e := newTestServer(&stubRunner{err: errors.New("compositor exploded")})

	body := `{"source": "/frames/s1e5.jpg", "output": "/cards/s1e5.jpg", "title": "Pilot"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cards", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("failed generation = %d, want 422", rec.Code)
	}
}

func TestCreateCardMissingParams(t *testing.T) {
	e := newTestServer(&stubRunner{})

	req := httptest.NewRequest(http.MethodPost, "/api/cards", strings.NewReader(`{"title": "Pilot"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing params = %d, want 422", rec.Code)
	}
}
