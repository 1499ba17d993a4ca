package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"grammarguide/internal/logger"
	"grammarguide/internal/model"
	"grammarguide/internal/service"
)

// StoreProbe reports the outcome of the last background store probe.
type StoreProbe interface {
	Healthy() bool
}

type GrammarHandler struct {
	service service.GrammarService
	probe   StoreProbe
}

func NewGrammarHandler(service service.GrammarService) *GrammarHandler {
	return &GrammarHandler{service: service}
}

// WithProbe makes Health include the background probe state.
func (h *GrammarHandler) WithProbe(probe StoreProbe) *GrammarHandler {
	h.probe = probe
	return h
}

// RegisterRoutes mounts the handler on a group rooted at /api/grammar.
// Both the bare and the slash-terminated path are served.
func (h *GrammarHandler) RegisterRoutes(g *echo.Group, writeLimiter ...echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.GET("/", h.List)
	g.POST("", h.Create, writeLimiter...)
	g.POST("/", h.Create, writeLimiter...)
}

type entryResponse struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Title      string   `json:"title"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
	Notes      *string  `json:"notes,omitempty"`
}

type createEntryRequest struct {
	Category   string   `json:"category"`
	Title      string   `json:"title"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
	Notes      *string  `json:"notes"`
}

// List returns every grammar entry.
// @Summary List grammar entries
// @Description Get all grammar entries sorted by title
// @Tags grammar
// @Produce json
// @Success 200 {array} entryResponse
// @Failure 500 {object} messageResponse
// @Router /api/grammar [get]
func (h *GrammarHandler) List(c echo.Context) error {
	entries, err := h.service.List(c.Request().Context())
	if err != nil {
		logger.Error("list entries failed", "module", "handler", "action", "list", "resource", "entry", "result", "failed", "error", err)
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: msgRetrieveFailed, Error: codeInternal})
	}

	response := make([]entryResponse, len(entries))
	for i, e := range entries {
		response[i] = toEntryResponse(e)
	}
	return c.JSON(http.StatusOK, response)
}

// Create adds a new grammar entry.
// @Summary Create grammar entry
// @Description Add a grammar entry. Titles must be unique.
// @Tags grammar
// @Accept json
// @Produce json
// @Param entry body createEntryRequest true "Entry"
// @Success 201 {object} entryResponse
// @Failure 400 {object} messageResponse
// @Failure 429 {object} messageResponse
// @Failure 500 {object} messageResponse
// @Router /api/grammar [post]
func (h *GrammarHandler) Create(c echo.Context) error {
	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, msgInvalidBody)
	}

	if isBlank(req.Category) || isBlank(req.Title) || isBlank(req.Definition) {
		return Error(c, http.StatusBadRequest, msgFieldsRequired)
	}

	entry, err := h.service.Create(c.Request().Context(), service.CreateEntryParams{
		Category:   req.Category,
		Title:      req.Title,
		Definition: req.Definition,
		Examples:   req.Examples,
		Notes:      req.Notes,
	})
	if err != nil {
		return writeCreateError(c, err)
	}

	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// Health reports whether the store is reachable. The status comes from a
// live ping; probe carries the last background probe result when one runs.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /healthz [get]
func (h *GrammarHandler) Health(c echo.Context) error {
	resp := healthResponse{Status: "ok"}
	if h.probe != nil {
		resp.Probe = "down"
		if h.probe.Healthy() {
			resp.Probe = "up"
		}
	}
	if err := h.service.Ping(c.Request().Context()); err != nil {
		logger.Warn("health check failed", "module", "handler", "action", "ping", "resource", "store", "result", "failed", "error", err)
		resp.Status = "unavailable"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func toEntryResponse(e model.Entry) entryResponse {
	examples := e.Examples
	if examples == nil {
		examples = []string{}
	}
	return entryResponse{
		ID:         strconv.FormatInt(e.ID, 10),
		Category:   string(e.Category),
		Title:      e.Title,
		Definition: e.Definition,
		Examples:   examples,
		Notes:      e.Notes,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
