// Package ai exposes the AI chat endpoint.
package ai

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	aierrors "github.com/lumenhealth/lumen/internal/errors"
	"github.com/lumenhealth/lumen/internal/observability"
	"github.com/lumenhealth/lumen/plugin/ai/classifier"
	"github.com/lumenhealth/lumen/plugin/ai/orchestrator"
	"github.com/lumenhealth/lumen/plugin/ai/provider"
	"github.com/lumenhealth/lumen/server/middleware"
)

// UserIDHeader carries the authenticated user id, set by the auth layer
// upstream of this service.
const UserIDHeader = "X-User-ID"

// unavailableMessage is the only text shown to users when every provider
// failed; the detailed error stays in the logs.
const unavailableMessage = "unable to process your request right now"

// ChatRequest is the POST /api/v1/ai/chat payload.
type ChatRequest struct {
	Content           string  `json:"content"`
	PreferredProvider *string `json:"preferredProvider,omitempty"`
	QueryType         *string `json:"queryType,omitempty"`
	Context           *string `json:"context,omitempty"`
}

// Handler serves the AI endpoints.
type Handler struct {
	service *orchestrator.Service
	logger  *slog.Logger
}

// NewHandler creates the AI endpoint handler.
func NewHandler(service *orchestrator.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the AI routes on the given group.
func (h *Handler) Register(g *echo.Group, limiter *middleware.RateLimiter) {
	g.POST("/chat", h.Chat, limiter.Middleware(func(c echo.Context) string {
		return c.Request().Header.Get(UserIDHeader)
	}))
}

// Chat handles one AI query end to end.
func (h *Handler) Chat(c echo.Context) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var request ChatRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	reqCtx := observability.NewRequestContext(h.logger, userID)
	ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)

	processRequest := &orchestrator.ProcessRequest{
		Content: request.Content,
		UserID:  userID,
		Context: request.Context,
	}
	if request.PreferredProvider != nil {
		id := provider.ID(*request.PreferredProvider)
		processRequest.PreferredProvider = &id
	}
	if request.QueryType != nil {
		queryType := classifier.QueryType(*request.QueryType)
		processRequest.QueryType = &queryType
	}

	response, err := h.service.ProcessQuery(ctx, processRequest)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

func (h *Handler) mapError(c echo.Context, err error) error {
	switch aierrors.GetCodeFromError(err, aierrors.ErrCodeProviderError) {
	case aierrors.ErrCodeInvalidArgument:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case aierrors.ErrCodeRateLimitExceeded:
		return echo.NewHTTPError(http.StatusTooManyRequests, err.Error())
	case aierrors.ErrCodeContextFetchFailed:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load patient context")
	case aierrors.ErrCodeContextCanceled:
		return echo.NewHTTPError(http.StatusRequestTimeout, "request canceled")
	default:
		// FALLBACK_EXHAUSTED, PROVIDER_ERROR, PROVIDER_NOT_CONFIGURED,
		// TIMEOUT: the service is unavailable as far as the caller cares.
		return echo.NewHTTPError(http.StatusServiceUnavailable, unavailableMessage)
	}
}

func userIDFrom(c echo.Context) (int32, error) {
	raw := c.Request().Header.Get(UserIDHeader)
	if raw == "" {
		return 0, errors.New("missing " + UserIDHeader + " header")
	}
	parsed, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || parsed <= 0 {
		return 0, errors.New("invalid " + UserIDHeader + " header")
	}
	return int32(parsed), nil
}
