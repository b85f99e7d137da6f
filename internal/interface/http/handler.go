package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/perf-summaries/internal/domain/performance"
)

const externalErrorPrefix = "OpenAI API error: "

// SummaryHandler wires the HTTP transport to the performance domain.
type SummaryHandler struct {
	svc       performance.Service
	validator *performance.Validator
	logger    *slog.Logger
}

// NewSummaryHandler constructs the HTTP handler.
func NewSummaryHandler(svc performance.Service, validator *performance.Validator, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{
		svc:       svc,
		validator: validator,
		logger:    logger.With("component", "http.handler"),
	}
}

// GenerateSummaries validates a batch and returns one summary per employee.
func (h *SummaryHandler) GenerateSummaries(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "could not read request body", err))
		return
	}

	employees, err := h.validator.DecodeBatch(body)
	if err != nil {
		var verr *performance.ValidationError
		if errors.As(err, &verr) {
			abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, verr.Issues, err))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusUnprocessableEntity, err.Error(), err))
		return
	}

	if !h.svc.Configured() {
		abortWithError(c, notConfigured())
		return
	}

	summaries, err := h.svc.GenerateSummaries(c.Request.Context(), employees)
	if err != nil {
		if performance.IsNotConfigured(err) {
			abortWithError(c, notConfigured())
			return
		}
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, externalErrorPrefix+err.Error(), err))
		return
	}

	c.JSON(http.StatusOK, performance.Response{Summaries: summaries})
}

// Health reports liveness and whether a completion credential is configured.
func (h *SummaryHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"api_key_configured": h.svc.Configured(),
	})
}

func notConfigured() *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, performance.ErrNotConfigured.Error(), performance.ErrNotConfigured)
}
