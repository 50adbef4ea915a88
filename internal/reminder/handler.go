package reminder

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RunHandler exposes manual reminder runs over HTTP.
type RunHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewRunHandler(service *Service, logger *zap.Logger) *RunHandler {
	return &RunHandler{service: service, logger: logger}
}

// TriggerRun runs the pipeline once and responds with the run summary.
func (h *RunHandler) TriggerRun(c echo.Context) error {
	summary, err := h.service.RunOnce(c.Request().Context())
	if err != nil {
		h.logger.Error("manual reminder run failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to list visits"})
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *RunHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
