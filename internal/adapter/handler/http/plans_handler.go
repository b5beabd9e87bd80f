package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"schoolhub/internal/domain/billing"
)

// PlansHandler serves the plan catalog. Plans are reference data; the
// endpoints are public and read-only.
type PlansHandler struct {
	logger *zap.Logger
}

func NewPlansHandler(logger *zap.Logger) *PlansHandler {
	return &PlansHandler{logger: logger}
}

// GetPlans handles GET /api/v1/plans
func (h *PlansHandler) GetPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"plans": billing.Plans()})
}

// GetPlan handles GET /api/v1/plans/:slug
func (h *PlansHandler) GetPlan(c echo.Context) error {
	plan, err := billing.GetPlan(billing.Slug(c.Param("slug")))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, plan)
}
