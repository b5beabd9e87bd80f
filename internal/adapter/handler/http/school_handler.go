package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"schoolhub/internal/domain/model"
	"schoolhub/internal/middleware/auth"
	"schoolhub/internal/usecase"
)

type SchoolHandler struct {
	schoolService *usecase.SchoolService
	logger        *zap.Logger
}

func NewSchoolHandler(schoolService *usecase.SchoolService, logger *zap.Logger) *SchoolHandler {
	return &SchoolHandler{
		schoolService: schoolService,
		logger:        logger,
	}
}

type createSchoolRequest struct {
	Name         string `json:"name" validate:"required"`
	Subdomain    string `json:"subdomain" validate:"required,hostname_rfc1123"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
}

// CreateSchool handles POST /api/v1/schools
func (h *SchoolHandler) CreateSchool(c echo.Context) error {
	var req createSchoolRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	school := &model.School{
		Name:         req.Name,
		Subdomain:    req.Subdomain,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		IsActive:     true,
	}
	if err := h.schoolService.CreateSchool(c.Request().Context(), school); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, school)
}

// ListSchools handles GET /api/v1/schools
func (h *SchoolHandler) ListSchools(c echo.Context) error {
	schools, meta, err := h.schoolService.ListSchools(c.Request().Context(), bindPagination(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":       schools,
		"pagination": meta,
	})
}

// GetSchool handles GET /api/v1/schools/:id
func (h *SchoolHandler) GetSchool(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	school, err := h.schoolService.GetSchool(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, school)
}

type updateSchoolRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	IsActive     *bool  `json:"is_active"`
}

// UpdateSchool handles PUT /api/v1/schools/:id
func (h *SchoolHandler) UpdateSchool(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req updateSchoolRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	school, err := h.schoolService.UpdateSchool(c.Request().Context(), id,
		req.Name, req.ContactEmail, req.ContactPhone, req.Address, req.IsActive)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, school)
}

type openTicketRequest struct {
	Subject  string `json:"subject" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// OpenTicket handles POST /api/v1/schools/:id/tickets
func (h *SchoolHandler) OpenTicket(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req openTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ticket := &model.SupportTicket{
		SchoolID: schoolID,
		Subject:  req.Subject,
		Body:     req.Body,
		Priority: req.Priority,
		OpenedBy: user.StaffID,
	}
	if err := h.schoolService.OpenTicket(c.Request().Context(), ticket); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, ticket)
}

// ListTickets handles GET /api/v1/schools/:id/tickets
func (h *SchoolHandler) ListTickets(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	tickets, meta, err := h.schoolService.ListTickets(
		c.Request().Context(), schoolID, c.QueryParam("status"), bindPagination(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":       tickets,
		"pagination": meta,
	})
}

// GetTicket handles GET /api/v1/tickets/:id
func (h *SchoolHandler) GetTicket(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	ticket, err := h.schoolService.GetTicket(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

type updateTicketRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

// UpdateTicketStatus handles PUT /api/v1/tickets/:id/status
func (h *SchoolHandler) UpdateTicketStatus(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req updateTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ticket, err := h.schoolService.UpdateTicketStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, ticket)
}
