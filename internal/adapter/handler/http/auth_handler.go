package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"schoolhub/internal/usecase"
)

type AuthHandler struct {
	authService *usecase.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *usecase.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, result)
}

type createStaffRequest struct {
	SchoolID  string `json:"school_id" validate:"required,uuid"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=admin teacher bursar"`
	Phone     string `json:"phone"`
}

// CreateStaff handles POST /api/v1/staff
func (h *AuthHandler) CreateStaff(c echo.Context) error {
	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	schoolID, _ := uuid.Parse(req.SchoolID)
	staff, err := h.authService.CreateStaff(c.Request().Context(), &usecase.CreateStaffInput{
		SchoolID:  schoolID,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Phone:     req.Phone,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, staff)
}

// GetStaff handles GET /api/v1/staff/:id
func (h *AuthHandler) GetStaff(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	staff, err := h.authService.GetStaff(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, staff)
}

// ListStaff handles GET /api/v1/schools/:id/staff
func (h *AuthHandler) ListStaff(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	staff, meta, err := h.authService.ListStaff(c.Request().Context(), schoolID, bindPagination(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":       staff,
		"pagination": meta,
	})
}

type updateStaffRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" validate:"omitempty,oneof=admin teacher bursar"`
	Phone     string `json:"phone"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateStaff handles PUT /api/v1/staff/:id
func (h *AuthHandler) UpdateStaff(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req updateStaffRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	staff, err := h.authService.UpdateStaff(c.Request().Context(), id, &usecase.UpdateStaffInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Phone:     req.Phone,
		Password:  req.Password,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, staff)
}
