package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"schoolhub/internal/domain/model"
	"schoolhub/internal/middleware/auth"
	"schoolhub/internal/usecase"
)

type EnrollmentHandler struct {
	enrollmentService *usecase.EnrollmentService
	logger            *zap.Logger
}

func NewEnrollmentHandler(enrollmentService *usecase.EnrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

type createStudentRequest struct {
	AdmissionNumber string  `json:"admission_number" validate:"required"`
	FirstName       string  `json:"first_name" validate:"required"`
	LastName        string  `json:"last_name" validate:"required"`
	DateOfBirth     *string `json:"date_of_birth"`
	ClassID         *string `json:"class_id" validate:"omitempty,uuid"`
	GuardianName    string  `json:"guardian_name"`
	GuardianPhone   string  `json:"guardian_phone"`
}

// CreateStudent handles POST /api/v1/schools/:id/students
func (h *EnrollmentHandler) CreateStudent(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req createStudentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	student := &model.Student{
		SchoolID:        schoolID,
		AdmissionNumber: req.AdmissionNumber,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		GuardianName:    req.GuardianName,
		GuardianPhone:   req.GuardianPhone,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_of_birth must be YYYY-MM-DD"})
		}
		student.DateOfBirth = &dob
	}
	if req.ClassID != nil {
		classID, _ := uuid.Parse(*req.ClassID)
		student.ClassID = &classID
	}

	if err := h.enrollmentService.CreateStudent(c.Request().Context(), student); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, student)
}

// ListStudents handles GET /api/v1/schools/:id/students
func (h *EnrollmentHandler) ListStudents(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	students, meta, err := h.enrollmentService.ListStudents(c.Request().Context(), schoolID, bindPagination(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":       students,
		"pagination": meta,
	})
}

// GetStudent handles GET /api/v1/students/:id
func (h *EnrollmentHandler) GetStudent(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	student, err := h.enrollmentService.GetStudent(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, student)
}

type updateStudentRequest struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	ClassID       *string `json:"class_id" validate:"omitempty,uuid"`
	GuardianName  string  `json:"guardian_name"`
	GuardianPhone string  `json:"guardian_phone"`
	Status        string  `json:"status" validate:"omitempty,oneof=active graduated transferred withdrawn"`
}

// UpdateStudent handles PUT /api/v1/students/:id
func (h *EnrollmentHandler) UpdateStudent(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req updateStudentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	student, err := h.enrollmentService.GetStudent(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if req.FirstName != "" {
		student.FirstName = req.FirstName
	}
	if req.LastName != "" {
		student.LastName = req.LastName
	}
	if req.GuardianName != "" {
		student.GuardianName = req.GuardianName
	}
	if req.GuardianPhone != "" {
		student.GuardianPhone = req.GuardianPhone
	}
	if req.Status != "" {
		student.Status = req.Status
	}
	if req.ClassID != nil {
		classID, _ := uuid.Parse(*req.ClassID)
		student.ClassID = &classID
	}

	if err := h.enrollmentService.UpdateStudent(c.Request().Context(), student); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, student)
}

type classRequest struct {
	Name      string  `json:"name" validate:"required"`
	Level     string  `json:"level"`
	Stream    string  `json:"stream"`
	TeacherID *string `json:"teacher_id" validate:"omitempty,uuid"`
}

// CreateClass handles POST /api/v1/schools/:id/classes
func (h *EnrollmentHandler) CreateClass(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req classRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	class := &model.SchoolClass{
		SchoolID: schoolID,
		Name:     req.Name,
		Level:    req.Level,
		Stream:   req.Stream,
	}
	if req.TeacherID != nil {
		teacherID, _ := uuid.Parse(*req.TeacherID)
		class.TeacherID = &teacherID
	}

	if err := h.enrollmentService.CreateClass(c.Request().Context(), class); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, class)
}

// ListClasses handles GET /api/v1/schools/:id/classes
func (h *EnrollmentHandler) ListClasses(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	classes, err := h.enrollmentService.ListClasses(c.Request().Context(), schoolID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": classes})
}

// GetClass handles GET /api/v1/classes/:id
func (h *EnrollmentHandler) GetClass(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	class, err := h.enrollmentService.GetClass(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, class)
}

// UpdateClass handles PUT /api/v1/classes/:id
func (h *EnrollmentHandler) UpdateClass(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req classRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	class, err := h.enrollmentService.GetClass(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if req.Name != "" {
		class.Name = req.Name
	}
	if req.Level != "" {
		class.Level = req.Level
	}
	if req.Stream != "" {
		class.Stream = req.Stream
	}
	if req.TeacherID != nil {
		teacherID, _ := uuid.Parse(*req.TeacherID)
		class.TeacherID = &teacherID
	}

	if err := h.enrollmentService.UpdateClass(c.Request().Context(), class); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, class)
}

type subjectRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// CreateSubject handles POST /api/v1/schools/:id/subjects
func (h *EnrollmentHandler) CreateSubject(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req subjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	subject := &model.Subject{
		SchoolID: schoolID,
		Code:     req.Code,
		Name:     req.Name,
	}
	if err := h.enrollmentService.CreateSubject(c.Request().Context(), subject); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, subject)
}

// ListSubjects handles GET /api/v1/schools/:id/subjects
func (h *EnrollmentHandler) ListSubjects(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	subjects, err := h.enrollmentService.ListSubjects(c.Request().Context(), schoolID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": subjects})
}

// UpdateSubject handles PUT /api/v1/subjects/:id
func (h *EnrollmentHandler) UpdateSubject(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req subjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	subject, err := h.enrollmentService.GetSubject(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if req.Code != "" {
		subject.Code = req.Code
	}
	if req.Name != "" {
		subject.Name = req.Name
	}

	if err := h.enrollmentService.UpdateSubject(c.Request().Context(), subject); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, subject)
}

type submitAdmissionRequest struct {
	FirstName      string  `json:"first_name" validate:"required"`
	LastName       string  `json:"last_name" validate:"required"`
	DateOfBirth    *string `json:"date_of_birth"`
	GuardianName   string  `json:"guardian_name"`
	GuardianPhone  string  `json:"guardian_phone"`
	AppliedClassID *string `json:"applied_class_id" validate:"omitempty,uuid"`
}

// SubmitAdmission handles POST /api/v1/schools/:id/admissions
func (h *EnrollmentHandler) SubmitAdmission(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	var req submitAdmissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	admission := &model.Admission{
		SchoolID:      schoolID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_of_birth must be YYYY-MM-DD"})
		}
		admission.DateOfBirth = &dob
	}
	if req.AppliedClassID != nil {
		classID, _ := uuid.Parse(*req.AppliedClassID)
		admission.AppliedClassID = &classID
	}

	if err := h.enrollmentService.SubmitAdmission(c.Request().Context(), admission); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, admission)
}

// ListAdmissions handles GET /api/v1/schools/:id/admissions
func (h *EnrollmentHandler) ListAdmissions(c echo.Context) error {
	schoolID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	admissions, meta, err := h.enrollmentService.ListAdmissions(
		c.Request().Context(), schoolID, c.QueryParam("status"), bindPagination(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":       admissions,
		"pagination": meta,
	})
}

// GetAdmission handles GET /api/v1/admissions/:id
func (h *EnrollmentHandler) GetAdmission(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	admission, err := h.enrollmentService.GetAdmission(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, admission)
}

type approveAdmissionRequest struct {
	AdmissionNumber string `json:"admission_number"`
}

// ApproveAdmission handles POST /api/v1/admissions/:id/approve
func (h *EnrollmentHandler) ApproveAdmission(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req approveAdmissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	student, err := h.enrollmentService.ApproveAdmission(c.Request().Context(), id, req.AdmissionNumber, user.StaffID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"student": student})
}

// RejectAdmission handles POST /api/v1/admissions/:id/reject
func (h *EnrollmentHandler) RejectAdmission(c echo.Context) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil
	}

	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	admission, err := h.enrollmentService.RejectAdmission(c.Request().Context(), id, user.StaffID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, admission)
}
