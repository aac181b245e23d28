package handler

import (
	"errors"
	"net/http"

	"github.com/campusworks/rollbook-backend/internal/config"
	"github.com/campusworks/rollbook-backend/internal/middleware"
	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/campusworks/rollbook-backend/internal/repository"
	"github.com/campusworks/rollbook-backend/internal/response"
	"github.com/campusworks/rollbook-backend/internal/service"
	"github.com/campusworks/rollbook-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles the admin API surface: account lifecycle,
// entity registration and the branch attendance report.
type AdminHandler struct {
	cfg            *config.Config
	adminService   *service.AdminService
	studentService *service.StudentService
	subjectService *service.SubjectService
	facultyService *service.FacultyService
	reportService  *service.ReportService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	cfg *config.Config,
	adminService *service.AdminService,
	studentService *service.StudentService,
	subjectService *service.SubjectService,
	facultyService *service.FacultyService,
	reportService *service.ReportService,
) *AdminHandler {
	return &AdminHandler{
		cfg:            cfg,
		adminService:   adminService,
		studentService: studentService,
		subjectService: subjectService,
		facultyService: facultyService,
		reportService:  reportService,
	}
}

// SignUp godoc
// POST /api/admin/signup
// Creates an unverified admin and emails a one-time passcode.
func (h *AdminHandler) SignUp(c *gin.Context) {
	var req model.AdminSignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.adminService.SignUp(c.Request.Context(), &req); err != nil {
		if errors.Is(err, repository.ErrDuplicateAdmin) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Check your email for the verification code"})
}

// VerifyOTP godoc
// POST /api/admin/verify-otp
// Confirms the emailed passcode and marks the admin verified.
func (h *AdminHandler) VerifyOTP(c *gin.Context) {
	var req model.VerifyOTPRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.adminService.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"message": "Email verified successfully"})
	case errors.Is(err, service.ErrAdminNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrInvalidOTP):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidOTP)
	case errors.Is(err, service.ErrExpiredOTP):
		response.Fail(c, http.StatusBadRequest, response.ErrExpiredOTP)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// SignIn godoc
// POST /api/admin/signin
// Authenticates via username/email + password + shared secret key.
func (h *AdminHandler) SignIn(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	admin, token, err := h.adminService.SignIn(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongSecretKey):
			response.Fail(c, http.StatusForbidden, response.ErrWrongSecretKey)
		case errors.Is(err, service.ErrNotVerified):
			response.Fail(c, http.StatusForbidden, response.ErrNotVerified)
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusForbidden, response.ErrInvalidCredentials)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	middleware.SetSessionCookie(c, h.cfg, token)
	response.Success(c, http.StatusOK, gin.H{
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"email":    admin.Email,
		},
	})
}

// AddStudent godoc
// POST /api/admin/add/student
func (h *AdminHandler) AddStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateStudent) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// AddSubject godoc
// POST /api/admin/add/subject
func (h *AdminHandler) AddSubject(c *gin.Context) {
	var req model.CreateSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject, err := h.subjectService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"subject": subject})
}

// CreateFaculty godoc
// POST /api/admin/create/faculty
func (h *AdminHandler) CreateFaculty(c *gin.Context) {
	var req model.CreateFacultyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	faculty, err := h.facultyService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFaculty) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"faculty": faculty})
}

// GetStudents godoc
// GET /api/admin/get/students
// Students grouped by branch, roll numbers ascending.
func (h *AdminHandler) GetStudents(c *gin.Context) {
	groups, err := h.studentService.ListGrouped(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if len(groups) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"groups": groups})
}

// GetSubjects godoc
// GET /api/admin/get/subjects
func (h *AdminHandler) GetSubjects(c *gin.Context) {
	subjects, err := h.subjectService.GetAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// GetFaculties godoc
// GET /api/admin/get/faculties
// Faculties grouped by their primary subject.
func (h *AdminHandler) GetFaculties(c *gin.Context) {
	groups, err := h.facultyService.ListGrouped(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if len(groups) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"groups": groups})
}

// BranchAttendance godoc
// GET /api/admin/students/attendance/:branch
// The per-branch attendance report with subject-wise statistics.
func (h *AdminHandler) BranchAttendance(c *gin.Context) {
	reports, err := h.reportService.BranchReport(c.Request.Context(), c.Param("branch"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBranchRequired):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidBranch)
		case errors.Is(err, service.ErrNoStudents):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": reports})
}
