package handler

import (
	"errors"
	"net/http"

	"github.com/campusworks/rollbook-backend/internal/config"
	"github.com/campusworks/rollbook-backend/internal/metrics"
	"github.com/campusworks/rollbook-backend/internal/middleware"
	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/campusworks/rollbook-backend/internal/repository"
	"github.com/campusworks/rollbook-backend/internal/response"
	"github.com/campusworks/rollbook-backend/internal/service"
	"github.com/campusworks/rollbook-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// FacultyHandler handles the faculty API surface: sign-in, class
// rosters and attendance submission.
type FacultyHandler struct {
	cfg               *config.Config
	facultyService    *service.FacultyService
	studentService    *service.StudentService
	attendanceService *service.AttendanceService
}

// NewFacultyHandler creates a new FacultyHandler.
func NewFacultyHandler(
	cfg *config.Config,
	facultyService *service.FacultyService,
	studentService *service.StudentService,
	attendanceService *service.AttendanceService,
) *FacultyHandler {
	return &FacultyHandler{
		cfg:               cfg,
		facultyService:    facultyService,
		studentService:    studentService,
		attendanceService: attendanceService,
	}
}

// SignIn godoc
// POST /api/faculty/signin
// Authenticates a faculty member and sets the session cookie.
func (h *FacultyHandler) SignIn(c *gin.Context) {
	var req model.FacultyLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	faculty, token, err := h.facultyService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusForbidden, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	middleware.SetSessionCookie(c, h.cfg, token)
	response.Success(c, http.StatusOK, gin.H{
		"facultyId": faculty.ID,
		"subjectId": faculty.SubjectID,
	})
}

// GetStudentsByBranch godoc
// GET /api/faculty/get/student/:branch
// The roster for one branch, roll numbers ascending.
func (h *FacultyHandler) GetStudentsByBranch(c *gin.Context) {
	students, err := h.studentService.ListByBranch(c.Request.Context(), c.Param("branch"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if len(students) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// MarkAttendance godoc
// POST /api/faculty/attendance
// Records a batch of attendance entries for today. The whole batch is
// rejected when every entry is already marked for today's slot.
func (h *FacultyHandler) MarkAttendance(c *gin.Context) {
	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	records, err := h.attendanceService.Record(c.Request.Context(), req.Attendance)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEntry):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		case errors.Is(err, service.ErrAlreadyMarked):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyMarked)
		case errors.Is(err, repository.ErrDuplicateAttendance):
			response.Fail(c, http.StatusConflict, response.ErrDuplicateAttendance)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	metrics.CountAttendance(len(records))
	response.Success(c, http.StatusOK, gin.H{
		"inserted": len(records),
		"records":  records,
	})
}
