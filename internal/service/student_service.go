package service

import (
	"context"
	"strings"

	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/campusworks/rollbook-backend/internal/repository"
)

// StudentService handles student records.
type StudentService struct {
	studentRepo *repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RollNo:    req.RollNo,
		Branch:    strings.TrimSpace(req.Branch),
		Year:      req.Year,
		Batch:     req.Batch,
		Email:     req.Email,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// ListByBranch returns the students of a branch ordered by roll number.
func (s *StudentService) ListByBranch(ctx context.Context, branch string) ([]model.Student, error) {
	return s.studentRepo.ListByBranch(ctx, strings.TrimSpace(branch))
}

// ListGrouped returns every student grouped by branch, roll numbers
// ascending within each group.
func (s *StudentService) ListGrouped(ctx context.Context) ([]model.BranchStudents, error) {
	students, err := s.studentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// ListAll orders by (branch, roll_no), so groups are contiguous.
	groups := make([]model.BranchStudents, 0)
	for _, st := range students {
		if len(groups) == 0 || groups[len(groups)-1].Branch != st.Branch {
			groups = append(groups, model.BranchStudents{Branch: st.Branch})
		}
		groups[len(groups)-1].Students = append(groups[len(groups)-1].Students, st)
	}
	return groups, nil
}
