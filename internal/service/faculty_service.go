package service

import (
	"context"
	"fmt"

	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/campusworks/rollbook-backend/internal/repository"
)

// FacultyService handles faculty accounts and sign-in.
type FacultyService struct {
	facultyRepo *repository.FacultyRepository
	auth        *AuthService
}

// NewFacultyService creates a new FacultyService.
func NewFacultyService(facultyRepo *repository.FacultyRepository, auth *AuthService) *FacultyService {
	return &FacultyService{facultyRepo: facultyRepo, auth: auth}
}

// Create registers a faculty account with a hashed password. Admin only.
func (s *FacultyService) Create(ctx context.Context, req *model.CreateFacultyRequest) (*model.Faculty, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	faculty := &model.Faculty{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Subjects:     req.Subjects,
		SubjectID:    req.SubjectID,
	}
	if err := s.facultyRepo.Create(ctx, faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// SignIn authenticates a faculty by email and password.
func (s *FacultyService) SignIn(ctx context.Context, email, password string) (*model.Faculty, string, error) {
	faculty, err := s.facultyRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := s.auth.CheckPassword(faculty.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(RoleFaculty, faculty.ID)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return faculty, token, nil
}

// ListGrouped returns all faculties grouped by primary subject name.
func (s *FacultyService) ListGrouped(ctx context.Context) ([]model.SubjectFaculties, error) {
	faculties, subjectNames, err := s.facultyRepo.ListWithSubjectName(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	groups := make([]model.SubjectFaculties, 0)
	for i, f := range faculties {
		name := subjectNames[i]
		gi, ok := index[name]
		if !ok {
			gi = len(groups)
			index[name] = gi
			groups = append(groups, model.SubjectFaculties{Subject: name})
		}
		groups[gi].Faculties = append(groups[gi].Faculties, f)
	}
	return groups, nil
}
