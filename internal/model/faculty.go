package model

import "time"

// Faculty represents a teaching staff member who marks attendance.
// Subjects holds the names of all subjects taught; SubjectID points at
// the primary subject used to pre-fill the attendance form.
type Faculty struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Subjects     []string  `json:"subject"`
	SubjectID    int       `json:"subjectId"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FacultyLoginRequest is the payload for faculty authentication.
type FacultyLoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// CreateFacultyRequest is the payload for creating a faculty account.
type CreateFacultyRequest struct {
	Email     string   `json:"email" binding:"required,email,max=255"`
	Password  string   `json:"password" binding:"required,min=8,max=20"`
	Subjects  []string `json:"subject" binding:"required,min=1,dive,required"`
	FirstName string   `json:"firstName" binding:"required,min=1,max=100"`
	LastName  string   `json:"lastName" binding:"required,min=1,max=100"`
	SubjectID int      `json:"subjectId" binding:"required"`
}

// SubjectFaculties groups faculties by their primary subject name for
// the admin listing.
type SubjectFaculties struct {
	Subject   string    `json:"subject"`
	Faculties []Faculty `json:"faculties"`
}
