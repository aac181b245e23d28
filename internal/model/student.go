package model

import "time"

// Student represents an enrolled student record. Students never log in;
// the record exists so faculty can mark attendance against it.
type Student struct {
	ID        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	RollNo    int       `json:"rollNo"`
	Branch    string    `json:"branch"`
	Year      int       `json:"year"`
	Batch     string    `json:"batch"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateStudentRequest is the payload for registering a new student.
type CreateStudentRequest struct {
	FirstName string `json:"firstName" binding:"required,min=1,max=100"`
	LastName  string `json:"lastName" binding:"required,min=1,max=100"`
	RollNo    int    `json:"rollNo" binding:"required,min=1"`
	Branch    string `json:"branch" binding:"required,min=2,max=20"`
	Year      int    `json:"year" binding:"required,min=1,max=4"`
	Batch     string `json:"batch" binding:"required,min=1,max=20"`
	Email     string `json:"email" binding:"required,email,max=255"`
}

// BranchStudents groups the students of one branch for the admin listing.
type BranchStudents struct {
	Branch   string    `json:"branch"`
	Students []Student `json:"students"`
}
