package model

import "time"

// Subject represents a taught course with its lecture slot.
type Subject struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Year      int       `json:"year"`
	Semester  int       `json:"sem"`
	Slot      int       `json:"slot"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Code     string `json:"code" binding:"required,min=2,max=20"`
	Year     int    `json:"year" binding:"required,min=1,max=4"`
	Semester int    `json:"sem" binding:"required,min=1,max=2"`
	Slot     int    `json:"slot" binding:"required,min=1"`
}
