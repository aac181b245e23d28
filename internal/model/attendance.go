package model

import "time"

// AttendanceStatus is the per-lecture presence state.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Attendance is one student's record for one lecture slot of a subject.
// At most one record may exist per (student, subject, slot, calendar
// day); the attendances table enforces this with a unique index.
type Attendance struct {
	ID        int              `json:"id"`
	StudentID int              `json:"studentId"`
	SubjectID int              `json:"subjectId"`
	Status    AttendanceStatus `json:"status"`
	Slot      int              `json:"slot"`
	MarkedOn  time.Time        `json:"marked_on"`
	CreatedAt time.Time        `json:"created_at"`
}

// AttendanceEntry is one row of a submitted attendance batch.
type AttendanceEntry struct {
	StudentID int              `json:"studentId" binding:"required"`
	SubjectID int              `json:"subjectId" binding:"required"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=present absent"`
	Slot      int              `json:"slot" binding:"gte=0"`
}

// MarkAttendanceRequest is the payload for recording a lecture's attendance.
type MarkAttendanceRequest struct {
	Attendance []AttendanceEntry `json:"attendance" binding:"required,min=1,dive"`
}

// SubjectStat is the per-subject attendance aggregate for one student.
type SubjectStat struct {
	SubjectID     int    `json:"subjectId"`
	SubjectName   string `json:"subjectName"`
	PresentCount  int    `json:"presentCount"`
	TotalLectures int    `json:"totalLectures"`
}

// StudentReport is one student's row in the branch attendance report.
type StudentReport struct {
	StudentID     int           `json:"studentId"`
	RollNo        int           `json:"rollNo"`
	Name          string        `json:"name"`
	Branch        string        `json:"branch"`
	Subjects      []SubjectStat `json:"subjects"`
	TotalLectures int           `json:"totalLectures"`
	TotalPresent  int           `json:"totalPresent"`
	Percentage    int           `json:"percentage"`
}
