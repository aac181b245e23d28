package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/rs/zerolog"
)

type fakeStudentLister struct {
	byBranch map[string][]model.Student
	err      error
}

func (f *fakeStudentLister) ListByBranch(_ context.Context, branch string) ([]model.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byBranch[branch], nil
}

type fakeAttendanceLister struct {
	records []model.Attendance
}

func (f *fakeAttendanceLister) ListByStudentIDs(_ context.Context, studentIDs []int) ([]model.Attendance, error) {
	want := make(map[int]bool, len(studentIDs))
	for _, id := range studentIDs {
		want[id] = true
	}
	out := make([]model.Attendance, 0)
	for _, rec := range f.records {
		if want[rec.StudentID] {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeSubjectLookup struct {
	subjects []model.Subject
}

func (f *fakeSubjectLookup) GetByIDs(_ context.Context, ids []int) ([]model.Subject, error) {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]model.Subject, 0)
	for _, sub := range f.subjects {
		if want[sub.ID] {
			out = append(out, sub)
		}
	}
	return out, nil
}

func reportFixture() *ReportService {
	students := &fakeStudentLister{byBranch: map[string][]model.Student{
		"CSE": {
			{ID: 1, FirstName: "Asha", LastName: "Rao", RollNo: 1, Branch: "CSE"},
			{ID: 2, FirstName: "Vikram", LastName: "Iyer", RollNo: 2, Branch: "CSE"},
		},
	}}
	attendance := &fakeAttendanceLister{records: []model.Attendance{
		{ID: 1, StudentID: 1, SubjectID: 10, Status: model.StatusPresent, Slot: 1},
		{ID: 2, StudentID: 1, SubjectID: 10, Status: model.StatusAbsent, Slot: 2},
		{ID: 3, StudentID: 1, SubjectID: 20, Status: model.StatusPresent, Slot: 1},
	}}
	subjects := &fakeSubjectLookup{subjects: []model.Subject{
		{ID: 10, Name: "Operating Systems"},
		{ID: 20, Name: "Databases"},
	}}
	return NewReportService(students, attendance, subjects, nil, zerolog.Nop())
}

func TestBranchReportAggregates(t *testing.T) {
	svc := reportFixture()

	reports, err := svc.BranchReport(context.Background(), "CSE")
	if err != nil {
		t.Fatalf("BranchReport: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(reports))
	}

	// Present in 2 of 3 lectures rounds to 67.
	first := reports[0]
	if first.StudentID != 1 {
		t.Fatalf("rows out of roll order: %+v", reports)
	}
	if first.TotalLectures != 3 || first.TotalPresent != 2 {
		t.Errorf("totals = %d/%d, want 2/3", first.TotalPresent, first.TotalLectures)
	}
	if first.Percentage != 67 {
		t.Errorf("percentage = %d, want 67", first.Percentage)
	}
	if first.Name != "Asha Rao" {
		t.Errorf("name = %q", first.Name)
	}

	if len(first.Subjects) != 2 {
		t.Fatalf("expected 2 subject stats, got %d", len(first.Subjects))
	}
	os := first.Subjects[0]
	if os.SubjectName != "Operating Systems" || os.TotalLectures != 2 || os.PresentCount != 1 {
		t.Errorf("unexpected first subject stat: %+v", os)
	}
	db := first.Subjects[1]
	if db.SubjectName != "Databases" || db.TotalLectures != 1 || db.PresentCount != 1 {
		t.Errorf("unexpected second subject stat: %+v", db)
	}
}

func TestBranchReportZeroAttendanceIsZeroPercent(t *testing.T) {
	svc := reportFixture()

	reports, err := svc.BranchReport(context.Background(), "CSE")
	if err != nil {
		t.Fatalf("BranchReport: %v", err)
	}

	// Student 2 has no records: zero stats, never a division error.
	second := reports[1]
	if second.StudentID != 2 {
		t.Fatalf("rows out of roll order: %+v", reports)
	}
	if second.TotalLectures != 0 || second.TotalPresent != 0 || second.Percentage != 0 {
		t.Errorf("expected zero stats, got %+v", second)
	}
	if len(second.Subjects) != 0 {
		t.Errorf("expected no subject stats, got %+v", second.Subjects)
	}
}

func TestBranchReportUnknownBranch(t *testing.T) {
	svc := reportFixture()

	_, err := svc.BranchReport(context.Background(), "EEE")
	if !errors.Is(err, ErrNoStudents) {
		t.Fatalf("got %v, want ErrNoStudents", err)
	}
}

func TestBranchReportBlankBranch(t *testing.T) {
	svc := reportFixture()

	for _, branch := range []string{"", "   "} {
		if _, err := svc.BranchReport(context.Background(), branch); !errors.Is(err, ErrBranchRequired) {
			t.Errorf("branch %q: got %v, want ErrBranchRequired", branch, err)
		}
	}
}

func TestPercentageRounding(t *testing.T) {
	cases := []struct {
		present, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{5, 5, 100},
		{1, 8, 13}, // 12.5 rounds half away from zero
	}
	for _, tc := range cases {
		if got := percentage(tc.present, tc.total); got != tc.want {
			t.Errorf("percentage(%d, %d) = %d, want %d", tc.present, tc.total, got, tc.want)
		}
	}
}
