package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/campusworks/rollbook-backend/internal/config"
	"github.com/campusworks/rollbook-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Reporting errors.
var (
	ErrBranchRequired = errors.New("branch is required")
	ErrNoStudents     = errors.New("no students found for this branch")
)

// reportCacheTTL bounds staleness if a version bump is ever lost.
const reportCacheTTL = 5 * time.Minute

// StudentLister lists the students of a branch ordered by roll number.
type StudentLister interface {
	ListByBranch(ctx context.Context, branch string) ([]model.Student, error)
}

// AttendanceLister returns attendance records for a set of students.
type AttendanceLister interface {
	ListByStudentIDs(ctx context.Context, studentIDs []int) ([]model.Attendance, error)
}

// SubjectLookup resolves subjects referenced by attendance records.
type SubjectLookup interface {
	GetByIDs(ctx context.Context, ids []int) ([]model.Subject, error)
}

// ReportService computes per-branch attendance statistics.
type ReportService struct {
	students   StudentLister
	attendance AttendanceLister
	subjects   SubjectLookup
	rdb        *redis.Client
	log        zerolog.Logger
}

// NewReportService creates a new ReportService. rdb may be nil, which
// disables caching.
func NewReportService(students StudentLister, attendance AttendanceLister, subjects SubjectLookup, rdb *redis.Client, log zerolog.Logger) *ReportService {
	return &ReportService{
		students:   students,
		attendance: attendance,
		subjects:   subjects,
		rdb:        rdb,
		log:        log.With().Str("component", "report_service").Logger(),
	}
}

// BranchReport returns one report row per student of the branch, roll
// numbers ascending. A branch with no students is ErrNoStudents; a
// student with no attendance yields zero stats, not an error.
func (s *ReportService) BranchReport(ctx context.Context, branch string) ([]model.StudentReport, error) {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return nil, ErrBranchRequired
	}

	cacheKey := s.cacheKey(ctx, branch)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	students, err := s.students.ListByBranch(ctx, branch)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if len(students) == 0 {
		return nil, ErrNoStudents
	}

	ids := make([]int, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}

	records, err := s.attendance.ListByStudentIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	subjects, err := s.subjects.GetByIDs(ctx, subjectIDsOf(records))
	if err != nil {
		return nil, fmt.Errorf("resolve subjects: %w", err)
	}

	reports := buildReports(students, records, subjects)
	s.toCache(ctx, cacheKey, reports)
	return reports, nil
}

// buildReports aggregates attendance records into per-student report
// rows. Students arrive ordered by roll number and stay that way.
func buildReports(students []model.Student, records []model.Attendance, subjects []model.Subject) []model.StudentReport {
	subjectName := make(map[int]string, len(subjects))
	for _, sub := range subjects {
		subjectName[sub.ID] = sub.Name
	}

	byStudent := make(map[int][]model.Attendance)
	for _, rec := range records {
		byStudent[rec.StudentID] = append(byStudent[rec.StudentID], rec)
	}

	reports := make([]model.StudentReport, 0, len(students))
	for _, st := range students {
		own := byStudent[st.ID]

		stats := make([]model.SubjectStat, 0)
		statIndex := make(map[int]int)
		totalPresent := 0

		for _, rec := range own {
			i, ok := statIndex[rec.SubjectID]
			if !ok {
				i = len(stats)
				statIndex[rec.SubjectID] = i
				stats = append(stats, model.SubjectStat{
					SubjectID:   rec.SubjectID,
					SubjectName: subjectName[rec.SubjectID],
				})
			}
			stats[i].TotalLectures++
			if rec.Status == model.StatusPresent {
				stats[i].PresentCount++
				totalPresent++
			}
		}

		reports = append(reports, model.StudentReport{
			StudentID:     st.ID,
			RollNo:        st.RollNo,
			Name:          st.FirstName + " " + st.LastName,
			Branch:        st.Branch,
			Subjects:      stats,
			TotalLectures: len(own),
			TotalPresent:  totalPresent,
			Percentage:    percentage(totalPresent, len(own)),
		})
	}
	return reports
}

// percentage is round(100 * present / total), 0 when total is 0.
func percentage(present, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(present) / float64(total)))
}

func subjectIDsOf(records []model.Attendance) []int {
	seen := make(map[int]bool)
	ids := make([]int, 0)
	for _, rec := range records {
		if !seen[rec.SubjectID] {
			seen[rec.SubjectID] = true
			ids = append(ids, rec.SubjectID)
		}
	}
	return ids
}

// cacheKey embeds the current report version, so any attendance insert
// invalidates every cached branch report at once.
func (s *ReportService) cacheKey(ctx context.Context, branch string) string {
	if s.rdb == nil {
		return ""
	}
	version, err := s.rdb.Get(ctx, config.RedisKey.ReportVersionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Report version lookup failed")
		return ""
	}
	return config.RedisKey.BranchReportKey(branch, version)
}

func (s *ReportService) fromCache(ctx context.Context, key string) []model.StudentReport {
	if s.rdb == nil || key == "" {
		return nil
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Report cache read failed")
		}
		return nil
	}
	var reports []model.StudentReport
	if err := json.Unmarshal(raw, &reports); err != nil {
		s.log.Warn().Err(err).Msg("Report cache decode failed")
		return nil
	}
	return reports
}

func (s *ReportService) toCache(ctx context.Context, key string, reports []model.StudentReport) {
	if s.rdb == nil || key == "" {
		return
	}
	raw, err := json.Marshal(reports)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, reportCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Report cache write failed")
	}
}
