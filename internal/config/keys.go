package config

import "fmt"

type RedisKeyStruct struct{}

func NewRedisKeyStruct() *RedisKeyStruct {
	return &RedisKeyStruct{}
}

// ReportVersionKey returns the counter bumped on every attendance insert.
// Cached branch reports embed the version, so a bump invalidates them all.
func (r *RedisKeyStruct) ReportVersionKey() string {
	return "attendance:report:version"
}

// BranchReportKey returns the cache key for a branch report at a version.
func (r *RedisKeyStruct) BranchReportKey(branch string, version int64) string {
	return fmt.Sprintf("attendance:report:%s:v%d", branch, version)
}

// AttendanceEventsChannel returns the Pub/Sub channel carrying recorded
// attendance batches for the admin live feed.
func (r *RedisKeyStruct) AttendanceEventsChannel() string {
	return "attendance:events"
}

var RedisKey = NewRedisKeyStruct()
