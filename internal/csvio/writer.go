package csvio

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/classschedule/pkg/model"
)

// ExportSchedule writes schedule to path as CSV, truncating any existing
// file at that path first. Returns path on success, matching the
// teacher's ExportSchedule signature (internal/csvio/writer.go).
func ExportSchedule(schedule []model.ScheduleEntry, path string) (string, error) {
	rows := toRows(schedule)

	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("remove existing %s: %w", path, err)
		}
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ExportScheduleString formats schedule as a CSV string without touching
// disk, for callers that want to stream or embed the result.
func ExportScheduleString(schedule []model.ScheduleEntry) (string, error) {
	rows := toRows(schedule)
	str, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("marshal schedule: %w", err)
	}
	return str, nil
}

func toRows(schedule []model.ScheduleEntry) []*ScheduleEntryRow {
	rows := make([]*ScheduleEntryRow, len(schedule))
	for i, e := range schedule {
		rows[i] = &ScheduleEntryRow{
			ID:             e.ID,
			Day:            e.Day,
			TimeSlotID:     e.TimeSlotID,
			ClassroomID:    e.ClassroomID,
			SubjectID:      e.SubjectID,
			TeacherID:      e.TeacherID,
			GroupIDs:       joinList(e.GroupIDs),
			ClassType:      e.ClassType,
			UnscheduledUID: e.UnscheduledUID,
		}
	}
	return rows
}
