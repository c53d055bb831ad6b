package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/classschedule/pkg/model"
)

func csvReader(delim rune) func(io.Reader) gocsv.CSVReader {
	return func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		return r
	}
}

func unmarshalFile(path string, delim rune, out interface{}) error {
	gocsv.SetCSVReader(csvReader(delim))

	f, err := os.OpenFile(path, os.O_RDONLY, os.ModePerm)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinList(ids []string) string {
	return strings.Join(ids, ";")
}

// LoadTeachers reads the teachers CSV. Availability grids are empty until
// ApplyAvailability is called with the availability CSV.
func LoadTeachers(path string, delim rune) ([]model.Teacher, error) {
	var rows []*TeacherRow
	if err := unmarshalFile(path, delim, &rows); err != nil {
		return nil, err
	}
	teachers := make([]model.Teacher, len(rows))
	for i, r := range rows {
		teachers[i] = model.Teacher{
			ID:                r.ID,
			Name:              r.Name,
			PinnedClassroomID: r.PinnedClassroomID,
		}
	}
	return teachers, nil
}

// LoadGroups reads the groups CSV.
func LoadGroups(path string, delim rune) ([]model.Group, error) {
	var rows []*GroupRow
	if err := unmarshalFile(path, delim, &rows); err != nil {
		return nil, err
	}
	groups := make([]model.Group, len(rows))
	for i, r := range rows {
		groups[i] = model.Group{
			ID:                r.ID,
			Name:              r.Name,
			StudentCount:      r.StudentCount,
			Course:            r.Course,
			PinnedClassroomID: r.PinnedClassroomID,
		}
	}
	return groups, nil
}

// LoadClassrooms reads the classrooms CSV.
func LoadClassrooms(path string, delim rune) ([]model.Classroom, error) {
	var rows []*ClassroomRow
	if err := unmarshalFile(path, delim, &rows); err != nil {
		return nil, err
	}
	classrooms := make([]model.Classroom, len(rows))
	for i, r := range rows {
		classrooms[i] = model.Classroom{
			ID:       r.ID,
			Name:     r.Name,
			Capacity: r.Capacity,
			TypeID:   r.TypeID,
			TagIDs:   splitList(r.TagIDs),
		}
	}
	return classrooms, nil
}

// LoadSubjects reads the subjects CSV and the subject-room-requirements
// CSV, merging the latter into each subject's ClassroomTypeRequirements.
func LoadSubjects(subjectsPath, requirementsPath string, delim rune) ([]model.Subject, error) {
	var rows []*SubjectRow
	if err := unmarshalFile(subjectsPath, delim, &rows); err != nil {
		return nil, err
	}

	subjects := make([]model.Subject, len(rows))
	bySubjectID := make(map[string]int, len(rows))
	for i, r := range rows {
		subjects[i] = model.Subject{
			ID:                        r.ID,
			Name:                      r.Name,
			PinnedClassroomID:         r.PinnedClassroomID,
			ClassroomTypeRequirements: make(map[string][]string),
			RequiredClassroomTagIDs:   splitList(r.RequiredTagIDs),
		}
		bySubjectID[r.ID] = i
	}

	if requirementsPath == "" {
		return subjects, nil
	}

	var reqRows []*SubjectRoomRequirementRow
	if err := unmarshalFile(requirementsPath, delim, &reqRows); err != nil {
		return nil, err
	}
	for _, r := range reqRows {
		i, ok := bySubjectID[r.SubjectID]
		if !ok {
			continue
		}
		subjects[i].ClassroomTypeRequirements[r.ClassType] = append(subjects[i].ClassroomTypeRequirements[r.ClassType], r.RoomTypeID)
	}

	return subjects, nil
}

// LoadTimeSlots reads the time slots CSV.
func LoadTimeSlots(path string, delim rune) ([]model.TimeSlot, error) {
	var rows []*TimeSlotRow
	if err := unmarshalFile(path, delim, &rows); err != nil {
		return nil, err
	}
	slots := make([]model.TimeSlot, len(rows))
	for i, r := range rows {
		slots[i] = model.TimeSlot{ID: r.ID, Name: r.Name, Order: r.Order}
	}
	return slots, nil
}

// LoadEntries reads the unscheduled entries CSV.
func LoadEntries(path string, delim rune) ([]model.UnscheduledEntry, error) {
	var rows []*UnscheduledEntryRow
	if err := unmarshalFile(path, delim, &rows); err != nil {
		return nil, err
	}
	entries := make([]model.UnscheduledEntry, len(rows))
	for i, r := range rows {
		entries[i] = model.UnscheduledEntry{
			UID:          r.UID,
			SubjectID:    r.SubjectID,
			TeacherID:    r.TeacherID,
			GroupIDs:     splitList(r.GroupIDs),
			ClassType:    r.ClassType,
			StudentCount: r.StudentCount,
		}
	}
	return entries, nil
}

// ApplyAvailability reads the availability overrides CSV and fills in the
// AvailabilityGrid of the matching teachers and groups in place.
func ApplyAvailability(path string, delim rune, teachers []model.Teacher, groups []model.Group) error {
	var rows []*AvailabilityRow
	if err := unmarshalFile(path, delim, &rows); err != nil {
		return err
	}

	teacherByID := make(map[string]int, len(teachers))
	for i := range teachers {
		teacherByID[teachers[i].ID] = i
	}
	groupByID := make(map[string]int, len(groups))
	for i := range groups {
		groupByID[groups[i].ID] = i
	}

	for _, r := range rows {
		level := model.AvailabilityLevel(r.Level)
		switch r.EntityType {
		case "teacher":
			i, ok := teacherByID[r.EntityID]
			if !ok {
				continue
			}
			setGridEntry(&teachers[i].Availability, r.Day, r.TimeSlotID, level)
		case "group":
			i, ok := groupByID[r.EntityID]
			if !ok {
				continue
			}
			setGridEntry(&groups[i].Availability, r.Day, r.TimeSlotID, level)
		}
	}
	return nil
}

func setGridEntry(grid *model.AvailabilityGrid, day, slotID string, level model.AvailabilityLevel) {
	if grid.Grid == nil {
		grid.Grid = make(map[string]map[string]model.AvailabilityLevel)
	}
	bySlot, ok := grid.Grid[day]
	if !ok {
		bySlot = make(map[string]model.AvailabilityLevel)
		grid.Grid[day] = bySlot
	}
	bySlot[slotID] = level
}

// ParseDelimiter converts a single-character string (e.g. from a config
// file) into the rune gocsv expects, defaulting to ',' when empty.
func ParseDelimiter(s string) (rune, error) {
	if s == "" {
		return ',', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return runes[0], nil
}

