// Package csvio is the external collaborator that translates CSV rows
// into the core's value objects and back: open file, set delimiter,
// unmarshal, wrap errors on the way in; marshal and write on the way
// out.
package csvio

// TeacherRow is one row of the teachers CSV.
type TeacherRow struct {
	ID                string `csv:"id"`
	Name              string `csv:"name"`
	PinnedClassroomID string `csv:"pinned_classroom_id"`
}

// GroupRow is one row of the groups CSV.
type GroupRow struct {
	ID                string `csv:"id"`
	Name              string `csv:"name"`
	StudentCount      int    `csv:"student_count"`
	Course            int    `csv:"course"`
	PinnedClassroomID string `csv:"pinned_classroom_id"`
}

// ClassroomRow is one row of the classrooms CSV. TagIDs is a
// semicolon-separated list, the convention used for every list-valued
// column in these CSVs.
type ClassroomRow struct {
	ID       string `csv:"id"`
	Name     string `csv:"name"`
	Capacity int    `csv:"capacity"`
	TypeID   string `csv:"type_id"`
	TagIDs   string `csv:"tag_ids"`
}

// SubjectRow is one row of the subjects CSV. RequiredTagIDs is
// semicolon-separated.
type SubjectRow struct {
	ID                string `csv:"id"`
	Name              string `csv:"name"`
	PinnedClassroomID string `csv:"pinned_classroom_id"`
	RequiredTagIDs    string `csv:"required_tag_ids"`
}

// SubjectRoomRequirementRow lists, per subject and class type, the room
// type ids acceptable for that class type. Multiple rows per
// (SubjectID, ClassType) are grouped by the loader.
type SubjectRoomRequirementRow struct {
	SubjectID  string `csv:"subject_id"`
	ClassType  string `csv:"class_type"`
	RoomTypeID string `csv:"room_type_id"`
}

// TimeSlotRow is one row of the time slots CSV.
type TimeSlotRow struct {
	ID    string `csv:"id"`
	Name  string `csv:"name"`
	Order int    `csv:"order"`
}

// UnscheduledEntryRow is one row of the entries CSV. GroupIDs is
// semicolon-separated.
type UnscheduledEntryRow struct {
	UID          string `csv:"uid"`
	SubjectID    string `csv:"subject_id"`
	TeacherID    string `csv:"teacher_id"`
	GroupIDs     string `csv:"group_ids"`
	ClassType    string `csv:"class_type"`
	StudentCount int    `csv:"student_count"`
}

// AvailabilityRow is one sparse override in a teacher's or group's
// availability grid. EntityType is "teacher" or "group".
type AvailabilityRow struct {
	EntityType string `csv:"entity_type"`
	EntityID   string `csv:"entity_id"`
	Day        string `csv:"day"`
	TimeSlotID string `csv:"time_slot_id"`
	Level      int    `csv:"level"`
}

// ScheduleEntryRow is one row of the output schedule CSV.
type ScheduleEntryRow struct {
	ID             string `csv:"id"`
	Day            string `csv:"day"`
	TimeSlotID     string `csv:"time_slot_id"`
	ClassroomID    string `csv:"classroom_id"`
	SubjectID      string `csv:"subject_id"`
	TeacherID      string `csv:"teacher_id"`
	GroupIDs       string `csv:"group_ids"`
	ClassType      string `csv:"class_type"`
	UnscheduledUID string `csv:"unscheduled_uid"`
}
