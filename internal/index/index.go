// Package index turns the identifier-keyed, possibly-sparse input model
// into dense numeric tables. Each identifier maps to a small integer
// here; the cost evaluator resolves an entry's identifiers through these
// maps and does all of its counting and availability lookups on the
// integer-indexed tables.
package index

import "github.com/rhyrak/classschedule/pkg/model"

// DefaultWeekDays is the fixed six-day week the core operates on, in the
// caller's locale. Callers needing a different locale's day names pass
// their own slice to Build.
var DefaultWeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Index is built once per Load and is read-only for the remainder of a
// solve. Apart from the identifier maps, the reverse id lists (Days,
// TimeSlotIDs, ClassroomIDs) and the Classrooms slice, its tables hold
// only integer indices into the caller's input slices.
type Index struct {
	Days []string

	TeacherIdx  map[string]int
	GroupIdx    map[string]int
	ClassroomIdx map[string]int
	SubjectIdx  map[string]int
	TimeSlotIdx map[string]int
	DayIdx      map[string]int

	NumTeachers   int
	NumGroups     int
	NumClassrooms int
	NumSubjects   int
	NumTimeSlots  int
	NumDays       int

	// TeacherAvail and GroupAvail are flattened [entity][day][slot] cubes,
	// stride numDays*numTimeSlots then numTimeSlots.
	TeacherAvail []model.AvailabilityLevel
	GroupAvail   []model.AvailabilityLevel

	// Pin arrays hold a classroom index, or -1 for "no pin" / unresolved.
	TeacherPin []int
	GroupPin   []int
	SubjectPin []int

	// SuitableRooms[entryIndex] lists feasible classroom indices for the
	// UnscheduledEntry at that same index in the slice passed to Build.
	SuitableRooms [][]int

	// TimeSlotIDs and ClassroomIDs are the reverse of TimeSlotIdx and
	// ClassroomIdx -- index to identifier -- so the solver never has to
	// scan a map to turn a chosen slot/room index back into an id.
	TimeSlotIDs []string
	ClassroomIDs []string

	Classrooms []model.Classroom
}

// Build constructs an Index from the input model. It tolerates unknown
// identifiers everywhere: a reference that doesn't resolve is simply
// skipped when building the derived structure that would have used it.
func Build(
	teachers []model.Teacher,
	groups []model.Group,
	classrooms []model.Classroom,
	subjects []model.Subject,
	timeSlots []model.TimeSlot,
	entries []model.UnscheduledEntry,
	days []string,
) *Index {
	if days == nil {
		days = DefaultWeekDays
	}

	idx := &Index{
		Days:          days,
		NumTeachers:   len(teachers),
		NumGroups:     len(groups),
		NumClassrooms: len(classrooms),
		NumSubjects:   len(subjects),
		NumTimeSlots:  len(timeSlots),
		NumDays:       len(days),
		Classrooms:    classrooms,
	}

	idx.TimeSlotIDs = make([]string, len(timeSlots))
	for i, ts := range timeSlots {
		idx.TimeSlotIDs[i] = ts.ID
	}
	idx.ClassroomIDs = make([]string, len(classrooms))
	for i, c := range classrooms {
		idx.ClassroomIDs[i] = c.ID
	}

	idx.TeacherIdx = make(map[string]int, len(teachers))
	for i, t := range teachers {
		idx.TeacherIdx[t.ID] = i
	}
	idx.GroupIdx = make(map[string]int, len(groups))
	for i, g := range groups {
		idx.GroupIdx[g.ID] = i
	}
	idx.ClassroomIdx = make(map[string]int, len(classrooms))
	for i, c := range classrooms {
		idx.ClassroomIdx[c.ID] = i
	}
	idx.SubjectIdx = make(map[string]int, len(subjects))
	for i, s := range subjects {
		idx.SubjectIdx[s.ID] = i
	}
	idx.TimeSlotIdx = make(map[string]int, len(timeSlots))
	for i, ts := range timeSlots {
		idx.TimeSlotIdx[ts.ID] = i
	}
	idx.DayIdx = make(map[string]int, len(days))
	for i, d := range days {
		idx.DayIdx[d] = i
	}

	idx.buildAvailability(teachers, groups, timeSlots, days)
	idx.buildPins(teachers, groups, subjects)
	idx.buildSuitableRooms(subjects, classrooms, entries)

	return idx
}

func (idx *Index) buildAvailability(teachers []model.Teacher, groups []model.Group, timeSlots []model.TimeSlot, days []string) {
	cube := idx.NumDays * idx.NumTimeSlots
	idx.TeacherAvail = make([]model.AvailabilityLevel, idx.NumTeachers*cube)
	for t, teacher := range teachers {
		base := t * cube
		for d, day := range days {
			for s, slot := range timeSlots {
				idx.TeacherAvail[base+d*idx.NumTimeSlots+s] = teacher.Availability.At(day, slot.ID)
			}
		}
	}

	idx.GroupAvail = make([]model.AvailabilityLevel, idx.NumGroups*cube)
	for g, group := range groups {
		base := g * cube
		for d, day := range days {
			for s, slot := range timeSlots {
				idx.GroupAvail[base+d*idx.NumTimeSlots+s] = group.Availability.At(day, slot.ID)
			}
		}
	}
}

// TeacherAvailAt returns the availability level for teacher index t at
// (day index d, slot index s).
func (idx *Index) TeacherAvailAt(t, d, s int) model.AvailabilityLevel {
	return idx.TeacherAvail[t*idx.NumDays*idx.NumTimeSlots+d*idx.NumTimeSlots+s]
}

// GroupAvailAt returns the availability level for group index g at
// (day index d, slot index s).
func (idx *Index) GroupAvailAt(g, d, s int) model.AvailabilityLevel {
	return idx.GroupAvail[g*idx.NumDays*idx.NumTimeSlots+d*idx.NumTimeSlots+s]
}

func (idx *Index) buildPins(teachers []model.Teacher, groups []model.Group, subjects []model.Subject) {
	idx.TeacherPin = make([]int, idx.NumTeachers)
	for t, teacher := range teachers {
		idx.TeacherPin[t] = idx.resolvePin(teacher.PinnedClassroomID)
	}

	idx.GroupPin = make([]int, idx.NumGroups)
	for g, group := range groups {
		idx.GroupPin[g] = idx.resolvePin(group.PinnedClassroomID)
	}

	idx.SubjectPin = make([]int, idx.NumSubjects)
	for s, subject := range subjects {
		idx.SubjectPin[s] = idx.resolvePin(subject.PinnedClassroomID)
	}
}

func (idx *Index) resolvePin(classroomID string) int {
	if classroomID == "" {
		return -1
	}
	if c, ok := idx.ClassroomIdx[classroomID]; ok {
		return c
	}
	return -1
}

func (idx *Index) buildSuitableRooms(subjects []model.Subject, classrooms []model.Classroom, entries []model.UnscheduledEntry) {
	subjectByID := make(map[string]*model.Subject, len(subjects))
	for i := range subjects {
		subjectByID[subjects[i].ID] = &subjects[i]
	}

	idx.SuitableRooms = make([][]int, len(entries))
	for i, entry := range entries {
		subject, ok := subjectByID[entry.SubjectID]
		if !ok {
			continue
		}
		for c, room := range classrooms {
			if room.Capacity < entry.StudentCount {
				continue
			}
			if !typeMatches(subject, entry.ClassType, room.TypeID) {
				continue
			}
			if !tagsMatch(subject, room.TagIDs) {
				continue
			}
			idx.SuitableRooms[i] = append(idx.SuitableRooms[i], c)
		}
	}
}

func typeMatches(subject *model.Subject, classType, roomTypeID string) bool {
	reqs, ok := subject.ClassroomTypeRequirements[classType]
	if !ok || len(reqs) == 0 {
		return true
	}
	for _, r := range reqs {
		if r == roomTypeID {
			return true
		}
	}
	return false
}

func tagsMatch(subject *model.Subject, roomTagIDs []string) bool {
	for _, required := range subject.RequiredClassroomTagIDs {
		found := false
		for _, tag := range roomTagIDs {
			if tag == required {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
