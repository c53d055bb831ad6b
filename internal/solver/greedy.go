// Package solver implements the two-phase schedule construction: a
// greedy constructive seed followed by parallel simulated-annealing
// chains. The greedy phase sorts by size, scans slots, and tracks the
// best local placement found so far.
package solver

import (
	"sort"

	"github.com/rhyrak/classschedule/internal/index"
	"github.com/rhyrak/classschedule/pkg/model"
)

// greedyUndesirablePenalty ranks candidate slots during greedy
// construction only -- it is not the full cost function.
const greedyUndesirablePenalty = 20.0

// Greedy builds a conflict-free seed schedule. Entries are tried in
// descending StudentCount order (stable on ties); each entry is placed
// into the (day, slot, room) with the lowest local cost among rooms in
// idx.SuitableRooms[i], skipping Forbidden teacher slots and any
// conflict with an already-placed entry (shared teacher, room, or group
// at the same (day, slot)). An entry with no feasible placement is
// dropped -- left unscheduled.
func Greedy(entries []model.UnscheduledEntry, idx *index.Index) []model.ScheduleEntry {
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return entries[order[a]].StudentCount > entries[order[b]].StudentCount
	})

	var schedule []model.ScheduleEntry

	for _, i := range order {
		entry := entries[i]
		rooms := idx.SuitableRooms[i]
		if len(rooms) == 0 {
			continue
		}

		t, hasTeacher := idx.TeacherIdx[entry.TeacherID]

		bestFound := false
		var best model.ScheduleEntry
		bestLocalCost := 0.0

		for d, day := range idx.Days {
			for s := 0; s < idx.NumTimeSlots; s++ {
				if hasTeacher && idx.TeacherAvailAt(t, d, s) == model.Forbidden {
					continue
				}

				slotID := idx.TimeSlotIDs[s]

				for _, c := range rooms {
					classroomID := idx.ClassroomIDs[c]
					if conflicts(schedule, day, slotID, entry.TeacherID, classroomID, entry.GroupIDs) {
						continue
					}

					localCost := 0.0
					if hasTeacher && idx.TeacherAvailAt(t, d, s) == model.Undesirable {
						localCost = greedyUndesirablePenalty
					}

					if !bestFound || localCost < bestLocalCost {
						bestFound = true
						bestLocalCost = localCost
						best = model.ScheduleEntry{
							ID:             "sched-" + entry.UID,
							Day:            day,
							TimeSlotID:     slotID,
							ClassroomID:    classroomID,
							SubjectID:      entry.SubjectID,
							TeacherID:      entry.TeacherID,
							GroupIDs:       entry.GroupIDs,
							ClassType:      entry.ClassType,
							UnscheduledUID: entry.UID,
						}
					}
				}
			}
		}

		if bestFound {
			schedule = append(schedule, best)
		}
	}

	return schedule
}

func conflicts(schedule []model.ScheduleEntry, day, slotID, teacherID, classroomID string, groupIDs []string) bool {
	for _, placed := range schedule {
		if placed.Day != day || placed.TimeSlotID != slotID {
			continue
		}
		if placed.TeacherID == teacherID || placed.ClassroomID == classroomID {
			return true
		}
		for _, g := range groupIDs {
			for _, pg := range placed.GroupIDs {
				if g == pg {
					return true
				}
			}
		}
	}
	return false
}

