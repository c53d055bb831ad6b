package solver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/classschedule/internal/index"
	"github.com/rhyrak/classschedule/internal/solver"
	"github.com/rhyrak/classschedule/pkg/model"
)

func twoSlotFixture() ([]model.Teacher, []model.Group, []model.Classroom, []model.Subject, []model.TimeSlot) {
	teachers := []model.Teacher{{ID: "t1"}}
	groups := []model.Group{{ID: "g1", StudentCount: 5}}
	classrooms := []model.Classroom{{ID: "c1", Capacity: 10}}
	subjects := []model.Subject{{ID: "s1"}}
	timeSlots := []model.TimeSlot{{ID: "ts1"}, {ID: "ts2"}}
	return teachers, groups, classrooms, subjects, timeSlots
}

func TestGreedyProducesConflictFreeSchedule(t *testing.T) {
	teachers, groups, classrooms, subjects, timeSlots := twoSlotFixture()
	entries := []model.UnscheduledEntry{
		{UID: "e1", SubjectID: "s1", TeacherID: "t1", GroupIDs: []string{"g1"}, StudentCount: 5},
		{UID: "e2", SubjectID: "s1", TeacherID: "t1", GroupIDs: []string{"g1"}, StudentCount: 3},
	}
	idx := index.Build(teachers, groups, classrooms, subjects, timeSlots, entries, nil)

	schedule := solver.Greedy(entries, idx)
	require.Len(t, schedule, 2, "one classroom can still host both entries across two time slots")

	seen := map[string]bool{}
	for _, e := range schedule {
		key := e.Day + "|" + e.TimeSlotID
		assert.False(t, seen[key], "same teacher/room placed twice into %s", key)
		seen[key] = true
	}
}

func TestGreedyDropsEntryWithNoSuitableRooms(t *testing.T) {
	teachers := []model.Teacher{{ID: "t1"}}
	groups := []model.Group{{ID: "g1"}}
	classrooms := []model.Classroom{{ID: "c1", Capacity: 2}}
	subjects := []model.Subject{{ID: "s1"}}
	timeSlots := []model.TimeSlot{{ID: "ts1"}}
	entries := []model.UnscheduledEntry{
		{UID: "e1", SubjectID: "s1", TeacherID: "t1", GroupIDs: []string{"g1"}, StudentCount: 50},
	}
	idx := index.Build(teachers, groups, classrooms, subjects, timeSlots, entries, nil)

	schedule := solver.Greedy(entries, idx)
	assert.Empty(t, schedule, "no classroom has capacity for 50 students")
}

func TestGreedyDropsEntryWhenTeacherForbiddenEverywhere(t *testing.T) {
	forbidAll := map[string]map[string]model.AvailabilityLevel{}
	for _, day := range index.DefaultWeekDays {
		forbidAll[day] = map[string]model.AvailabilityLevel{"ts1": model.Forbidden}
	}
	teachers := []model.Teacher{{ID: "t1", Availability: model.AvailabilityGrid{Grid: forbidAll}}}
	groups := []model.Group{{ID: "g1"}}
	classrooms := []model.Classroom{{ID: "c1", Capacity: 10}}
	subjects := []model.Subject{{ID: "s1"}}
	timeSlots := []model.TimeSlot{{ID: "ts1"}}
	entries := []model.UnscheduledEntry{
		{UID: "e1", SubjectID: "s1", TeacherID: "t1", GroupIDs: []string{"g1"}, StudentCount: 5},
	}
	idx := index.Build(teachers, groups, classrooms, subjects, timeSlots, entries, nil)

	schedule := solver.Greedy(entries, idx)
	assert.Empty(t, schedule, "the only time slot is forbidden for the only teacher")
}

func TestGreedyPrefersAvailableOverUndesirableSlot(t *testing.T) {
	teachers := []model.Teacher{{
		ID: "t1",
		Availability: model.AvailabilityGrid{
			Grid: map[string]map[string]model.AvailabilityLevel{
				"Monday": {"ts1": model.Undesirable},
			},
		},
	}}
	groups := []model.Group{{ID: "g1"}}
	classrooms := []model.Classroom{{ID: "c1", Capacity: 10}}
	subjects := []model.Subject{{ID: "s1"}}
	timeSlots := []model.TimeSlot{{ID: "ts1"}}
	entries := []model.UnscheduledEntry{
		{UID: "e1", SubjectID: "s1", TeacherID: "t1", GroupIDs: []string{"g1"}, StudentCount: 5},
	}
	idx := index.Build(teachers, groups, classrooms, subjects, timeSlots, entries, nil)

	schedule := solver.Greedy(entries, idx)
	require.Len(t, schedule, 1)
	assert.NotEqual(t, "Monday", schedule[0].Day, "Tuesday (Available) beats Monday (Undesirable) on local cost")
}

func TestSolveReturnsEmptyWhenGreedySeedIsEmpty(t *testing.T) {
	teachers := []model.Teacher{{ID: "t1"}}
	groups := []model.Group{{ID: "g1"}}
	classrooms := []model.Classroom{{ID: "c1", Capacity: 1}}
	subjects := []model.Subject{{ID: "s1"}}
	timeSlots := []model.TimeSlot{{ID: "ts1"}}
	entries := []model.UnscheduledEntry{
		{UID: "e1", SubjectID: "s1", TeacherID: "t1", GroupIDs: []string{"g1"}, StudentCount: 50},
	}
	idx := index.Build(teachers, groups, classrooms, subjects, timeSlots, entries, nil)

	result := solver.Solve(context.Background(), entries, idx, model.Config{Strictness: 5}, solver.AnnealConfig{})
	assert.Empty(t, result)
}

func TestSolveSingleEntrySingleSlotSingleRoom(t *testing.T) {
	teachers, groups, classrooms, subjects, timeSlots := twoSlotFixture()
	classrooms = classrooms[:1]
	timeSlots = timeSlots[:1]
	entries := []model.UnscheduledEntry{
		{UID: "e1", SubjectID: "s1", TeacherID: "t1", GroupIDs: []string{"g1"}, StudentCount: 5},
	}
	idx := index.Build(teachers, groups, classrooms, subjects, timeSlots, entries, nil)

	result := solver.Solve(context.Background(), entries, idx, model.Config{Strictness: 5}, solver.AnnealConfig{Chains: 1, Iterations: 10})
	require.Len(t, result, 1)
	assert.Equal(t, "c1", result[0].ClassroomID)
	assert.Equal(t, "ts1", result[0].TimeSlotID)
}
