package solver

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/classschedule/internal/cost"
	"github.com/rhyrak/classschedule/internal/index"
	"github.com/rhyrak/classschedule/pkg/model"
)

func TestChainCountHonorsOverrideUpToMax(t *testing.T) {
	assert.Equal(t, 3, chainCount(3))
	assert.Equal(t, MaxChains, chainCount(MaxChains+5), "an override above MaxChains is clamped")
}

func TestChainCountFallsBackToNumCPUWhenUnset(t *testing.T) {
	got := chainCount(0)
	assert.GreaterOrEqual(t, got, 1)
	assert.LessOrEqual(t, got, MaxChains)
}

func TestWithDefaultsFillsOnlyZeroFields(t *testing.T) {
	cfg := AnnealConfig{Temperature: 50}.withDefaults()
	assert.Equal(t, 50.0, cfg.Temperature)
	assert.Equal(t, DefaultAnnealConfig.CoolingRate, cfg.CoolingRate)
	assert.Equal(t, DefaultAnnealConfig.Iterations, cfg.Iterations)
}

func TestMutateChoosesFromFullUniverseNotSuitableRooms(t *testing.T) {
	teachers := []model.Teacher{{ID: "t1"}}
	groups := []model.Group{{ID: "g1"}}
	classrooms := []model.Classroom{{ID: "c1", Capacity: 1}, {ID: "c2", Capacity: 100}}
	subjects := []model.Subject{{ID: "s1"}}
	timeSlots := []model.TimeSlot{{ID: "ts1"}, {ID: "ts2"}}
	entries := []model.UnscheduledEntry{
		{UID: "e1", SubjectID: "s1", TeacherID: "t1", GroupIDs: []string{"g1"}, StudentCount: 50},
	}
	idx := index.Build(teachers, groups, classrooms, subjects, timeSlots, entries, nil)
	require.Equal(t, []int{1}, idx.SuitableRooms[0], "c1 is too small; only c2 satisfies capacity")

	schedule := []model.ScheduleEntry{{Day: "Monday", TimeSlotID: "ts1", ClassroomID: "c2", UnscheduledUID: "e1"}}
	rng := rand.New(rand.NewSource(1))

	sawC1 := false
	for i := 0; i < 50; i++ {
		mutate(schedule, idx, rng)
		if schedule[0].ClassroomID == "c1" {
			sawC1 = true
			break
		}
	}
	assert.True(t, sawC1, "mutate must be able to pick c1 even though it isn't in SuitableRooms")
}

func TestAnnealReturnsSeedUnchangedWhenEmpty(t *testing.T) {
	idx := &index.Index{}
	got := Anneal(context.Background(), nil, idx, model.Config{}, AnnealConfig{})
	assert.Empty(t, got)
}

func TestAnnealNeverReturnsWorseThanSeed(t *testing.T) {
	teachers := []model.Teacher{{ID: "t1"}}
	groups := []model.Group{{ID: "g1"}}
	classrooms := []model.Classroom{{ID: "c1", Capacity: 10}, {ID: "c2", Capacity: 10}}
	subjects := []model.Subject{{ID: "s1"}}
	timeSlots := []model.TimeSlot{{ID: "ts1"}, {ID: "ts2"}}
	entries := []model.UnscheduledEntry{
		{UID: "e1", SubjectID: "s1", TeacherID: "t1", GroupIDs: []string{"g1"}, StudentCount: 5},
	}
	idx := index.Build(teachers, groups, classrooms, subjects, timeSlots, entries, nil)

	seed := Greedy(entries, idx)
	require.Len(t, seed, 1)
	seedCost := cost.Evaluate(seed, idx, model.Config{Strictness: 5})

	result := Anneal(context.Background(), seed, idx, model.Config{Strictness: 5}, AnnealConfig{Chains: 2, Iterations: 200})
	resultCost := cost.Evaluate(result, idx, model.Config{Strictness: 5})

	assert.LessOrEqual(t, resultCost, seedCost)
}
