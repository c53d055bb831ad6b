// Package cost evaluates a full schedule against the index in one pass.
// Evaluate is a pure function with its own scratch buffers, so
// concurrent callers sharing only the index (see internal/solver) never
// need synchronization.
package cost

import (
	"github.com/rhyrak/classschedule/internal/index"
	"github.com/rhyrak/classschedule/pkg/model"
)

const (
	hardConflictPenalty = 10000.0

	undesirablePenalty = 20.0
	desirableReward    = -10.0

	pinMismatchPenalty = 50.0
	pinMatchReward      = -100.0

	teacherDailyLoadThreshold = 4
	teacherDailyLoadPenalty   = 150.0

	groupDailyLoadThreshold     = 4
	groupDailyLoadHighThreshold = 5
	groupDailyLoadPenalty       = 100.0
	groupDailyLoadHighPenalty   = 200.0
)

// Evaluate returns the scalar cost of schedule given idx and cfg. Lower is
// better. An entry whose day or time slot doesn't resolve in idx is
// skipped entirely -- it contributes nothing to the cost.
func Evaluate(schedule []model.ScheduleEntry, idx *index.Index, cfg model.Config) float64 {
	m := cfg.PenaltyMultiplier()

	cube := idx.NumDays * idx.NumTimeSlots
	teacherUsage := make([]int, idx.NumTeachers*cube)
	groupUsage := make([]int, idx.NumGroups*cube)
	roomUsage := make([]int, idx.NumClassrooms*cube)
	teacherDailyLoad := make([]int, idx.NumTeachers*idx.NumDays)
	groupDailyLoad := make([]int, idx.NumGroups*idx.NumDays)

	var total float64

	for _, entry := range schedule {
		d, ok := idx.DayIdx[entry.Day]
		if !ok {
			continue
		}
		s, ok := idx.TimeSlotIdx[entry.TimeSlotID]
		if !ok {
			continue
		}
		offset := d*idx.NumTimeSlots + s

		t, hasTeacher := idx.TeacherIdx[entry.TeacherID]
		if hasTeacher {
			key := t*cube + offset
			teacherUsage[key]++
			if teacherUsage[key] > 1 {
				total += hardConflictPenalty
			}
			teacherDailyLoad[t*idx.NumDays+d]++

			switch idx.TeacherAvailAt(t, d, s) {
			case model.Undesirable:
				total += undesirablePenalty * m
			case model.Desirable:
				total += desirableReward * m
			case model.Forbidden:
				total += hardConflictPenalty
			}
		}

		c, hasRoom := idx.ClassroomIdx[entry.ClassroomID]
		if hasRoom {
			key := c*cube + offset
			roomUsage[key]++
			if roomUsage[key] > 1 {
				total += hardConflictPenalty
			}
		} else {
			c = -1
		}

		for _, gid := range entry.GroupIDs {
			g, ok := idx.GroupIdx[gid]
			if !ok {
				continue
			}
			key := g*cube + offset
			groupUsage[key]++
			if groupUsage[key] > 1 {
				total += hardConflictPenalty
			}
			groupDailyLoad[g*idx.NumDays+d]++

			switch idx.GroupAvailAt(g, d, s) {
			case model.Undesirable:
				total += undesirablePenalty * m
			case model.Desirable:
				total += desirableReward * m
			case model.Forbidden:
				total += hardConflictPenalty
			}
		}

		total += pinTerm(idx, entry, t, hasTeacher, c, m)
	}

	if cfg.Settings.EnforceStandardRules {
		total += dailyLoadPenalties(teacherDailyLoad, groupDailyLoad, m)
	}

	return total
}

// pinTerm collects the pinned classroom indices from teacher, subject,
// and each group for this entry, and adds the single pin term: a reward
// if any pinner's classroom matches the placed room, a penalty otherwise,
// nothing if no pinner exists. Applied once per entry regardless of how
// many pinners are present.
func pinTerm(idx *index.Index, entry model.ScheduleEntry, t int, hasTeacher bool, c int, m float64) float64 {
	hasPin := false
	matched := false

	check := func(pin int) {
		if pin == -1 {
			return
		}
		hasPin = true
		if pin == c {
			matched = true
		}
	}

	if hasTeacher {
		check(idx.TeacherPin[t])
	}
	if s, ok := idx.SubjectIdx[entry.SubjectID]; ok {
		check(idx.SubjectPin[s])
	}
	for _, gid := range entry.GroupIDs {
		if g, ok := idx.GroupIdx[gid]; ok {
			check(idx.GroupPin[g])
		}
	}

	if !hasPin {
		return 0
	}
	if matched {
		return pinMatchReward * m
	}
	return pinMismatchPenalty * m
}

func dailyLoadPenalties(teacherDailyLoad, groupDailyLoad []int, m float64) float64 {
	var total float64
	for _, v := range teacherDailyLoad {
		if v >= teacherDailyLoadThreshold {
			total += float64(v-3) * teacherDailyLoadPenalty * m
		}
	}
	for _, v := range groupDailyLoad {
		switch {
		case v >= groupDailyLoadHighThreshold:
			total += float64(v-4) * groupDailyLoadHighPenalty * m
		case v >= groupDailyLoadThreshold:
			total += float64(v-3) * groupDailyLoadPenalty * m
		}
	}
	return total
}
