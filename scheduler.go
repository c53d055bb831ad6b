// Package classschedule is the core scheduling engine: it turns a set of
// teachers, groups, classrooms, subjects, time slots, and unscheduled
// class entries into a best-effort assignment of (day, slot, classroom)
// triples.
package classschedule

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rhyrak/classschedule/internal/cost"
	"github.com/rhyrak/classschedule/internal/index"
	"github.com/rhyrak/classschedule/internal/solver"
	"github.com/rhyrak/classschedule/pkg/model"
)

// Scheduler is the two-operation facade: Load builds the index, Solve
// runs the greedy+annealing pipeline and returns the best schedule
// found. A Scheduler is not safe for concurrent Load/Solve calls on the
// same instance -- callers needing that should use one Scheduler per
// concurrent caller.
type Scheduler struct {
	logger zerolog.Logger

	idx     *index.Index
	entries []model.UnscheduledEntry
	cfg     model.Config
	acfg    solver.AnnealConfig
}

// New creates a Scheduler that logs solve-phase events through logger.
func New(logger zerolog.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Load builds the Index from the given input model. Idempotent: calling
// it again discards all previously loaded state and rebuilds from
// scratch. days may be nil to use index.DefaultWeekDays.
func (s *Scheduler) Load(
	teachers []model.Teacher,
	groups []model.Group,
	classrooms []model.Classroom,
	subjects []model.Subject,
	timeSlots []model.TimeSlot,
	entries []model.UnscheduledEntry,
	cfg model.Config,
	days []string,
) {
	s.idx = index.Build(teachers, groups, classrooms, subjects, timeSlots, entries, days)
	s.entries = entries
	s.cfg = cfg

	s.logger.Debug().
		Int("teachers", len(teachers)).
		Int("groups", len(groups)).
		Int("classrooms", len(classrooms)).
		Int("subjects", len(subjects)).
		Int("timeSlots", len(timeSlots)).
		Int("entries", len(entries)).
		Msg("index built")
}

// WithAnnealConfig overrides the simulated-annealing knobs (chain count,
// temperature, cooling rate, iteration budget) for subsequent Solve
// calls, for callers who need to tune the search without touching
// model.Config.
func (s *Scheduler) WithAnnealConfig(acfg solver.AnnealConfig) *Scheduler {
	s.acfg = acfg
	return s
}

// Solve runs the greedy constructor followed by parallel simulated
// annealing and returns the best schedule found. ctx is checked
// cooperatively between SA iterations, so context.Background() reproduces
// an uninterruptible run to full completion.
func (s *Scheduler) Solve(ctx context.Context) []model.ScheduleEntry {
	if s.idx == nil {
		return nil
	}

	result := solver.Solve(ctx, s.entries, s.idx, s.cfg, s.acfg)

	s.logger.Info().
		Int("scheduled", len(result)).
		Int("requested", len(s.entries)).
		Msg("solve complete")

	return result
}

// Cost evaluates schedule against the currently loaded index and
// configuration. Callers use this to report the final cost of Solve's
// result without reaching into the core packages directly.
func (s *Scheduler) Cost(schedule []model.ScheduleEntry) float64 {
	if s.idx == nil {
		return 0
	}
	return cost.Evaluate(schedule, s.idx, s.cfg)
}
