package solver

import (
	"context"

	"github.com/rhyrak/classschedule/internal/index"
	"github.com/rhyrak/classschedule/pkg/model"
)

// Solve runs the full two-phase pipeline: Greedy constructs a seed, then
// Anneal refines it with K parallel chains. If the greedy seed is empty,
// Solve returns it without running any annealing chain -- there is
// nothing for a chain to mutate.
func Solve(ctx context.Context, entries []model.UnscheduledEntry, idx *index.Index, cfg model.Config, acfg AnnealConfig) []model.ScheduleEntry {
	seed := Greedy(entries, idx)
	if len(seed) == 0 {
		return seed
	}
	return Anneal(ctx, seed, idx, cfg, acfg)
}
