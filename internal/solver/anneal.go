package solver

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/rhyrak/classschedule/internal/cost"
	"github.com/rhyrak/classschedule/internal/index"
	"github.com/rhyrak/classschedule/pkg/model"
)

// AnnealConfig governs the simulated-annealing phase. Zero values are
// replaced by DefaultAnnealConfig's defaults where that makes sense (see
// Anneal).
type AnnealConfig struct {
	// Chains is the number of independent chains to run. Zero means
	// min(runtime.NumCPU(), MaxChains).
	Chains int

	Temperature  float64
	CoolingRate  float64
	Iterations   int
}

// MaxChains bounds the chain count regardless of available hardware
// parallelism.
const MaxChains = 8

// DefaultAnnealConfig is the baseline annealing schedule: T=1000,
// α=0.995, N=5000 iterations per chain.
var DefaultAnnealConfig = AnnealConfig{
	Temperature: 1000.0,
	CoolingRate: 0.995,
	Iterations:  5000,
}

func (c AnnealConfig) withDefaults() AnnealConfig {
	if c.Temperature == 0 {
		c.Temperature = DefaultAnnealConfig.Temperature
	}
	if c.CoolingRate == 0 {
		c.CoolingRate = DefaultAnnealConfig.CoolingRate
	}
	if c.Iterations == 0 {
		c.Iterations = DefaultAnnealConfig.Iterations
	}
	return c
}

func chainCount(requested int) int {
	if requested > 0 {
		if requested > MaxChains {
			return MaxChains
		}
		return requested
	}
	n := runtime.NumCPU()
	if n > MaxChains {
		return MaxChains
	}
	if n < 1 {
		return 1
	}
	return n
}

// chainResult is the outcome of one independent annealing chain.
type chainResult struct {
	chainID  int
	schedule []model.ScheduleEntry
	cost     float64
}

// Anneal runs Chains independent simulated-annealing chains over copies
// of seed, each mutating a uniformly random entry's day/slot/room every
// iteration and accepting worse neighbors with Metropolis probability.
// Chains share only the read-only idx and never communicate; the best
// schedule across all chains wins, ties broken by lowest chain id. If
// seed is empty, Anneal returns it unchanged without running any chain.
func Anneal(ctx context.Context, seed []model.ScheduleEntry, idx *index.Index, cfg model.Config, acfg AnnealConfig) []model.ScheduleEntry {
	if len(seed) == 0 {
		return seed
	}
	acfg = acfg.withDefaults()
	chains := chainCount(acfg.Chains)

	results := make([]chainResult, chains)
	var wg sync.WaitGroup
	wg.Add(chains)

	for chainID := 0; chainID < chains; chainID++ {
		go func(chainID int) {
			defer wg.Done()
			results[chainID] = runChain(ctx, chainID, seed, idx, cfg, acfg)
		}(chainID)
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.cost < best.cost {
			best = r
		}
	}
	return best.schedule
}

func runChain(ctx context.Context, chainID int, seed []model.ScheduleEntry, idx *index.Index, cfg model.Config, acfg AnnealConfig) chainResult {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(chainID)*777))

	current := cloneSchedule(seed)
	currentCost := cost.Evaluate(current, idx, cfg)
	best := cloneSchedule(current)
	bestCost := currentCost

	temperature := acfg.Temperature

	for i := 0; i < acfg.Iterations; i++ {
		if ctx.Err() != nil {
			break
		}

		neighbor := cloneSchedule(current)
		mutate(neighbor, idx, rng)

		neighborCost := cost.Evaluate(neighbor, idx, cfg)
		delta := neighborCost - currentCost

		if delta < 0 || math.Exp(-delta/temperature) > rng.Float64() {
			current = neighbor
			currentCost = neighborCost
			if currentCost < bestCost {
				bestCost = currentCost
				best = cloneSchedule(current)
			}
		}

		temperature *= acfg.CoolingRate
	}

	return chainResult{chainID: chainID, schedule: best, cost: bestCost}
}

// mutate overwrites one uniformly random entry's day, time slot, and
// classroom with uniformly random choices from the full universes -- not
// restricted to the entry's SuitableRooms. ScheduleEntry carries no back
// reference to the UnscheduledEntry it came from, so the mutation step
// cannot narrow the room choice to what's actually suitable; the cost
// function is authoritative and penalizes any resulting infeasibility.
func mutate(schedule []model.ScheduleEntry, idx *index.Index, rng *rand.Rand) {
	i := rng.Intn(len(schedule))
	d := rng.Intn(idx.NumDays)
	s := rng.Intn(idx.NumTimeSlots)
	r := rng.Intn(idx.NumClassrooms)

	schedule[i].Day = idx.Days[d]
	schedule[i].TimeSlotID = idx.TimeSlotIDs[s]
	schedule[i].ClassroomID = idx.ClassroomIDs[r]
}

func cloneSchedule(schedule []model.ScheduleEntry) []model.ScheduleEntry {
	clone := make([]model.ScheduleEntry, len(schedule))
	copy(clone, schedule)
	return clone
}
