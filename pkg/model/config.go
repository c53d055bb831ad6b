package model

// RuleSeverity and RuleAction describe a user-authored scheduling rule.
// They are carried on Config but not consulted by the cost evaluator;
// no loader in this module fills them in.
type RuleSeverity string

const (
	SeverityStrict RuleSeverity = "strict"
	SeverityStrong RuleSeverity = "strong"
	SeverityMedium RuleSeverity = "medium"
	SeverityWeak   RuleSeverity = "weak"
)

type RuleAction string

const (
	ActionAvoidTime   RuleAction = "avoid_time"
	ActionPreferTime  RuleAction = "prefer_time"
	ActionMaxPerDay   RuleAction = "max_per_day"
	ActionMinPerDay   RuleAction = "min_per_day"
	ActionAvoidRoom   RuleAction = "avoid_room"
	ActionPreferRoom  RuleAction = "prefer_room"
)

// RuleCondition selects which entities a SchedulingRule applies to.
type RuleCondition struct {
	EntityType string
	EntityIDs  []string
	ClassType  string
}

// SchedulingRule is a user-authored preference. Reserved input: stored
// on Config, never read by internal/cost.
type SchedulingRule struct {
	ID         string
	Conditions []RuleCondition
	Action     RuleAction
	Severity   RuleSeverity
	Day        string
	TimeSlotID string
	Param      int
}

// Settings carries run-level toggles. EnforceStandardRules is the only
// flag the cost evaluator reads; the rest are parsed and reserved for a
// future rules engine.
type Settings struct {
	AllowWindows                   bool
	EnforceStandardRules            bool
	RespectProductionCalendar       bool
	UseShortenedPreHolidaySchedule  bool
}

// Config governs the cost evaluator (Strictness, Settings). The
// simulated-annealing knobs live separately in solver.AnnealConfig.
type Config struct {
	Strictness      int
	Settings        Settings
	SchedulingRules []SchedulingRule
}

// PenaltyMultiplier is the soft-penalty multiplier derived from
// Strictness (0-10) as Strictness/5: all availability and pin terms scale by it, while
// hard conflict penalties never do.
func (c Config) PenaltyMultiplier() float64 {
	return float64(c.Strictness) / 5.0
}
