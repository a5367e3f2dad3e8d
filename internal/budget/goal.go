package budget

import "github.com/google/uuid"

// GoalTerm buckets a savings goal by horizon: short < 1yr, mid 1-5yr,
// long > 5yr.
type GoalTerm string

const (
	TermShort GoalTerm = "short"
	TermMid   GoalTerm = "mid"
	TermLong  GoalTerm = "long"
)

// GoalColors is the display palette cycled through as goals are added.
var GoalColors = []string{"#10B981", "#3B82F6", "#6366F1", "#8B5CF6", "#EC4899", "#F59E0B", "#EF4444"}

// Goal is one savings goal with a target and current progress.
type Goal struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	TargetAmount  float64  `json:"targetAmount"`
	CurrentAmount float64  `json:"currentAmount"`
	Term          GoalTerm `json:"term"`
	Color         string   `json:"color"`
}

// NewGoal creates a goal with a fresh identity and a palette color picked
// by the current goal count.
func NewGoal(name string, target float64, term GoalTerm, existing int) Goal {
	return Goal{
		ID:           uuid.NewString(),
		Name:         name,
		TargetAmount: target,
		Term:         term,
		Color:        GoalColors[existing%len(GoalColors)],
	}
}

// Percent is the completion percentage, capped at 100. A zero target
// reads as 0 percent.
func (g Goal) Percent() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	if p > 100 {
		p = 100
	}
	return p
}

// Remaining is the amount still to save, floored at zero.
func (g Goal) Remaining() float64 {
	r := g.TargetAmount - g.CurrentAmount
	if r < 0 {
		return 0
	}
	return r
}
