package dco

import (
	"context"
	"sync"
	"sync/atomic"

	"creativeops/internal/apperr"
)

// Committer persists a complete rule list before it becomes visible.
type Committer interface {
	CommitRules(ctx context.Context, rules []Rule) error
}

// RuleSet is an ordered, mutable rule collection. Readers get the current
// immutable snapshot; writers build a new slice under a mutex and publish it
// atomically, so an evaluation never observes a partial mutation.
type RuleSet struct {
	mu        sync.Mutex
	rules     atomic.Pointer[[]Rule]
	committer Committer
	strategy  Strategy
}

type RuleSetOption func(*RuleSet)

// WithCommitter persists every mutation; a failed commit leaves the set as it
// was.
func WithCommitter(c Committer) RuleSetOption {
	return func(rs *RuleSet) { rs.committer = c }
}

// WithStrategy sets the strategy used by EvaluateFor.
func WithStrategy(s Strategy) RuleSetOption {
	return func(rs *RuleSet) { rs.strategy = s }
}

// NewRuleSet validates and loads initial rules in order.
func NewRuleSet(initial []Rule, opts ...RuleSetOption) (*RuleSet, error) {
	rs := &RuleSet{strategy: AllMatches}
	for _, opt := range opts {
		opt(rs)
	}
	rules := make([]Rule, 0, len(initial))
	seen := make(map[string]struct{}, len(initial))
	for _, r := range initial {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[r.ID]; dup {
			return nil, apperr.New(apperr.CodeInvalidRule, "duplicate rule id %s", r.ID)
		}
		seen[r.ID] = struct{}{}
		rules = append(rules, r.clone())
	}
	rs.rules.Store(&rules)
	return rs, nil
}

// Strategy returns the default strategy of this set.
func (rs *RuleSet) Strategy() Strategy { return rs.strategy }

// Rules returns the current snapshot. Callers must not modify it.
func (rs *RuleSet) Rules() []Rule {
	return *rs.rules.Load()
}

// Get returns the rule with id.
func (rs *RuleSet) Get(id string) (Rule, error) {
	for _, r := range rs.Rules() {
		if r.ID == id {
			return r.clone(), nil
		}
	}
	return Rule{}, apperr.New(apperr.CodeNotFound, "rule %s not found", id)
}

// Evaluate evaluates every rule of the current snapshot.
func (rs *RuleSet) Evaluate(signals SignalSnapshot, strategy Strategy) Evaluation {
	return Evaluate(rs.Rules(), signals, strategy)
}

// EvaluateFor evaluates the rules whose scope includes creativeID, using the
// set's default strategy.
func (rs *RuleSet) EvaluateFor(creativeID string, signals SignalSnapshot) Evaluation {
	return rs.EvaluateForWith(creativeID, signals, rs.strategy)
}

func (rs *RuleSet) EvaluateForWith(creativeID string, signals SignalSnapshot, strategy Strategy) Evaluation {
	snapshot := rs.Rules()
	scoped := make([]Rule, 0, len(snapshot))
	for _, r := range snapshot {
		if r.AppliesTo(creativeID) {
			scoped = append(scoped, r)
		}
	}
	return Evaluate(scoped, signals, strategy)
}

// Add appends a rule. It is rejected before any change if invalid or if its
// id is already taken.
func (rs *RuleSet) Add(ctx context.Context, r Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return rs.mutate(ctx, func(cur []Rule) ([]Rule, error) {
		if indexOf(cur, r.ID) >= 0 {
			return nil, apperr.New(apperr.CodeInvalidRule, "duplicate rule id %s", r.ID)
		}
		next := make([]Rule, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, r.clone()), nil
	})
}

// Remove deletes a rule, keeping the order of the others.
func (rs *RuleSet) Remove(ctx context.Context, id string) error {
	return rs.mutate(ctx, func(cur []Rule) ([]Rule, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, apperr.New(apperr.CodeNotFound, "rule %s not found", id)
		}
		next := make([]Rule, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		return append(next, cur[i+1:]...), nil
	})
}

// Reorder moves a rule to newIndex; the relative order of all other rules is
// unchanged.
func (rs *RuleSet) Reorder(ctx context.Context, id string, newIndex int) error {
	return rs.mutate(ctx, func(cur []Rule) ([]Rule, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, apperr.New(apperr.CodeNotFound, "rule %s not found", id)
		}
		if newIndex < 0 || newIndex >= len(cur) {
			return nil, apperr.New(apperr.CodeInvalidInput, "index %d out of range [0,%d)", newIndex, len(cur))
		}
		moved := cur[i]
		rest := make([]Rule, 0, len(cur)-1)
		rest = append(rest, cur[:i]...)
		rest = append(rest, cur[i+1:]...)

		next := make([]Rule, 0, len(cur))
		next = append(next, rest[:newIndex]...)
		next = append(next, moved)
		return append(next, rest[newIndex:]...), nil
	})
}

// Toggle flips a rule's enabled flag and returns the new value.
func (rs *RuleSet) Toggle(ctx context.Context, id string) (bool, error) {
	var enabled bool
	err := rs.mutate(ctx, func(cur []Rule) ([]Rule, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, apperr.New(apperr.CodeNotFound, "rule %s not found", id)
		}
		next := append([]Rule(nil), cur...)
		next[i].Enabled = !next[i].Enabled
		enabled = next[i].Enabled
		return next, nil
	})
	return enabled, err
}

func (rs *RuleSet) mutate(ctx context.Context, fn func(cur []Rule) ([]Rule, error)) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	next, err := fn(rs.Rules())
	if err != nil {
		return err
	}
	if rs.committer != nil {
		if err := rs.committer.CommitRules(ctx, next); err != nil {
			return err
		}
	}
	rs.rules.Store(&next)
	return nil
}

func indexOf(rules []Rule, id string) int {
	for i, r := range rules {
		if r.ID == id {
			return i
		}
	}
	return -1
}
