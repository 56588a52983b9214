// Package dco evaluates dynamic creative optimization rules against live
// signal snapshots.
//
// Evaluation is pure: it reads an ordered rule slice and a snapshot and never
// mutates either, so it can run concurrently without coordination. Mutable
// rule collections live in RuleSet, which hands evaluators immutable
// snapshots.
package dco

import (
	"encoding/json"
	"strings"

	"creativeops/internal/apperr"
)

// Strategy decides how many matches an evaluation returns.
type Strategy string

const (
	// AllMatches returns every matching rule in rule order.
	AllMatches Strategy = "all_matches"
	// FirstMatch stops at the first matching rule.
	FirstMatch Strategy = "first_match"
)

// ParseStrategy maps "" to AllMatches.
func ParseStrategy(raw string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return AllMatches, nil
	case AllMatches, FirstMatch:
		return s, nil
	default:
		return "", apperr.New(apperr.CodeInvalidInput, "unknown apply strategy %q", raw)
	}
}

// State is the lifecycle of one rule within an evaluation:
// Idle -> Evaluating -> Matched | NotMatched.
type State string

const (
	StateIdle       State = "idle"
	StateEvaluating State = "evaluating"
	StateMatched    State = "matched"
	StateNotMatched State = "not_matched"
)

// IsTerminal reports whether s is Matched or NotMatched.
func IsTerminal(s State) bool {
	return s == StateMatched || s == StateNotMatched
}

// Outcome is the terminal state one enabled rule reached.
type Outcome struct {
	RuleID string `json:"rule_id"`
	State  State  `json:"state"`
}

// Match is a rule that matched together with the action it asks for.
type Match struct {
	Rule   Rule
	Action Action
}

func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RuleID   string      `json:"rule_id"`
		RuleName string      `json:"rule_name"`
		Action   *actionJSON `json:"action"`
	}{m.Rule.ID, m.Rule.Name, encodeAction(m.Action)})
}

// Evaluation is the result of evaluating a rule sequence. Disabled rules
// appear in neither list; with FirstMatch, rules after the first match are
// not evaluated and do not appear either.
type Evaluation struct {
	Matches  []Match   `json:"matches"`
	Outcomes []Outcome `json:"outcomes"`
}

// Actions returns the matched actions in rule order.
func (e Evaluation) Actions() []Action {
	out := make([]Action, len(e.Matches))
	for i, m := range e.Matches {
		out[i] = m.Action
	}
	return out
}

// Evaluate runs every enabled rule against signals in order. A nil condition
// never matches, so an unvalidated rule holding one is reported not matched.
func Evaluate(rules []Rule, signals SignalSnapshot, strategy Strategy) Evaluation {
	ev := Evaluation{Matches: []Match{}, Outcomes: []Outcome{}}
	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		st := evaluateRule(r, signals)
		ev.Outcomes = append(ev.Outcomes, Outcome{RuleID: r.ID, State: st})
		if st != StateMatched {
			continue
		}
		ev.Matches = append(ev.Matches, Match{Rule: r, Action: r.Action})
		if strategy == FirstMatch {
			break
		}
	}
	return ev
}

func evaluateRule(r Rule, signals SignalSnapshot) State {
	st := StateIdle
	st = advance(st, StateEvaluating)
	for _, c := range r.Conditions {
		if c == nil || !c.Satisfied(signals) {
			return advance(st, StateNotMatched)
		}
	}
	return advance(st, StateMatched)
}

// advance applies a transition, refusing anything outside the lifecycle.
func advance(from, to State) State {
	switch {
	case from == StateIdle && to == StateEvaluating:
	case from == StateEvaluating && IsTerminal(to):
	default:
		panic("dco: invalid rule state transition " + string(from) + " -> " + string(to))
	}
	return to
}
