package dco

import (
	"encoding/json"
	"strings"

	"creativeops/internal/apperr"
)

// Rule pairs AND-ed conditions with one action, scoped to a set of creatives.
// A rule with no conditions always matches.
type Rule struct {
	ID         string
	Name       string
	Conditions []Condition
	Action     Action
	Scope      []string
	Enabled    bool
}

// Validate rejects malformed rules with InvalidRule.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return apperr.New(apperr.CodeInvalidRule, "rule id is required")
	}
	if len(r.Scope) == 0 {
		return apperr.New(apperr.CodeInvalidRule, "rule %s must apply to at least one creative", r.ID)
	}
	for i, c := range r.Conditions {
		if c == nil {
			return apperr.New(apperr.CodeInvalidRule, "rule %s: condition %d is empty", r.ID, i)
		}
		if err := c.validate(); err != nil {
			return apperr.Wrap(apperr.CodeInvalidRule, err, "rule %s: condition %d", r.ID, i)
		}
	}
	if r.Action == nil {
		return apperr.New(apperr.CodeInvalidRule, "rule %s has no action", r.ID)
	}
	if err := r.Action.validate(); err != nil {
		return apperr.Wrap(apperr.CodeInvalidRule, err, "rule %s: action", r.ID)
	}
	return nil
}

// AppliesTo reports whether creativeID is in the rule's scope.
func (r Rule) AppliesTo(creativeID string) bool {
	for _, id := range r.Scope {
		if id == creativeID {
			return true
		}
	}
	return false
}

// Label renders "COND AND COND -> ACTION" for display.
func (r Rule) Label() string {
	parts := make([]string, len(r.Conditions))
	for i, c := range r.Conditions {
		parts[i] = c.Label()
	}
	cond := strings.Join(parts, " AND ")
	if cond == "" {
		cond = "Always"
	}
	if r.Action == nil {
		return cond
	}
	return cond + " -> " + r.Action.Label()
}

func (r Rule) clone() Rule {
	r.Conditions = append([]Condition(nil), r.Conditions...)
	r.Scope = append([]string(nil), r.Scope...)
	if p, ok := r.Action.(Personalize); ok {
		p.Fields = append([]string(nil), p.Fields...)
		r.Action = p
	}
	return r
}

type conditionJSON struct {
	Type       ConditionKind `json:"type"`
	Metric     string        `json:"metric,omitempty"`
	Comparator string        `json:"comparator,omitempty"`
	Value      *float64      `json:"value,omitempty"`
	Location   string        `json:"location,omitempty"`
	Bucket     string        `json:"bucket,omitempty"`
	DeviceType string        `json:"device_type,omitempty"`
	Label      string        `json:"label,omitempty"`
}

type actionJSON struct {
	Type         ActionKind `json:"type"`
	Template     string     `json:"template,omitempty"`
	IncludeOffer bool       `json:"include_offer,omitempty"`
	SetID        string     `json:"set_id,omitempty"`
	Fields       []string   `json:"fields,omitempty"`
	Goal         string     `json:"goal,omitempty"`
	Label        string     `json:"label,omitempty"`
}

type ruleJSON struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Conditions []conditionJSON `json:"conditions"`
	Action     *actionJSON     `json:"action"`
	Scope      []string        `json:"scope"`
	Enabled    bool            `json:"enabled"`
	Label      string          `json:"label,omitempty"`
}

func encodeCondition(c Condition) conditionJSON {
	out := conditionJSON{Type: c.Kind(), Label: c.Label()}
	switch c := c.(type) {
	case MetricThreshold:
		v := c.Value
		out.Metric, out.Comparator, out.Value = c.Metric, string(c.Comparator), &v
	case LocationEquals:
		out.Location = c.Location
	case TimeOfDayEquals:
		out.Bucket = c.Bucket
	case DeviceEquals:
		out.DeviceType = c.DeviceType
	}
	return out
}

func decodeCondition(in conditionJSON) (Condition, error) {
	switch in.Type {
	case KindMetricThreshold:
		cmp, err := ParseComparator(in.Comparator)
		if err != nil {
			return nil, err
		}
		if in.Value == nil {
			return nil, apperr.New(apperr.CodeInvalidRule, "metric threshold on %q needs a value", in.Metric)
		}
		return MetricThreshold{Metric: in.Metric, Comparator: cmp, Value: *in.Value}, nil
	case KindLocationEquals:
		return LocationEquals{Location: in.Location}, nil
	case KindTimeOfDayEquals:
		return TimeOfDayEquals{Bucket: in.Bucket}, nil
	case KindDeviceEquals:
		return DeviceEquals{DeviceType: in.DeviceType}, nil
	default:
		return nil, apperr.New(apperr.CodeInvalidRule, "unknown condition type %q", in.Type)
	}
}

func encodeAction(a Action) *actionJSON {
	if a == nil {
		return nil
	}
	out := &actionJSON{Type: a.Kind(), Label: a.Label()}
	switch a := a.(type) {
	case GenerateVariant:
		out.Template, out.IncludeOffer = a.Template, a.IncludeOffer
	case ShowProductSet:
		out.SetID = a.SetID
	case Personalize:
		out.Fields = a.Fields
	case OptimizeFor:
		out.Goal = a.Goal
	}
	return out
}

func decodeAction(in *actionJSON) (Action, error) {
	if in == nil {
		return nil, apperr.New(apperr.CodeInvalidRule, "action is required")
	}
	switch in.Type {
	case KindGenerateVariant:
		return GenerateVariant{Template: in.Template, IncludeOffer: in.IncludeOffer}, nil
	case KindShowProductSet:
		return ShowProductSet{SetID: in.SetID}, nil
	case KindPersonalize:
		return Personalize{Fields: in.Fields}, nil
	case KindOptimizeFor:
		return OptimizeFor{Goal: in.Goal}, nil
	default:
		return nil, apperr.New(apperr.CodeInvalidRule, "unknown action type %q", in.Type)
	}
}

func (r Rule) MarshalJSON() ([]byte, error) {
	out := ruleJSON{
		ID:         r.ID,
		Name:       r.Name,
		Conditions: make([]conditionJSON, 0, len(r.Conditions)),
		Action:     encodeAction(r.Action),
		Scope:      r.Scope,
		Enabled:    r.Enabled,
		Label:      r.Label(),
	}
	for _, c := range r.Conditions {
		out.Conditions = append(out.Conditions, encodeCondition(c))
	}
	if out.Scope == nil {
		out.Scope = []string{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the tagged form. Unknown condition or action types and
// unrecognized comparators fail with InvalidRule. Labels are ignored on input.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var in ruleJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return apperr.Wrap(apperr.CodeInvalidRule, err, "malformed rule")
	}
	conds := make([]Condition, 0, len(in.Conditions))
	for _, cj := range in.Conditions {
		c, err := decodeCondition(cj)
		if err != nil {
			return err
		}
		conds = append(conds, c)
	}
	action, err := decodeAction(in.Action)
	if err != nil {
		return err
	}
	*r = Rule{
		ID:         in.ID,
		Name:       in.Name,
		Conditions: conds,
		Action:     action,
		Scope:      in.Scope,
		Enabled:    in.Enabled,
	}
	return nil
}

// EncodeConditions and friends expose the tagged JSON forms to the storage
// layer, which keeps conditions and action in separate JSONB columns.
func EncodeConditions(conds []Condition) ([]byte, error) {
	out := make([]conditionJSON, 0, len(conds))
	for _, c := range conds {
		out = append(out, encodeCondition(c))
	}
	return json.Marshal(out)
}

func DecodeConditions(data []byte) ([]Condition, error) {
	var in []conditionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidRule, err, "malformed conditions")
	}
	out := make([]Condition, 0, len(in))
	for _, cj := range in {
		c, err := decodeCondition(cj)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func EncodeAction(a Action) ([]byte, error) {
	return json.Marshal(encodeAction(a))
}

func DecodeAction(data []byte) (Action, error) {
	var in *actionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidRule, err, "malformed action")
	}
	return decodeAction(in)
}
