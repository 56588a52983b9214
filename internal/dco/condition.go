package dco

import (
	"fmt"
	"strconv"
	"strings"

	"creativeops/internal/apperr"
)

// SignalSnapshot is the live context a rule is evaluated against. Missing
// metrics and empty strings mean "unknown", never zero or wildcard.
type SignalSnapshot struct {
	Metrics    map[string]float64 `json:"metrics"`
	Location   string             `json:"location,omitempty"`
	DeviceType string             `json:"device_type,omitempty"`
	TimeBucket string             `json:"time_bucket,omitempty"`
}

// Metric returns the named metric and whether it was supplied. Names match
// case-insensitively and ignore surrounding whitespace on both sides.
func (s SignalSnapshot) Metric(name string) (float64, bool) {
	name = strings.TrimSpace(name)
	if v, ok := s.Metrics[name]; ok {
		return v, true
	}
	for k, v := range s.Metrics {
		if strings.EqualFold(strings.TrimSpace(k), name) {
			return v, true
		}
	}
	return 0, false
}

type ConditionKind string

const (
	KindMetricThreshold ConditionKind = "metric_threshold"
	KindLocationEquals  ConditionKind = "location_equals"
	KindTimeOfDayEquals ConditionKind = "time_of_day_equals"
	KindDeviceEquals    ConditionKind = "device_equals"
)

// Condition is one predicate of a rule. The set of implementations is closed.
type Condition interface {
	Kind() ConditionKind
	Label() string
	Satisfied(s SignalSnapshot) bool
	validate() error
}

type Comparator string

const (
	LessThan       Comparator = "<"
	LessOrEqual    Comparator = "<="
	GreaterThan    Comparator = ">"
	GreaterOrEqual Comparator = ">="
	Equal          Comparator = "=="
)

// ParseComparator accepts exactly the five supported symbols.
func ParseComparator(raw string) (Comparator, error) {
	switch c := Comparator(strings.TrimSpace(raw)); c {
	case LessThan, LessOrEqual, GreaterThan, GreaterOrEqual, Equal:
		return c, nil
	default:
		return "", apperr.New(apperr.CodeInvalidRule, "unrecognized comparator %q", raw)
	}
}

func (c Comparator) compare(a, b float64) bool {
	switch c {
	case LessThan:
		return a < b
	case LessOrEqual:
		return a <= b
	case GreaterThan:
		return a > b
	case GreaterOrEqual:
		return a >= b
	case Equal:
		return a == b
	}
	return false
}

// MetricThreshold compares a named metric against a fixed value.
type MetricThreshold struct {
	Metric     string
	Comparator Comparator
	Value      float64
}

func (MetricThreshold) Kind() ConditionKind { return KindMetricThreshold }

func (c MetricThreshold) Label() string {
	return fmt.Sprintf("%s %s %s", strings.ToUpper(c.Metric), c.Comparator, strconv.FormatFloat(c.Value, 'f', -1, 64))
}

func (c MetricThreshold) Satisfied(s SignalSnapshot) bool {
	v, ok := s.Metric(c.Metric)
	if !ok {
		return false
	}
	return c.Comparator.compare(v, c.Value)
}

func (c MetricThreshold) validate() error {
	if strings.TrimSpace(c.Metric) == "" {
		return apperr.New(apperr.CodeInvalidRule, "metric threshold needs a metric name")
	}
	if _, err := ParseComparator(string(c.Comparator)); err != nil {
		return err
	}
	return nil
}

// LocationEquals matches the impression's location, case-insensitively.
type LocationEquals struct {
	Location string
}

func (LocationEquals) Kind() ConditionKind { return KindLocationEquals }

func (c LocationEquals) Label() string { return "Location = " + c.Location }

func (c LocationEquals) Satisfied(s SignalSnapshot) bool {
	return equalKnown(s.Location, c.Location)
}

func (c LocationEquals) validate() error {
	return requireField(c.Location, "location")
}

// TimeOfDayEquals matches a time bucket such as "morning" or "evening".
type TimeOfDayEquals struct {
	Bucket string
}

func (TimeOfDayEquals) Kind() ConditionKind { return KindTimeOfDayEquals }

func (c TimeOfDayEquals) Label() string { return "Time of day = " + c.Bucket }

func (c TimeOfDayEquals) Satisfied(s SignalSnapshot) bool {
	return equalKnown(s.TimeBucket, c.Bucket)
}

func (c TimeOfDayEquals) validate() error {
	return requireField(c.Bucket, "time bucket")
}

// DeviceEquals matches the impression's device type.
type DeviceEquals struct {
	DeviceType string
}

func (DeviceEquals) Kind() ConditionKind { return KindDeviceEquals }

func (c DeviceEquals) Label() string { return "Device = " + c.DeviceType }

func (c DeviceEquals) Satisfied(s SignalSnapshot) bool {
	return equalKnown(s.DeviceType, c.DeviceType)
}

func (c DeviceEquals) validate() error {
	return requireField(c.DeviceType, "device type")
}

// equalKnown is false when the observed value is unknown.
func equalKnown(observed, want string) bool {
	observed = strings.TrimSpace(observed)
	if observed == "" {
		return false
	}
	return strings.EqualFold(observed, strings.TrimSpace(want))
}

func requireField(v, name string) error {
	if strings.TrimSpace(v) == "" {
		return apperr.New(apperr.CodeInvalidRule, "%s is required", name)
	}
	return nil
}
