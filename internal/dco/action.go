package dco

import (
	"strings"

	"creativeops/internal/apperr"
)

type ActionKind string

const (
	KindGenerateVariant ActionKind = "generate_variant"
	KindShowProductSet  ActionKind = "show_product_set"
	KindPersonalize     ActionKind = "personalize"
	KindOptimizeFor     ActionKind = "optimize_for"
)

// Action is what a matched rule asks for. The set of implementations is closed.
type Action interface {
	Kind() ActionKind
	Label() string
	// Composable reports whether the action can be applied together with
	// other matched actions on the same impression.
	Composable() bool
	validate() error
}

// GenerateVariant requests a new variant of the creative from a template.
type GenerateVariant struct {
	Template     string
	IncludeOffer bool
}

func (GenerateVariant) Kind() ActionKind { return KindGenerateVariant }
func (GenerateVariant) Composable() bool { return false }

func (a GenerateVariant) Label() string {
	label := "Generate new creative from " + a.Template
	if a.IncludeOffer {
		label += " with offer details"
	}
	return label
}

func (a GenerateVariant) validate() error { return requireField(a.Template, "template") }

// ShowProductSet swaps in a product set.
type ShowProductSet struct {
	SetID string
}

func (ShowProductSet) Kind() ActionKind { return KindShowProductSet }
func (ShowProductSet) Composable() bool { return true }
func (a ShowProductSet) Label() string  { return "Show product set " + a.SetID }
func (a ShowProductSet) validate() error {
	return requireField(a.SetID, "product set id")
}

// Personalize fills the listed dynamic fields from the signal context.
type Personalize struct {
	Fields []string
}

func (Personalize) Kind() ActionKind { return KindPersonalize }
func (Personalize) Composable() bool { return true }

func (a Personalize) Label() string {
	return "Personalize " + strings.Join(a.Fields, ", ")
}

func (a Personalize) validate() error {
	if len(a.Fields) == 0 {
		return apperr.New(apperr.CodeInvalidRule, "personalize needs at least one field")
	}
	for _, f := range a.Fields {
		if err := requireField(f, "personalize field"); err != nil {
			return err
		}
	}
	return nil
}

// OptimizeFor steers delivery toward a goal such as "ctr" or "roas".
type OptimizeFor struct {
	Goal string
}

func (OptimizeFor) Kind() ActionKind { return KindOptimizeFor }
func (OptimizeFor) Composable() bool { return true }
func (a OptimizeFor) Label() string  { return "Optimize for " + a.Goal }
func (a OptimizeFor) validate() error {
	return requireField(a.Goal, "optimization goal")
}
