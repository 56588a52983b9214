package interfaces

import (
	"context"

	"creativeops/internal/dco"
)

// RuleRepository stores the ordered DCO rule list. CommitRules replaces the
// whole list atomically and satisfies dco.Committer.
type RuleRepository interface {
	List(ctx context.Context) ([]dco.Rule, error)
	CommitRules(ctx context.Context, rules []dco.Rule) error
}
