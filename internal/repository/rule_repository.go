package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"creativeops/internal/dco"
	"creativeops/internal/interfaces"
)

type ruleRepository struct {
	db *sql.DB
}

func NewRuleRepository(db *sql.DB) interfaces.RuleRepository {
	return &ruleRepository{db: db}
}

var _ dco.Committer = (*ruleRepository)(nil)

func (r *ruleRepository) List(ctx context.Context) ([]dco.Rule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, conditions, action, scope, enabled
		FROM dco_rules
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []dco.Rule{}
	for rows.Next() {
		var (
			rule       dco.Rule
			conditions []byte
			action     []byte
		)
		if err := rows.Scan(&rule.ID, &rule.Name, &conditions, &action, pq.Array(&rule.Scope), &rule.Enabled); err != nil {
			return nil, err
		}
		if rule.Conditions, err = dco.DecodeConditions(conditions); err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
		}
		if rule.Action, err = dco.DecodeAction(action); err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// CommitRules replaces the stored list with rules, keeping their order.
func (r *ruleRepository) CommitRules(ctx context.Context, rules []dco.Rule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin commit rules: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dco_rules`); err != nil {
		return fmt.Errorf("failed to clear rules: %w", err)
	}

	for i, rule := range rules {
		conditions, err := dco.EncodeConditions(rule.Conditions)
		if err != nil {
			return err
		}
		action, err := dco.EncodeAction(rule.Action)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO dco_rules (id, position, name, conditions, action, scope, enabled)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, rule.ID, i, rule.Name, conditions, action, pq.Array(rule.Scope), rule.Enabled)
		if err != nil {
			log.Printf("Error inserting rule %s: %v", rule.ID, err)
			return fmt.Errorf("failed to save rule %s: %w", rule.ID, err)
		}
	}

	return tx.Commit()
}
