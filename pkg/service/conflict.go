package service

import (
	"fmt"

	"github.com/raywall/user-file-service/pkg/rules"
	"github.com/raywall/user-file-service/pkg/user"
)

// ConflictChecker decide se um candidato duplica um registro existente.
type ConflictChecker interface {
	Policy() user.ConflictPolicy
	Conflicts(existing user.Record, candidate user.Candidate) (bool, error)
}

// NewConflictChecker cria o checker da política; expr só é usado com PolicyExpr.
func NewConflictChecker(policy user.ConflictPolicy, expr string) (ConflictChecker, error) {
	switch policy {
	case user.PolicyName, "":
		return nameChecker{}, nil
	case user.PolicyIDOrName:
		return idOrNameChecker{}, nil
	case user.PolicyExpr:
		rule, err := rules.NewConflictRule(expr)
		if err != nil {
			return nil, err
		}
		return exprChecker{rule: rule}, nil
	default:
		return nil, fmt.Errorf("política de conflito desconhecida: %s", policy)
	}
}

type nameChecker struct{}

func (nameChecker) Policy() user.ConflictPolicy { return user.PolicyName }

func (nameChecker) Conflicts(existing user.Record, candidate user.Candidate) (bool, error) {
	return existing.Name == candidate.Name, nil
}

// idOrNameChecker só compara id quando o cliente o informou.
type idOrNameChecker struct{}

func (idOrNameChecker) Policy() user.ConflictPolicy { return user.PolicyIDOrName }

func (idOrNameChecker) Conflicts(existing user.Record, candidate user.Candidate) (bool, error) {
	if candidate.ID != nil && existing.ID == *candidate.ID {
		return true, nil
	}
	return existing.Name == candidate.Name, nil
}

type exprChecker struct {
	rule *rules.ConflictRule
}

func (exprChecker) Policy() user.ConflictPolicy { return user.PolicyExpr }

func (c exprChecker) Conflicts(existing user.Record, candidate user.Candidate) (bool, error) {
	return c.rule.Matches(existing, candidate)
}
