package graphql

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/raywall/user-file-service/pkg/user"
)

type resolver struct {
	svc UserService
}

func (r *resolver) users(p graphql.ResolveParams) (interface{}, error) {
	var f user.Filter
	if id, ok := p.Args["id"].(int); ok {
		f.ID = &id
	}
	if name, ok := p.Args["nome"].(string); ok {
		f.Name = &name
	}
	if surname, ok := p.Args["sobrenome"].(string); ok {
		f.Surname = &surname
	}

	found, err := r.svc.Find(contextOf(p), f)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]interface{}, 0, len(found))
	for _, rec := range found {
		out = append(out, toMap(rec))
	}
	return out, nil
}

func (r *resolver) addUser(p graphql.ResolveParams) (interface{}, error) {
	c := user.Candidate{}
	c.Name, _ = p.Args["nome"].(string)
	c.Surname, _ = p.Args["sobrenome"].(string)
	if id, ok := p.Args["id"].(int); ok {
		c.ID = &id
	}

	rec, err := r.svc.Insert(contextOf(p), c)
	if err != nil {
		return nil, err
	}
	return toMap(rec), nil
}

func toMap(r user.Record) map[string]interface{} {
	return map[string]interface{}{
		"id":        r.ID,
		"nome":      r.Name,
		"sobrenome": r.Surname,
	}
}

func contextOf(p graphql.ResolveParams) context.Context {
	if p.Context != nil {
		return p.Context
	}
	return context.Background()
}
