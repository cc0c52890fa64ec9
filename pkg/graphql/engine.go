package graphql

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/raywall/user-file-service/pkg/user"
	"github.com/rs/zerolog/log"
)

// UserService é o subconjunto do serviço de usuários usado pelos resolvers.
type UserService interface {
	Find(ctx context.Context, f user.Filter) (user.Collection, error)
	Insert(ctx context.Context, c user.Candidate) (user.Record, error)
}

// Engine executa consultas GraphQL sobre o serviço de usuários.
type Engine struct {
	Schema graphql.Schema
}

// NewEngine monta o schema fixo (users, addUser) ligado a svc.
func NewEngine(svc UserService) (*Engine, error) {
	schema, err := buildSchema(svc)
	if err != nil {
		return nil, err
	}
	return &Engine{Schema: schema}, nil
}

func (e *Engine) Execute(ctx context.Context, query string, variables map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         e.Schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	})
}

type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// ServeHTTP aceita POST com {"query": "...", "variables": {...}}. Erros de
// execução seguem a convenção GraphQL: status 200 com a lista "errors".
func (e *Engine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Corpo da requisição inválido."}`))
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         e.Schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})
	if result.HasErrors() {
		log.Ctx(r.Context()).Warn().Interface("errors", result.Errors).Msg("consulta graphql com erros")
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("falha ao serializar resposta graphql")
	}
}
