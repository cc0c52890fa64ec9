package graphql

import (
	"github.com/graphql-go/graphql"
)

// userType espelha user.Record com os nomes de campo do JSON.
var userType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "User",
	Description: "Registro de usuário persistido no documento",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"nome":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"sobrenome": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

// buildSchema monta Query { users } e Mutation { addUser } sobre o serviço.
func buildSchema(svc UserService) (graphql.Schema, error) {
	r := &resolver{svc: svc}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Description: "Lista os usuários que casam com todos os filtros informados",
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.Int},
					"nome":      &graphql.ArgumentConfig{Type: graphql.String},
					"sobrenome": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.users,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addUser": &graphql.Field{
				Type:        userType,
				Description: "Adiciona um usuário; falha se a política de conflito detectar duplicidade",
				Args: graphql.FieldConfigArgument{
					"nome":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"sobrenome": &graphql.ArgumentConfig{Type: graphql.String},
					"id":        &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.addUser,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
