package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raywall/user-file-service/pkg/service"
	"github.com/raywall/user-file-service/pkg/store"
	"github.com/raywall/user-file-service/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, seed ...user.Record) (*Engine, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore(seed...)
	eng, err := NewEngine(service.New(st))
	require.NoError(t, err)
	return eng, st
}

func TestNewEngine_Schema(t *testing.T) {
	eng, _ := newEngine(t)

	assert.NotNil(t, eng.Schema.Type("User"))
	assert.NotNil(t, eng.Schema.QueryType().Fields()["users"])
	assert.NotNil(t, eng.Schema.MutationType().Fields()["addUser"])

	res := eng.Execute(context.Background(), "{ __schema { types { name } } }", nil)
	assert.Empty(t, res.Errors)
}

func TestUsersQuery(t *testing.T) {
	eng, _ := newEngine(t,
		user.Record{ID: 1, Name: "Ana", Surname: "Silva"},
		user.Record{ID: 2, Name: "Bia", Surname: "Silva"},
	)

	res := eng.Execute(context.Background(), `{ users(sobrenome: "Silva") { id nome } }`, nil)
	require.Empty(t, res.Errors)

	body, err := json.Marshal(res.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[{"id":1,"nome":"Ana"},{"id":2,"nome":"Bia"}]}`, string(body))

	res = eng.Execute(context.Background(), `query($id: Int) { users(id: $id) { nome } }`, map[string]interface{}{"id": 9})
	require.Empty(t, res.Errors)
	body, _ = json.Marshal(res.Data)
	assert.JSONEq(t, `{"users":[]}`, string(body))
}

func TestAddUserMutation(t *testing.T) {
	eng, st := newEngine(t, user.Record{ID: 3, Name: "Ana", Surname: "Silva"})

	res := eng.Execute(context.Background(), `mutation { addUser(nome: "Caio", sobrenome: "Lima") { id nome sobrenome } }`, nil)
	require.Empty(t, res.Errors)
	body, _ := json.Marshal(res.Data)
	assert.JSONEq(t, `{"addUser":{"id":4,"nome":"Caio","sobrenome":"Lima"}}`, string(body))
	assert.Equal(t, 1, st.Saves())

	res = eng.Execute(context.Background(), `mutation { addUser(nome: "Ana") { id } }`, nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Usuário já existe com este Nome.", res.Errors[0].Message)
	assert.Equal(t, 1, st.Saves())
}

func TestServeHTTP(t *testing.T) {
	eng, _ := newEngine(t, user.Record{ID: 1, Name: "Ana", Surname: "Silva"})

	payload := `{"query":"{ users { id nome sobrenome } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	eng.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"users":[{"id":1,"nome":"Ana","sobrenome":"Silva"}]}}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`{quebrado`))
	rec = httptest.NewRecorder()
	eng.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Corpo da requisição inválido."}`, rec.Body.String())
}
