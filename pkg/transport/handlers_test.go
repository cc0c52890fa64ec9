package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raywall/user-file-service/pkg/service"
	"github.com/raywall/user-file-service/pkg/store"
	"github.com/raywall/user-file-service/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestScenarios_FileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	h := NewRouter(service.New(store.NewFileStore(path)))

	// arquivo vazio
	rec := doRequest(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Nenhum dado encontrado."}`, rec.Body.String())

	// primeiro insert
	rec = doRequest(t, h, http.MethodPost, "/user", `{"nome":"Ana","sobrenome":"Silva"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Usuário adicionado com sucesso!","user":{"id":1,"nome":"Ana","sobrenome":"Silva"}}`, rec.Body.String())

	// mesmo POST repetido
	rec = doRequest(t, h, http.MethodPost, "/user", `{"nome":"Ana","sobrenome":"Silva"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"Usuário já existe com este Nome."}`, rec.Body.String())

	// busca por nome
	rec = doRequest(t, h, http.MethodGet, "/user?nome=Ana", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"nome":"Ana","sobrenome":"Silva"}]`, rec.Body.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": 1,\n    \"nome\": \"Ana\",\n    \"sobrenome\": \"Silva\"\n  }\n]", string(data))
}

func TestList(t *testing.T) {
	st := store.NewMemoryStore(
		user.Record{ID: 1, Name: "Ana", Surname: "Silva"},
		user.Record{ID: 2, Name: "Bia", Surname: "Souza"},
	)
	h := NewRouter(service.New(st))

	rec := doRequest(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"id":1,"nome":"Ana","sobrenome":"Silva"},{"id":2,"nome":"Bia","sobrenome":"Souza"}]`, rec.Body.String())
}

func TestSearch(t *testing.T) {
	st := store.NewMemoryStore(
		user.Record{ID: 1, Name: "Ana", Surname: "Silva"},
		user.Record{ID: 2, Name: "Bia", Surname: "Silva"},
	)
	h := NewRouter(service.New(st))

	tests := []struct {
		name   string
		target string
		status int
		body   string
	}{
		{"sem parâmetros", "/user", 200, `[{"id":1,"nome":"Ana","sobrenome":"Silva"},{"id":2,"nome":"Bia","sobrenome":"Silva"}]`},
		{"por id", "/user?id=2", 200, `[{"id":2,"nome":"Bia","sobrenome":"Silva"}]`},
		{"id vazio é ignorado", "/user?id=&nome=Ana", 200, `[{"id":1,"nome":"Ana","sobrenome":"Silva"}]`},
		{"conjunção sem resultado", "/user?nome=Ana&sobrenome=Souza", 200, `{"message":"Nenhum dado encontrado."}`},
		{"id não numérico", "/user?id=abc", 400, `{"message":"Parâmetro id inválido."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestCreate_InvalidBodies(t *testing.T) {
	st := store.NewMemoryStore()
	h := NewRouter(service.New(st))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"json quebrado", `{"nome":`, 400},
		{"corpo vazio", ``, 400},
		{"campo desconhecido", `{"nome":"Ana","idade":3}`, 400},
		{"tipo errado", `{"nome":1}`, 400},
		{"conteúdo extra", `{"nome":"Ana"} {"nome":"Bia"}`, 400},
		{"array", `[{"nome":"Ana"}]`, 400},
		{"chave maiúscula", `{"NOME":"Ana"}`, 400},
		{"chave repetida com caixa diferente", `{"nome":"A","Nome":"B"}`, 400},
		{"chave repetida", `{"nome":"A","nome":"B"}`, 400},
		{"nome ausente", `{"sobrenome":"Silva"}`, 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/user", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == 400 {
				assert.JSONEq(t, `{"message":"Corpo da requisição inválido."}`, rec.Body.String())
			}
		})
	}

	rec := doRequest(t, h, http.MethodPost, "/user", `{"sobrenome":"Silva"}`)
	assert.JSONEq(t, `{"message":"Campo 'nome' falhou na regra 'required'"}`, rec.Body.String())
	assert.Equal(t, 0, st.Saves())
}

func TestCreate_IDOrNamePolicy(t *testing.T) {
	checker, err := service.NewConflictChecker(user.PolicyIDOrName, "")
	require.NoError(t, err)
	st := store.NewMemoryStore(user.Record{ID: 1, Name: "Ana", Surname: "Silva"})
	h := NewRouter(service.New(st, service.WithConflictChecker(checker)))

	rec := doRequest(t, h, http.MethodPost, "/user", `{"id":1,"nome":"Bia","sobrenome":"Souza"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"Usuário já existe com este ID ou Nome."}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodPost, "/user", `{"id":-2,"nome":"Caio"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"message":"Campo 'id' falhou na regra 'gt'"}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodPost, "/user", `{"id":50,"nome":"Bia","sobrenome":"Souza"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Usuário adicionado com sucesso!","user":{"id":2,"nome":"Bia","sobrenome":"Souza"}}`, rec.Body.String())
}

func TestCreate_NamePolicyIgnoresClientID(t *testing.T) {
	st := store.NewMemoryStore(user.Record{ID: 4, Name: "Ana", Surname: "Silva"})
	h := NewRouter(service.New(st))

	rec := doRequest(t, h, http.MethodPost, "/user", `{"id":0,"nome":"Bia","sobrenome":"Souza"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Usuário adicionado com sucesso!","user":{"id":5,"nome":"Bia","sobrenome":"Souza"}}`, rec.Body.String())
}

type failingService struct {
	err error
}

func (f failingService) Find(ctx context.Context, _ user.Filter) (user.Collection, error) {
	return nil, f.err
}

func (f failingService) Insert(ctx context.Context, _ user.Candidate) (user.Record, error) {
	return user.Record{}, f.err
}

func TestStoreFailures(t *testing.T) {
	errs := []error{
		&user.DecodeError{Source: "users.json", Err: errors.New("não é array")},
		&user.IOError{Op: "write", Source: "users.json", Err: errors.New("permissão negada")},
	}

	for _, e := range errs {
		h := NewRouter(failingService{err: e})

		rec := doRequest(t, h, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"message":"Erro interno do servidor."}`, rec.Body.String())

		rec = doRequest(t, h, http.MethodPost, "/user", `{"nome":"Ana"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	}

	h := NewRouter(failingService{err: context.DeadlineExceeded})
	rec := doRequest(t, h, http.MethodGet, "/user", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuxiliaryRoutes(t *testing.T) {
	h := NewRouter(service.New(store.NewMemoryStore()))

	rec := doRequest(t, h, http.MethodGet, "/hello", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World!"}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodGet, "/healthz", "")
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodGet, "/nada", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Rota não encontrada."}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodDelete, "/user", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// sem WithGraphQL a rota não existe
	rec = doRequest(t, h, http.MethodPost, "/graphql", `{"query":"{ users { id } }"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWithGraphQL(t *testing.T) {
	gql := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	})
	h := NewRouter(service.New(store.NewMemoryStore()), WithGraphQL(gql))

	rec := doRequest(t, h, http.MethodPost, "/graphql", `{"query":"{ users { id } }"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{}}`, rec.Body.String())
}
