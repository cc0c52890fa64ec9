package transport

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type routerOptions struct {
	graphql http.Handler
	timeout time.Duration
}

type RouterOption func(*routerOptions)

// WithGraphQL registra h em POST /graphql.
func WithGraphQL(h http.Handler) RouterOption {
	return func(o *routerOptions) {
		o.graphql = h
	}
}

// WithTimeout define o prazo de cada requisição.
func WithTimeout(d time.Duration) RouterOption {
	return func(o *routerOptions) {
		o.timeout = d
	}
}

// NewRouter monta as rotas REST sobre svc, já envolvidas pelos middlewares
// de observabilidade, recover e timeout.
func NewRouter(svc UserService, opts ...RouterOption) http.Handler {
	o := &routerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	h := NewUserHandler(svc)
	r := mux.NewRouter()

	r.HandleFunc("/", h.List).Methods(http.MethodGet)
	r.HandleFunc("/user", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/user", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/hello", h.Hello).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	if o.graphql != nil {
		r.Handle("/graphql", o.graphql).Methods(http.MethodPost)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeMessage(w, req, http.StatusNotFound, MsgNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeMessage(w, req, http.StatusMethodNotAllowed, MsgMethodNotAllow)
	})

	var handler http.Handler = r
	handler = TimeoutMiddleware(o.timeout)(handler)
	handler = RecoverMiddleware(handler)
	return ObservabilityMiddleware(handler)
}
