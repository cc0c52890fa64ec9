package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/raywall/user-file-service/pkg/user"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes limita o corpo do POST /user.
const maxBodyBytes = 1 << 20

// UserService é o contrato do serviço de usuários consumido pelos handlers.
type UserService interface {
	Find(ctx context.Context, f user.Filter) (user.Collection, error)
	Insert(ctx context.Context, c user.Candidate) (user.Record, error)
}

// UserHandler expõe o recurso "usuário" via REST.
type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List atende GET /.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	h.find(w, r, user.Filter{})
}

// Search atende GET /user?id=&nome=&sobrenome=. Parâmetros vazios são
// tratados como ausentes.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f user.Filter

	if raw := q.Get("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeMessage(w, r, http.StatusBadRequest, MsgInvalidID)
			return
		}
		f.ID = &id
	}
	if name := q.Get("nome"); name != "" {
		f.Name = &name
	}
	if surname := q.Get("sobrenome"); surname != "" {
		f.Surname = &surname
	}

	h.find(w, r, f)
}

func (h *UserHandler) find(w http.ResponseWriter, r *http.Request, f user.Filter) {
	found, err := h.svc.Find(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(found) == 0 {
		writeMessage(w, r, http.StatusOK, MsgEmpty)
		return
	}
	writeJSON(w, r, http.StatusOK, found)
}

// Create atende POST /user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var c user.Candidate
	if err := dec.Decode(&c); err != nil {
		log.Ctx(r.Context()).Debug().Err(err).Msg("corpo inválido")
		writeMessage(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		writeMessage(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	rec, err := h.svc.Insert(r.Context(), c)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, createdBody{Message: MsgCreated, User: rec})
}

// Hello atende GET /hello.
func (h *UserHandler) Hello(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, r, http.StatusOK, MsgHello)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// fail traduz erros do serviço em status HTTP.
func (h *UserHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		conflict   *user.ConflictError
		validation *user.ValidationError
	)

	switch {
	case errors.As(err, &conflict):
		writeMessage(w, r, http.StatusConflict, conflict.Error())
	case errors.As(err, &validation):
		writeMessage(w, r, http.StatusUnprocessableEntity, validation.Error())
	case errors.Is(err, context.DeadlineExceeded):
		log.Ctx(r.Context()).Error().Err(err).Msg("timeout ao acessar o store")
		writeMessage(w, r, http.StatusServiceUnavailable, MsgInternal)
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("falha ao acessar o store")
		writeMessage(w, r, http.StatusInternalServerError, MsgInternal)
	}
}
