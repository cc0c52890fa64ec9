package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Mensagens exibidas ao cliente.
const (
	MsgEmpty          = "Nenhum dado encontrado."
	MsgCreated        = "Usuário adicionado com sucesso!"
	MsgInvalidBody    = "Corpo da requisição inválido."
	MsgInvalidID      = "Parâmetro id inválido."
	MsgInternal       = "Erro interno do servidor."
	MsgNotFound       = "Rota não encontrada."
	MsgMethodNotAllow = "Método não permitido."
	MsgHello          = "Hello World!"
)

type messageBody struct {
	Message string `json:"message"`
}

type createdBody struct {
	Message string      `json:"message"`
	User    interface{} `json:"user"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("falha ao serializar resposta")
		status = http.StatusInternalServerError
		body = []byte(`{"message":"` + MsgInternal + `"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, messageBody{Message: msg})
}
