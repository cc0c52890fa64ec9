package transport

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/raywall/user-file-service/pkg/service"
	"github.com/raywall/user-file-service/pkg/store"
	"github.com/raywall/user-file-service/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLambdaHandler_REST(t *testing.T) {
	st := store.NewMemoryStore(user.Record{ID: 1, Name: "Ana", Surname: "Silva"})
	handler := NewLambdaHandler(NewRouter(service.New(st)))

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		Path:                  "/user",
		QueryStringParameters: map[string]string{"nome": "Ana"},
		Headers:               map[string]string{HeaderCorrelationID: "lambda-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":1,"nome":"Ana","sobrenome":"Silva"}]`, resp.Body)
	assert.Equal(t, "lambda-1", resp.Headers[HeaderCorrelationID])
	assert.Equal(t, "application/json", resp.Headers["content-type"])

	resp, err = handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/user",
		Body:       `{"nome":"Bia","sobrenome":"Souza"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Usuário adicionado com sucesso!","user":{"id":2,"nome":"Bia","sobrenome":"Souza"}}`, resp.Body)
}

func TestLambdaHandler_Base64Body(t *testing.T) {
	handler := NewLambdaHandler(NewRouter(service.New(store.NewMemoryStore())))

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/user",
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"nome":"Ana"}`)),
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/user",
		Body:            "%%%",
		IsBase64Encoded: true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLambdaHandler_DefaultsToRoot(t *testing.T) {
	handler := NewLambdaHandler(NewRouter(service.New(store.NewMemoryStore())))

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Nenhum dado encontrado."}`, resp.Body)
}
