// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store persiste a coleção de usuários como um único documento JSON.
//
// Todo backend lê e grava a coleção inteira a cada chamada; não há cache
// entre requisições. Documento ausente equivale a coleção vazia.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/raywall/user-file-service/pkg/user"
)

// Store define o contrato de leitura e escrita da coleção completa.
type Store interface {
	// Load retorna a coleção persistida, vazia quando o documento não existe.
	// Falha com *user.DecodeError ou *user.IOError.
	Load(ctx context.Context) (user.Collection, error)
	// Save sobrescreve o documento com a coleção completa.
	// Falha com *user.IOError.
	Save(ctx context.Context, c user.Collection) error
}

// decode converte o conteúdo bruto em coleção. Conteúdo em branco é tratado
// como coleção vazia; qualquer outra coisa que não seja um array de
// registros válidos é rejeitada.
func decode(data []byte, source string) (user.Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return user.Collection{}, nil
	}
	if trimmed[0] != '[' {
		return nil, &user.DecodeError{Source: source, Err: errors.New("documento deve ser um array JSON")}
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	c := user.Collection{}
	if err := dec.Decode(&c); err != nil {
		return nil, &user.DecodeError{Source: source, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &user.DecodeError{Source: source, Err: errors.New("conteúdo extra após o array")}
	}
	if err := c.Validate(); err != nil {
		return nil, &user.DecodeError{Source: source, Err: err}
	}
	return c, nil
}

// encode serializa a coleção com indentação de dois espaços.
func encode(c user.Collection) ([]byte, error) {
	if c == nil {
		c = user.Collection{}
	}
	return json.MarshalIndent(c, "", "  ")
}
