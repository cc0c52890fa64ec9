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

package user

import (
	"errors"
	"fmt"
	"strings"
)

// ConflictPolicy define a regra usada para decidir se um candidato duplica
// um registro existente.
type ConflictPolicy string

const (
	// PolicyName considera conflito quando já existe um registro com o mesmo nome.
	PolicyName ConflictPolicy = "name"
	// PolicyIDOrName considera conflito por id ou por nome.
	PolicyIDOrName ConflictPolicy = "id_or_name"
	// PolicyExpr delega a decisão a uma expressão CEL configurada.
	PolicyExpr ConflictPolicy = "expr"
)

// ConflictMessage retorna a mensagem exibida ao cliente para a política.
func (p ConflictPolicy) ConflictMessage() string {
	switch p {
	case PolicyIDOrName:
		return "Usuário já existe com este ID ou Nome."
	case PolicyExpr:
		return "Usuário já existe."
	default:
		return "Usuário já existe com este Nome."
	}
}

// ErrConflict é o erro sentinela de duplicidade. Use errors.Is para testá-lo.
var ErrConflict = errors.New("user: usuário já existe")

// ErrIDExhausted indica que não há id positivo livre acima do maior existente.
var ErrIDExhausted = errors.New("user: ids esgotados")

// ConflictError é retornado pelo insert quando a política ativa detecta duplicidade.
type ConflictError struct {
	Policy ConflictPolicy
}

func (e *ConflictError) Error() string {
	return e.Policy.ConflictMessage()
}

// Is permite errors.Is(err, ErrConflict).
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// DecodeError indica que o conteúdo persistido não é um array JSON de
// registros válidos.
type DecodeError struct {
	// Source identifica o documento (caminho do arquivo, URI do bucket...).
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("user: conteúdo inválido em %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IOError indica falha de leitura ou escrita no backend de armazenamento.
type IOError struct {
	// Op é "read" ou "write".
	Op     string
	Source string
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("user: falha de %s em %s: %v", e.Op, e.Source, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ValidationError agrupa as violações de schema de um candidato.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}
