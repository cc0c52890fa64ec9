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
	"fmt"
	"math"
)

// Record representa um usuário persistido.
type Record struct {
	ID      int    `json:"id"`
	Name    string `json:"nome"`
	Surname string `json:"sobrenome"`
}

// Collection é o conjunto ordenado de registros, na ordem de inserção.
type Collection []Record

// NextID retorna o maior id existente + 1, ou 1 para uma coleção vazia.
// A ordem dos registros no array não influencia o resultado. Retorna
// ErrIDExhausted quando o maior id já é math.MaxInt.
func (c Collection) NextID() (int, error) {
	highest := 0
	for _, r := range c {
		if r.ID > highest {
			highest = r.ID
		}
	}
	if highest == math.MaxInt {
		return 0, ErrIDExhausted
	}
	return highest + 1, nil
}

// Validate verifica as invariantes de uma coleção decodificada: ids
// positivos e únicos, nome não vazio.
func (c Collection) Validate() error {
	seen := make(map[int]struct{}, len(c))
	for i, r := range c {
		if r.ID <= 0 {
			return fmt.Errorf("registro %d: id deve ser positivo, recebido %d", i, r.ID)
		}
		if r.Name == "" {
			return fmt.Errorf("registro %d: nome vazio", i)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("registro %d: id %d duplicado", i, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

// Filter retorna os registros que satisfazem f, preservando a ordem.
// O resultado nunca é nil.
func (c Collection) Filter(f Filter) Collection {
	out := make(Collection, 0, len(c))
	for _, r := range c {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Filter descreve uma busca por igualdade. Campos nil casam com qualquer valor.
type Filter struct {
	ID      *int
	Name    *string
	Surname *string
}

// Matches informa se r satisfaz todos os campos informados no filtro.
func (f Filter) Matches(r Record) bool {
	if f.ID != nil && *f.ID != r.ID {
		return false
	}
	if f.Name != nil && *f.Name != r.Name {
		return false
	}
	if f.Surname != nil && *f.Surname != r.Surname {
		return false
	}
	return true
}

// IsEmpty informa se nenhum campo do filtro foi informado.
func (f Filter) IsEmpty() bool {
	return f.ID == nil && f.Name == nil && f.Surname == nil
}

// Candidate é o payload de criação. O ID informado pelo cliente nunca é
// usado como identificador do novo registro; ele só participa da checagem
// de conflito nas políticas id_or_name e expr, que também exigem id > 0.
type Candidate struct {
	ID      *int   `json:"id,omitempty"`
	Name    string `json:"nome" validate:"required"`
	Surname string `json:"sobrenome"`
}
