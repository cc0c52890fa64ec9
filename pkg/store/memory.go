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

package store

import (
	"context"
	"sync"

	"github.com/raywall/user-file-service/pkg/user"
)

const memorySource = "memory://"

// MemoryStore mantém o documento serializado em memória. Usado como dublê
// de teste e pelo esquema memory://. Passa pelo mesmo encode/decode do
// FileStore, então o round-trip é idêntico.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryStore cria um store opcionalmente populado com seed.
func NewMemoryStore(seed ...user.Record) *MemoryStore {
	s := &MemoryStore{}
	if len(seed) > 0 {
		// seed vem de código de teste; encode de structs simples não falha
		s.data, _ = encode(user.Collection(seed))
	}
	return s
}

func (s *MemoryStore) Load(ctx context.Context) (user.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decode(s.data, memorySource)
}

func (s *MemoryStore) Save(ctx context.Context, c user.Collection) error {
	data, err := encode(c)
	if err != nil {
		return &user.IOError{Op: "write", Source: memorySource, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.saves++
	return nil
}

// Saves retorna quantas vezes Save foi executado com sucesso.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Raw retorna uma cópia do documento serializado.
func (s *MemoryStore) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}
