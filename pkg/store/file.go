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
	"errors"
	"io/fs"
	"os"

	"github.com/raywall/user-file-service/pkg/user"
)

// FileStore grava a coleção em um arquivo local.
// A escrita não é atômica: um crash durante o WriteFile pode corromper o arquivo.
type FileStore struct {
	path string
}

// NewFileStore cria um store para o caminho informado, relativo ao diretório
// de trabalho quando não for absoluto.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path retorna o caminho do arquivo de dados.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (user.Collection, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return user.Collection{}, nil
	}
	if err != nil {
		return nil, &user.IOError{Op: "read", Source: s.path, Err: err}
	}
	return decode(data, s.path)
}

func (s *FileStore) Save(ctx context.Context, c user.Collection) error {
	data, err := encode(c)
	if err != nil {
		return &user.IOError{Op: "write", Source: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return &user.IOError{Op: "write", Source: s.path, Err: err}
	}
	return nil
}
