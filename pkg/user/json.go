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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	recordKeys    = map[string]bool{"id": true, "nome": true, "sobrenome": true}
	candidateKeys = recordKeys
)

// UnmarshalJSON aceita apenas um objeto com as chaves exatas id, nome e
// sobrenome, cada uma no máximo uma vez. O encoding/json casaria "NOME" ou
// "Nome" com o campo e ficaria com o último valor repetido.
func (r *Record) UnmarshalJSON(data []byte) error {
	if err := checkKeys(data, recordKeys); err != nil {
		return err
	}
	type plain Record
	return json.Unmarshal(data, (*plain)(r))
}

// UnmarshalJSON aplica ao payload de criação as mesmas regras de chave do Record.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	if err := checkKeys(data, candidateKeys); err != nil {
		return err
	}
	type plain Candidate
	return json.Unmarshal(data, (*plain)(c))
}

// checkKeys percorre só o primeiro nível do objeto.
func checkKeys(data []byte, allowed map[string]bool) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("registro deve ser um objeto JSON")
	}

	seen := make(map[string]bool, len(allowed))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		if !allowed[key] {
			return fmt.Errorf("campo desconhecido %q", key)
		}
		if seen[key] {
			return fmt.Errorf("campo %q duplicado", key)
		}
		seen[key] = true

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return err
		}
	}
	return nil
}
