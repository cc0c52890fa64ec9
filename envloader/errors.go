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

package envloader

import (
	"fmt"
	"reflect"
)

// Origin indica de onde veio o valor bruto de um campo.
type Origin string

const (
	// OriginEnv é uma variável de ambiente definida.
	OriginEnv Origin = "env"
	// OriginDefault é o valor da tag envDefault.
	OriginDefault Origin = "envDefault"
)

// InvalidConfigError: o alvo do walk não é um ponteiro para struct.
type InvalidConfigError struct {
	Value reflect.Type
}

func (e *InvalidConfigError) Error() string {
	switch {
	case e.Value == nil:
		return "envloader: esperado pointer to struct, recebido nil"
	case e.Value.Kind() != reflect.Ptr:
		return fmt.Sprintf("envloader: esperado pointer to struct, recebido %s", e.Value.Kind())
	default:
		return fmt.Sprintf("envloader: esperado pointer to struct, recebido pointer to %s", e.Value.Elem().Kind())
	}
}

// FieldError é a falha ao converter o valor de EnvVar para o tipo do campo.
// Origin separa um envDefault mal escrito de uma variável inválida no deploy.
type FieldError struct {
	FieldName string
	EnvVar    string
	Value     string
	Origin    Origin
	Err       error
}

func (e *FieldError) Error() string {
	if e.Origin == OriginDefault {
		return fmt.Sprintf("envloader: campo %s: envDefault %q inválido para %s: %v",
			e.FieldName, e.Value, e.EnvVar, e.Err)
	}
	return fmt.Sprintf("envloader: campo %s: valor inválido em %s=%q: %v",
		e.FieldName, e.EnvVar, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("envloader: tipo %s sem conversão", e.Type)
}
