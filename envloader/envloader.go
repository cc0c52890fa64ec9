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
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// mode controla de onde vêm os valores aplicados a cada campo.
type mode int

const (
	// modeLoad usa a variável de ambiente e, na ausência dela, o envDefault.
	modeLoad mode = iota
	// modeDefaults aplica apenas os valores de envDefault.
	modeDefaults
	// modeOverlay aplica apenas variáveis de ambiente definidas.
	modeOverlay
)

// Load preenche uma struct com valores de variáveis de ambiente
// baseado nas tags "env" e "envDefault".
func Load(config interface{}) error {
	return walk(config, modeLoad)
}

// Defaults preenche a struct somente com os valores de "envDefault",
// ignorando o ambiente. Útil antes de aplicar um arquivo de configuração.
func Defaults(config interface{}) error {
	return walk(config, modeDefaults)
}

// Overlay sobrescreve apenas os campos cuja variável de ambiente está
// definida, preservando valores já carregados (ex.: vindos de YAML).
func Overlay(config interface{}) error {
	return walk(config, modeOverlay)
}

func walk(config interface{}, m mode) error {
	val := reflect.ValueOf(config)
	if !val.IsValid() {
		return &InvalidConfigError{}
	}
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return &InvalidConfigError{Value: val.Type()}
	}
	return loadStruct(val.Elem(), m)
}

func loadStruct(val reflect.Value, m mode) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := loadStruct(field, m); err != nil {
				return err
			}
			continue
		}

		if field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct {
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			if err := loadStruct(field.Elem(), m); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		value, origin, ok := resolve(envTag, fieldType.Tag.Get("envDefault"), m)
		if !ok {
			continue
		}

		if err := setFieldValue(field, value); err != nil {
			return &FieldError{
				FieldName: fieldType.Name,
				EnvVar:    envTag,
				Value:     value,
				Origin:    origin,
				Err:       err,
			}
		}
	}

	return nil
}

// resolve decide o valor bruto do campo e de onde ele veio; ok=false
// mantém o campo intacto.
func resolve(envTag, defaultTag string, m mode) (string, Origin, bool) {
	switch m {
	case modeDefaults:
		return defaultTag, OriginDefault, defaultTag != ""
	case modeOverlay:
		v, set := os.LookupEnv(envTag)
		return v, OriginEnv, set && v != ""
	default:
		if v := os.Getenv(envTag); v != "" {
			return v, OriginEnv, true
		}
		return defaultTag, OriginDefault, defaultTag != ""
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

func setFieldValue(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(intValue)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintValue, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(uintValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return err
		}
		field.SetBool(boolValue)

	case reflect.Float32, reflect.Float64:
		floatValue, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return &UnsupportedTypeError{Type: field.Type()}
		}
		parts := strings.Split(value, ",")
		out := reflect.MakeSlice(field.Type(), 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = reflect.Append(out, reflect.ValueOf(p).Convert(field.Type().Elem()))
			}
		}
		field.Set(out)

	default:
		return &UnsupportedTypeError{Type: field.Type()}
	}

	return nil
}
