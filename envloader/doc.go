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

// Package envloader carrega variáveis de ambiente em structs Go usando as
// tags `env` (nome da variável) e `envDefault` (valor padrão).
//
// Três modos de carga estão disponíveis:
//
//   - Load: ambiente e, na falta dele, o envDefault.
//   - Defaults: somente os envDefault, sem consultar o ambiente.
//   - Overlay: somente as variáveis definidas, preservando o restante.
//
// Defaults seguido de um yaml.Unmarshal e de um Overlay resulta na
// precedência padrão < arquivo < ambiente usada por pkg/config:
//
//	type Config struct {
//		Port    int           `env:"PORT" envDefault:"3000"`
//		Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
//	}
//
//	var cfg Config
//	if err := envloader.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// São suportados string, inteiros, bool, floats, time.Duration, []string
// (separado por vírgulas) e structs aninhadas, inclusive por ponteiro.
package envloader
