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

// Package userfileservice é a raiz do serviço de usuários persistido em um
// único documento JSON.
//
// Visão Geral:
// O serviço expõe o recurso "usuário" via REST, GraphQL e AWS Lambda. Toda
// requisição carrega a coleção inteira do backend, filtra ou acrescenta um
// registro e grava o documento de volta.
//
// Sub-Pacotes Principais:
//
// 1. pkg/user:
//   - Tipos de domínio (Record, Collection, Filter, Candidate).
//   - Taxonomia de erros (DecodeError, IOError, ConflictError).
//
// 2. pkg/store:
//   - Interface Store (Load/Save) e backends file, memory, s3, dynamodb,
//     redis e postgres, selecionados pela URI.
//
// 3. pkg/service:
//   - Find e Insert com política de conflito configurável (name,
//     id_or_name ou expressão CEL) e serialização por mutex.
//
// 4. pkg/transport e pkg/graphql:
//   - Router gorilla/mux, middlewares de observabilidade, handler Lambda e
//     schema GraphQL sobre o mesmo serviço.
//
// 5. pkg/config e envloader:
//   - Configuração por YAML opcional e variáveis de ambiente com tags
//     "env" e "envDefault", validada no boot.
//
// Exemplo de uso:
//
//	STORE_URI=file://users.json CONFLICT_POLICY=name go run ./cmd/server
package userfileservice
