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

// Package user define o modelo de domínio do recurso "usuário": o registro,
// a coleção persistida como um único array JSON, os filtros de busca e a
// taxonomia de erros compartilhada entre store, serviço e transporte.
//
// Um Record é serializado com as chaves em português, tanto na API quanto
// no documento persistido:
//
//	[{"id": 1, "nome": "Ana", "sobrenome": "Silva"}]
package user
