/*
Package service implementa as regras de negócio do recurso "usuário" sobre
um store.Store injetado na construção.

O serviço expõe duas operações:
  - Find: busca linear por igualdade em id, nome e sobrenome.
  - Insert: valida o candidato, checa duplicidade segundo a ConflictPolicy
    ativa, atribui id = maior id + 1 e persiste a coleção inteira.

Toda sequência load-modify-save passa por um único mutex, evitando que
dois inserts concorrentes do mesmo processo calculem o mesmo id ou percam
a escrita um do outro. Processos distintos apontando para o mesmo
documento continuam sem coordenação.

Exemplo de uso:

	st := store.NewFileStore("users.json")
	svc := service.New(st)
	rec, err := svc.Insert(ctx, user.Candidate{Name: "Ana", Surname: "Silva"})
*/
package service
