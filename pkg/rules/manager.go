package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
	"github.com/raywall/user-file-service/pkg/user"
)

// ConflictRule é uma expressão CEL booleana que decide se um candidato
// conflita com um registro existente. As variáveis disponíveis são
// `existing` e `candidate`, ambos mapas com as chaves id, nome e sobrenome.
// As funções de string da extensão ext.Strings (lowerAscii, trim...) estão
// habilitadas.
//
//	existing.nome == candidate.nome && existing.sobrenome == candidate.sobrenome
type ConflictRule struct {
	expr string
	prg  cel.Program
}

// NewConflictRule compila a expressão uma única vez, no boot.
func NewConflictRule(expression string) (*ConflictRule, error) {
	if expression == "" {
		return nil, fmt.Errorf("expressão CEL vazia")
	}

	env, err := cel.NewEnv(
		cel.Variable("existing", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("candidate", cel.MapType(cel.StringType, cel.DynType)),
		ext.Strings(),
	)
	if err != nil {
		return nil, fmt.Errorf("erro fatal CEL init: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("erro compilação CEL '%s': %s", expression, issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("erro programa CEL: %w", err)
	}

	return &ConflictRule{expr: expression, prg: prg}, nil
}

// Expression retorna o texto original da regra.
func (r *ConflictRule) Expression() string {
	return r.expr
}

// Matches avalia a regra para um par existente/candidato.
func (r *ConflictRule) Matches(existing user.Record, candidate user.Candidate) (bool, error) {
	out, _, err := r.prg.Eval(map[string]interface{}{
		"existing":  recordVars(existing),
		"candidate": candidateVars(candidate),
	})
	if err != nil {
		return false, fmt.Errorf("erro execução CEL: %w", err)
	}

	val, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("resultado não é booleano: %v", out.Value())
	}
	return val, nil
}

func recordVars(r user.Record) map[string]interface{} {
	return map[string]interface{}{
		"id":        int64(r.ID),
		"nome":      r.Name,
		"sobrenome": r.Surname,
	}
}

// candidateVars expõe id=0 quando o cliente não informou id; ids válidos
// são sempre positivos, então a comparação nunca casa por acidente.
func candidateVars(c user.Candidate) map[string]interface{} {
	var id int64
	if c.ID != nil {
		id = int64(*c.ID)
	}
	return map[string]interface{}{
		"id":        id,
		"nome":      c.Name,
		"sobrenome": c.Surname,
	}
}
