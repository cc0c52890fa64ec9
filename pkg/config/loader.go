package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/raywall/user-file-service/envloader"
	"github.com/raywall/user-file-service/pkg/config/injector"
	"gopkg.in/yaml.v3"
)

// Loader monta o AppConfig a partir dos defaults, do YAML opcional e do ambiente.
type Loader struct {
	validator *ConfigValidator
	injector  *injector.Injector
}

// NewLoader cria um loader. Sem injector explícito, referências ${ssm.*}
// e ${secret.*} usam clientes AWS criados a partir da config padrão.
func NewLoader(inj *injector.Injector) *Loader {
	if inj == nil {
		inj = injector.New()
	}
	return &Loader{validator: NewValidator(), injector: inj}
}

// Load é o atalho usado pelo cmd/server.
func Load(ctx context.Context, path string) (*AppConfig, error) {
	return NewLoader(nil).Load(ctx, path)
}

// Load aplica, em ordem: envDefault, arquivo (quando path != ""), variáveis
// de ambiente, interpolação de segredos e validação.
func (l *Loader) Load(ctx context.Context, path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envloader.Defaults(cfg); err != nil {
		return nil, fmt.Errorf("falha ao aplicar defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(strings.TrimPrefix(path, "file://"))
		if err != nil {
			return nil, fmt.Errorf("falha leitura config (%s): %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("falha ao parsear YAML (%s): %w", path, err)
		}
	}

	if err := envloader.Overlay(cfg); err != nil {
		return nil, fmt.Errorf("falha ao carregar env: %w", err)
	}

	if err := l.injector.Inject(ctx, cfg); err != nil {
		return nil, fmt.Errorf("falha ao resolver referências: %w", err)
	}

	if err := l.validator.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
