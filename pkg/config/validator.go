package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/raywall/user-file-service/pkg/store"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *AppConfig) error {
	if err := cv.validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *AppConfig) error {
	d, err := time.ParseDuration(cfg.Service.Timeout)
	if err != nil {
		return fmt.Errorf("timeout inválido '%s': %w", cfg.Service.Timeout, err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout deve ser positivo: '%s'", cfg.Service.Timeout)
	}

	if !store.IsSupported(cfg.Storage.URI) {
		return fmt.Errorf("esquema de storage não suportado: '%s'. Use um de %v", cfg.Storage.URI, store.Schemes)
	}

	if cfg.Conflict.Policy != "expr" && cfg.Conflict.Expr != "" {
		return fmt.Errorf("conflict.expr só é aceito com conflict.policy=expr (atual: '%s')", cfg.Conflict.Policy)
	}

	return nil
}
