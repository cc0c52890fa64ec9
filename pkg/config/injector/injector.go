// Package injector resolve referências ${env.*}, ${ssm.*} e ${secret.*}
// presentes em campos string de structs de configuração.
//
// Exemplos:
//
//	${env.DB_PASSWORD}
//	${ssm./users-api/store-uri}
//	${secret.users-db#password}   campo "password" de um segredo JSON
package injector

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
	"sync"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

// SSMAPI permite mockar o Parameter Store.
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SecretsAPI permite mockar o Secrets Manager.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type Injector struct {
	mu      sync.Mutex
	ssm     SSMAPI
	secrets SecretsAPI
}

type Option func(*Injector)

func WithSSM(client SSMAPI) Option {
	return func(i *Injector) { i.ssm = client }
}

func WithSecrets(client SecretsAPI) Option {
	return func(i *Injector) { i.secrets = client }
}

// New cria um injector. Clientes AWS não informados são criados sob demanda,
// apenas quando uma referência ssm/secret aparece.
func New(opts ...Option) *Injector {
	i := &Injector{}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inject percorre target (ponteiro para struct) substituindo referências
// em todos os campos string, inclusive em structs aninhadas e slices.
func (i *Injector) Inject(ctx context.Context, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target deve ser um ponteiro para struct não nulo")
	}
	return i.injectRecursive(ctx, v.Elem())
}

func (i *Injector) injectRecursive(ctx context.Context, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		for k := 0; k < v.NumField(); k++ {
			if err := i.injectRecursive(ctx, v.Field(k)); err != nil {
				return err
			}
		}

	case reflect.Ptr:
		if !v.IsNil() {
			return i.injectRecursive(ctx, v.Elem())
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := i.injectRecursive(ctx, v.Index(j)); err != nil {
				return err
			}
		}

	case reflect.String:
		if !v.CanSet() {
			return nil
		}
		out, err := i.Interpolate(ctx, v.String())
		if err != nil {
			return err
		}
		v.SetString(out)
	}
	return nil
}

// Interpolate substitui todas as referências de input. O primeiro erro de
// resolução interrompe o processo.
func (i *Injector) Interpolate(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var firstErr error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		if firstErr != nil {
			return match
		}
		sub := pattern.FindStringSubmatch(match)
		val, err := i.fetchValue(ctx, sub[1], sub[2])
		if err != nil {
			firstErr = err
			return match
		}
		return val
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

func (i *Injector) fetchValue(ctx context.Context, sourceType, key string) (string, error) {
	switch sourceType {
	case "env":
		return os.Getenv(key), nil

	case "ssm":
		client, err := i.ssmClient(ctx)
		if err != nil {
			return "", err
		}
		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           &key,
			WithDecryption: boolPtr(true),
		})
		if err != nil {
			return "", fmt.Errorf("erro no SSM GetParameter (%s): %w", key, err)
		}
		if out.Parameter == nil || out.Parameter.Value == nil {
			return "", fmt.Errorf("parâmetro SSM sem valor: %s", key)
		}
		return *out.Parameter.Value, nil

	case "secret":
		secretID, field, _ := strings.Cut(key, "#")
		client, err := i.secretsClient(ctx)
		if err != nil {
			return "", err
		}
		out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
			SecretId: &secretID,
		})
		if err != nil {
			return "", fmt.Errorf("erro no SecretsManager (%s): %w", secretID, err)
		}
		if out.SecretString == nil {
			return "", fmt.Errorf("segredo sem SecretString: %s", secretID)
		}
		if field == "" {
			return *out.SecretString, nil
		}
		return extractField(*out.SecretString, secretID, field)
	}

	return "", fmt.Errorf("fonte de referência desconhecida: %s", sourceType)
}

func extractField(secret, secretID, field string) (string, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(secret), &data); err != nil {
		return "", fmt.Errorf("segredo %s não é JSON: %w", secretID, err)
	}
	val, ok := data[field]
	if !ok {
		return "", fmt.Errorf("campo %s ausente no segredo %s", field, secretID)
	}
	return fmt.Sprintf("%v", val), nil
}

func (i *Injector) ssmClient(ctx context.Context) (SSMAPI, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.ssm == nil {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("falha ao carregar config AWS: %w", err)
		}
		i.ssm = ssm.NewFromConfig(cfg)
	}
	return i.ssm, nil
}

func (i *Injector) secretsClient(ctx context.Context) (SecretsAPI, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.secrets == nil {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("falha ao carregar config AWS: %w", err)
		}
		i.secrets = secretsmanager.NewFromConfig(cfg)
	}
	return i.secrets, nil
}

func boolPtr(b bool) *bool { return &b }
