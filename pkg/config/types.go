package config

import "time"

// EnvConfigFilePath aponta para um YAML opcional com a configuração do serviço.
const EnvConfigFilePath = "CONFIG_FILE_PATH"

// AppConfig representa a configuração completa do serviço. A precedência é
// envDefault < arquivo YAML < variáveis de ambiente.
type AppConfig struct {
	Service  ServiceConf  `yaml:"service"`
	Storage  StorageConf  `yaml:"storage"`
	Conflict ConflictConf `yaml:"conflict"`
	Logging  LoggingConf  `yaml:"logging"`
	Metrics  MetricsConf  `yaml:"metrics"`
	Events   EventsConf   `yaml:"events"`
}

// ServiceConf contém os metadados e configurações de runtime do serviço.
type ServiceConf struct {
	Name    string `yaml:"name" env:"SERVICE_NAME" envDefault:"users-api" validate:"required,hostname_rfc1123"`
	Runtime string `yaml:"runtime" env:"SERVICE_RUNTIME" envDefault:"local" validate:"required,oneof=local lambda"`
	Port    int    `yaml:"port" env:"PORT" envDefault:"3000" validate:"gte=0,lte=65535,required_if=Runtime local"`
	Timeout string `yaml:"timeout" env:"SERVICE_TIMEOUT" envDefault:"5s" validate:"required"` // Ex: "500ms", "2s"
}

// StorageConf define onde a coleção de usuários é persistida.
type StorageConf struct {
	// URI aceita file://, memory://, s3://, dynamodb://, redis:// e postgres://.
	URI string `yaml:"uri" env:"STORE_URI" envDefault:"file://users.json" validate:"required"`
}

// ConflictConf escolhe a regra de duplicidade usada no insert.
type ConflictConf struct {
	Policy string `yaml:"policy" env:"CONFLICT_POLICY" envDefault:"name" validate:"required,oneof=name id_or_name expr"`
	// Expr é uma expressão CEL booleana sobre `existing` e `candidate`,
	// usada apenas com Policy=expr.
	Expr string `yaml:"expr" env:"CONFLICT_EXPR" validate:"required_if=Policy expr"`
}

// EventsConf habilita a publicação de user.created em uma fila SQS.
type EventsConf struct {
	QueueURL string `yaml:"queue_url" env:"EVENTS_QUEUE_URL" validate:"omitempty,url"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"LOG_ENABLED" envDefault:"true"`
	Level   string `yaml:"level" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `yaml:"format" env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool     `yaml:"enabled" env:"DD_ENABLED" envDefault:"false"`
	Addr      string   `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string   `yaml:"namespace" env:"DD_NAMESPACE" envDefault:"users."`
	Tags      []string `yaml:"tags" env:"DD_TAGS"`
}

// GetTimeout converte o timeout configurado, com fallback de 30s.
func (s ServiceConf) GetTimeout() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
