package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/raywall/user-file-service/pkg/config"
	"github.com/raywall/user-file-service/pkg/events"
	"github.com/raywall/user-file-service/pkg/graphql"
	"github.com/raywall/user-file-service/pkg/logger"
	"github.com/raywall/user-file-service/pkg/observability"
	"github.com/raywall/user-file-service/pkg/service"
	"github.com/raywall/user-file-service/pkg/store"
	"github.com/raywall/user-file-service/pkg/transport"
	"github.com/raywall/user-file-service/pkg/user"
	"github.com/rs/zerolog/log"
)

var (
	configPath string
	// Variáveis injetáveis para mocking
	serverStarter = func(ctx context.Context, port int, h http.Handler) error {
		return transport.NewServer(port, h).ListenAndServe(ctx)
	}
	lambdaStarter = func(handler interface{}) { lambda.Start(handler) }
)

func init() {
	configPath = os.Getenv(config.EnvConfigFilePath)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configPath); err != nil {
		log.Fatal().Err(err).Msg("FATAL")
	}
}

// run contém a lógica principal testável
func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(ctx, cfgPath)
	if err != nil {
		return err
	}

	logger.Configure(cfg.Logging, cfg.Service.Name)

	provider, err := observability.SetupMetrics(cfg.Metrics)
	if err != nil {
		return err
	}
	if c, ok := provider.(io.Closer); ok {
		defer c.Close()
	}

	st, err := store.Open(ctx, cfg.Storage.URI)
	if err != nil {
		return fmt.Errorf("falha ao abrir store: %w", err)
	}

	// carga no boot para que um documento corrompido derrube o processo
	// em vez de falhar só na primeira requisição
	existing, err := st.Load(ctx)
	if err != nil {
		return fmt.Errorf("falha ao carregar coleção: %w", err)
	}

	checker, err := service.NewConflictChecker(user.ConflictPolicy(cfg.Conflict.Policy), cfg.Conflict.Expr)
	if err != nil {
		return fmt.Errorf("falha ao compilar política de conflito: %w", err)
	}

	opts := []service.Option{
		service.WithConflictChecker(checker),
		service.WithMetrics(provider),
	}
	if cfg.Events.QueueURL != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("falha ao carregar config AWS: %w", err)
		}
		pub := events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.Events.QueueURL,
			events.WithCorrelation(transport.CorrelationID))
		opts = append(opts, service.WithPublisher(pub))
	}

	svc := service.New(st, opts...)

	gql, err := graphql.NewEngine(svc)
	if err != nil {
		return fmt.Errorf("falha ao montar schema graphql: %w", err)
	}

	handler := transport.NewRouter(svc,
		transport.WithGraphQL(gql),
		transport.WithTimeout(cfg.Service.GetTimeout()),
	)

	log.Info().
		Str("store", cfg.Storage.URI).
		Str("policy", string(checker.Policy())).
		Int("records", len(existing)).
		Str("runtime", cfg.Service.Runtime).
		Msg("serviço inicializado")

	switch cfg.Service.Runtime {
	case "local":
		return serverStarter(ctx, cfg.Service.Port, handler)
	case "lambda":
		lambdaStarter(transport.NewLambdaHandler(handler).Handle)
		return nil
	default:
		return fmt.Errorf("runtime desconhecido: %s", cfg.Service.Runtime)
	}
}
