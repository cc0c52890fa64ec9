package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/raywall/user-file-service/pkg/user"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TypeUserCreated é o tipo do evento emitido após um insert persistido.
const TypeUserCreated = "user.created"

// SQSClient define a interface necessária para o publisher (permite Mocking)
type SQSClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Event é o corpo JSON publicado na fila.
type Event struct {
	Type          string      `json:"type"`
	OccurredAt    time.Time   `json:"occurred_at"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	User          user.Record `json:"user"`
}

// SQSPublisher notifica consumidores externos sobre novos usuários.
type SQSPublisher struct {
	client   SQSClient
	queueURL string
	// correlation extrai o id de rastreio do contexto, quando houver.
	correlation func(ctx context.Context) string
	now         func() time.Time
	logger      zerolog.Logger
}

type Option func(*SQSPublisher)

// WithCorrelation define como ler o correlation id do contexto.
func WithCorrelation(fn func(ctx context.Context) string) Option {
	return func(p *SQSPublisher) {
		p.correlation = fn
	}
}

func NewSQSPublisher(client SQSClient, queueURL string, opts ...Option) *SQSPublisher {
	p := &SQSPublisher{
		client:      client,
		queueURL:    queueURL,
		correlation: func(context.Context) string { return "" },
		now:         time.Now,
		logger:      log.With().Str("component", "sqs_publisher").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// UserCreated publica um evento user.created para r.
func (p *SQSPublisher) UserCreated(ctx context.Context, r user.Record) error {
	evt := Event{
		Type:          TypeUserCreated,
		OccurredAt:    p.now().UTC(),
		CorrelationID: p.correlation(ctx),
		User:          r,
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("falha ao serializar evento: %w", err)
	}

	out, err := p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"type": {DataType: aws.String("String"), StringValue: aws.String(TypeUserCreated)},
		},
	})
	if err != nil {
		return fmt.Errorf("falha ao publicar evento no SQS: %w", err)
	}

	p.logger.Debug().Str("message_id", aws.ToString(out.MessageId)).Int("user_id", r.ID).Msg("evento publicado")
	return nil
}
