package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/raywall/user-file-service/pkg/metrics"
	"github.com/raywall/user-file-service/pkg/store"
	"github.com/raywall/user-file-service/pkg/user"
	"github.com/rs/zerolog/log"
)

// UserService centraliza as regras de negócio e a validação dos dados.
type UserService struct {
	mu      sync.Mutex
	store   store.Store
	checker ConflictChecker
	valid   *validator.Validate
	metrics metrics.Provider
	hooks   []BeforeInsertHook
	events  EventPublisher
}

// EventPublisher recebe os registros criados, após a gravação.
type EventPublisher interface {
	UserCreated(ctx context.Context, r user.Record) error
}

// BeforeInsertHook roda após a validação de schema e antes da checagem de
// conflito. Pode normalizar o candidato ou rejeitá-lo retornando erro.
type BeforeInsertHook func(ctx context.Context, c *user.Candidate) error

type Option func(*UserService)

// WithPublisher notifica p a cada insert persistido. Falhas de publicação
// são logadas e não desfazem o insert.
func WithPublisher(p EventPublisher) Option {
	return func(s *UserService) {
		s.events = p
	}
}

// WithBeforeInsert registra hooks executados na ordem de registro.
func WithBeforeInsert(hooks ...BeforeInsertHook) Option {
	return func(s *UserService) {
		s.hooks = append(s.hooks, hooks...)
	}
}

// WithConflictChecker troca a política padrão (nome).
func WithConflictChecker(c ConflictChecker) Option {
	return func(s *UserService) {
		if c != nil {
			s.checker = c
		}
	}
}

func WithMetrics(p metrics.Provider) Option {
	return func(s *UserService) {
		if p != nil {
			s.metrics = p
		}
	}
}

// New cria o serviço sobre st. Sem opções, usa a política de nome e não
// emite métricas.
func New(st store.Store, opts ...Option) *UserService {
	v := validator.New()
	// mensagens de validação usam os nomes do JSON (nome, sobrenome)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	s := &UserService{
		store:   st,
		checker: nameChecker{},
		valid:   v,
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy retorna a política de conflito ativa.
func (s *UserService) Policy() user.ConflictPolicy {
	return s.checker.Policy()
}

// Find retorna os registros que casam com todos os campos informados em f.
// O resultado é vazio, nunca nil, quando nada casa.
func (s *UserService) Find(ctx context.Context, f user.Filter) (user.Collection, error) {
	s.mu.Lock()
	existing, err := s.store.Load(ctx)
	s.mu.Unlock()
	if err != nil {
		s.countFailure("load")
		return nil, err
	}

	found := existing.Filter(f)
	_ = s.metrics.Count(metrics.UsersFind, 1, nil)
	_ = s.metrics.Histogram(metrics.UsersFindHits, float64(len(found)), nil)
	return found, nil
}

// Insert cria um novo registro se nenhum existente conflitar com c.
// Em conflito retorna *user.ConflictError sem tocar no store. O id do novo
// registro é sempre gerado pelo serviço.
func (s *UserService) Insert(ctx context.Context, c user.Candidate) (user.Record, error) {
	if err := s.validate(ctx, c); err != nil {
		return user.Record{}, err
	}
	if len(s.hooks) > 0 {
		for _, hook := range s.hooks {
			if err := hook(ctx, &c); err != nil {
				return user.Record{}, err
			}
		}
		// hooks podem ter alterado o candidato
		if err := s.validate(ctx, c); err != nil {
			return user.Record{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.Load(ctx)
	if err != nil {
		s.countFailure("load")
		return user.Record{}, err
	}

	policyTag := []string{metrics.Tag("policy", string(s.checker.Policy()))}
	for _, r := range existing {
		hit, err := s.checker.Conflicts(r, c)
		if err != nil {
			return user.Record{}, fmt.Errorf("falha ao avaliar conflito: %w", err)
		}
		if hit {
			_ = s.metrics.Count(metrics.UsersConflict, 1, policyTag)
			log.Ctx(ctx).Info().
				Int("existing_id", r.ID).
				Str("policy", string(s.checker.Policy())).
				Msg("insert rejeitado por conflito")
			return user.Record{}, &user.ConflictError{Policy: s.checker.Policy()}
		}
	}

	id, err := existing.NextID()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Int("records", len(existing)).Msg("sem id disponível")
		return user.Record{}, err
	}

	rec := user.Record{
		ID:      id,
		Name:    c.Name,
		Surname: c.Surname,
	}
	updated := append(existing, rec)

	// nunca gravar um documento que o próximo Load rejeitaria
	if err := updated.Validate(); err != nil {
		return user.Record{}, fmt.Errorf("insert geraria coleção inválida: %w", err)
	}

	if err := s.store.Save(ctx, updated); err != nil {
		s.countFailure("save")
		return user.Record{}, err
	}

	_ = s.metrics.Count(metrics.UsersCreated, 1, policyTag)
	_ = s.metrics.Gauge(metrics.CollectionSize, float64(len(updated)), nil)
	log.Ctx(ctx).Info().Int("id", rec.ID).Msg("usuário adicionado")

	if s.events != nil {
		if err := s.events.UserCreated(ctx, rec); err != nil {
			_ = s.metrics.Count(metrics.EventFailure, 1, nil)
			log.Ctx(ctx).Warn().Err(err).Int("id", rec.ID).Msg("falha ao publicar evento")
		}
	}

	return rec, nil
}

func (s *UserService) validate(ctx context.Context, c user.Candidate) error {
	var violations []string

	if err := s.valid.StructCtx(ctx, c); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		for _, e := range validationErrors {
			violations = append(violations, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Field(), e.Tag()))
		}
	}

	// o id do cliente só é lido pelas políticas id_or_name e expr; na
	// política de nome ele é ignorado
	if c.ID != nil && s.checker.Policy() != user.PolicyName {
		if err := s.valid.VarCtx(ctx, *c.ID, "gt=0"); err != nil {
			violations = append(violations, "Campo 'id' falhou na regra 'gt'")
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return &user.ValidationError{Violations: violations}
}

func (s *UserService) countFailure(op string) {
	_ = s.metrics.Count(metrics.StoreFailure, 1, []string{metrics.Tag("op", op)})
}

type noopMetrics struct{}

func (noopMetrics) Count(string, float64, []string) error     { return nil }
func (noopMetrics) Gauge(string, float64, []string) error     { return nil }
func (noopMetrics) Histogram(string, float64, []string) error { return nil }
