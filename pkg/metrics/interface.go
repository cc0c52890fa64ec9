package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por outro backend sem alterar a lógica de negócio.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// Nomes das métricas emitidas pelo serviço de usuários.
const (
	UsersCreated   = "users.created"
	UsersConflict  = "users.conflict"
	UsersFind      = "users.find"
	UsersFindHits  = "users.find.results"
	StoreFailure   = "users.store.failure"
	CollectionSize = "users.collection.size"
	EventFailure   = "users.events.failure"
)

// Tag formata uma tag no padrão chave:valor do statsd.
func Tag(key, value string) string {
	return key + ":" + value
}
