package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/raywall/user-file-service/pkg/user"
)

// PostgresStore guarda o documento como texto em uma linha de tabela,
// identificada por uma chave. Cada Save faz upsert da linha inteira.
type PostgresStore struct {
	db    *sql.DB
	table string
	key   string
}

func NewPostgresStore(db *sql.DB, table, key string) *PostgresStore {
	return &PostgresStore{db: db, table: table, key: key}
}

func (s *PostgresStore) source() string {
	return fmt.Sprintf("postgres table %s key %s", s.table, s.key)
}

func (s *PostgresStore) createTableSQL() string {
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (doc_key TEXT PRIMARY KEY, doc TEXT NOT NULL)",
		pq.QuoteIdentifier(s.table),
	)
}

func (s *PostgresStore) selectSQL() string {
	return fmt.Sprintf("SELECT doc FROM %s WHERE doc_key = $1", pq.QuoteIdentifier(s.table))
}

func (s *PostgresStore) upsertSQL() string {
	return fmt.Sprintf(
		"INSERT INTO %s (doc_key, doc) VALUES ($1, $2) ON CONFLICT (doc_key) DO UPDATE SET doc = EXCLUDED.doc",
		pq.QuoteIdentifier(s.table),
	)
}

// EnsureSchema cria a tabela de documentos caso ela não exista.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.createTableSQL()); err != nil {
		return fmt.Errorf("falha ao criar tabela %s: %w", s.table, err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (user.Collection, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, s.selectSQL(), s.key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return user.Collection{}, nil
	}
	if err != nil {
		return nil, &user.IOError{Op: "read", Source: s.source(), Err: err}
	}
	return decode([]byte(doc), s.source())
}

func (s *PostgresStore) Save(ctx context.Context, c user.Collection) error {
	data, err := encode(c)
	if err != nil {
		return &user.IOError{Op: "write", Source: s.source(), Err: err}
	}
	if _, err := s.db.ExecContext(ctx, s.upsertSQL(), s.key, string(data)); err != nil {
		return &user.IOError{Op: "write", Source: s.source(), Err: err}
	}
	return nil
}
