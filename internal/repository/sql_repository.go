package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/osa911/portfolio-contact/internal/models"
	_ "modernc.org/sqlite"
)

// Dialect captures the differences between the supported SQL engines
type Dialect struct {
	Driver string
	schema string
	// numbered placeholders ($1) instead of ?
	numbered bool
}

var (
	DialectPostgres = Dialect{
		Driver:   "postgres",
		numbered: true,
		schema: `CREATE TABLE IF NOT EXISTS contact_messages (
			seq        BIGSERIAL PRIMARY KEY,
			id         TEXT NOT NULL UNIQUE,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			subject    TEXT NOT NULL,
			message    TEXT NOT NULL,
			delivery   TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}

	DialectSQLite = Dialect{
		Driver: "sqlite",
		schema: `CREATE TABLE IF NOT EXISTS contact_messages (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         TEXT NOT NULL UNIQUE,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			subject    TEXT NOT NULL,
			message    TEXT NOT NULL,
			delivery   TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}
)

// bind rewrites ? placeholders into $n for engines that need it
func (d Dialect) bind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLMessageRepository stores messages in a contact_messages table
type SQLMessageRepository struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLMessageRepository opens the database and makes sure the table exists
func OpenSQLMessageRepository(ctx context.Context, dialect Dialect, dsn string) (*SQLMessageRepository, error) {
	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect.Driver, err)
	}

	if dialect.Driver == DialectSQLite.Driver {
		// One connection keeps sqlite writes serialized
		db.SetMaxOpenConns(1)
	}

	repo := NewSQLMessageRepository(db, dialect)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewSQLMessageRepository wraps an existing handle
func NewSQLMessageRepository(db *sql.DB, dialect Dialect) *SQLMessageRepository {
	return &SQLMessageRepository{db: db, dialect: dialect}
}

var _ MessageRepository = (*SQLMessageRepository)(nil)

// EnsureSchema creates the contact_messages table when missing
func (r *SQLMessageRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.schema); err != nil {
		return storeErr("schema", err)
	}
	return nil
}

// Close releases the database handle
func (r *SQLMessageRepository) Close() error {
	return r.db.Close()
}

// Ping checks the database connection
func (r *SQLMessageRepository) Ping(ctx context.Context) error {
	return storeErr("ping", r.db.PingContext(ctx))
}

// Append inserts a new row
func (r *SQLMessageRepository) Append(ctx context.Context, msg *models.StoredMessage) error {
	query := r.dialect.bind(`INSERT INTO contact_messages (id, name, email, subject, message, delivery, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, string(msg.Delivery),
		msg.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return storeErr("append", err)
}

// List returns all rows in insertion order
func (r *SQLMessageRepository) List(ctx context.Context) ([]*models.StoredMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, subject, message, delivery, created_at FROM contact_messages ORDER BY seq ASC`)
	if err != nil {
		return nil, storeErr("list", err)
	}
	defer rows.Close()

	messages := []*models.StoredMessage{}
	for rows.Next() {
		var (
			m        models.StoredMessage
			delivery string
			created  any
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &delivery, &created); err != nil {
			return nil, storeErr("list", err)
		}
		m.Delivery = models.DeliveryStatus(delivery)
		if m.CreatedAt, err = parseTimestamp(created); err != nil {
			return nil, storeErr("list", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", err)
	}
	return messages, nil
}

// parseTimestamp accepts native time values and the text form used by sqlite
func parseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	default:
		return time.Time{}, fmt.Errorf("unsupported created_at type %T", v)
	}
}
