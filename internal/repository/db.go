package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/invoice-tracker/constants"
)

type Config struct {
	Driver           string // "postgres" or "sqlite"
	DSN              string
	User             string // overrides the DSN user when set
	Password         string // overrides the DSN password when set
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// DB bundles the database/sql handle used by repositories with the SQL dialect it speaks.
// Pool is set only for postgres.
type DB struct {
	SQL     *sql.DB
	Dialect string
	Pool    *pgxpool.Pool
}

// Open creates the connection pool for cfg.Driver and returns it wrapped as *sql.DB.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Driver {
	case "", "postgres":
		return openPostgres(ctx, cfg, logger)
	case "sqlite":
		return openSQLite(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database dsn", "error", err)
		return nil, err
	}
	if cfg.User != "" {
		pc.ConnConfig.User = cfg.User
	}
	if cfg.Password != "" {
		pc.ConnConfig.Password = cfg.Password
	}
	logger.Info("connecting to database", "driver", "postgres", "host", pc.ConnConfig.Host, "database", pc.ConnConfig.Database, "user", pc.ConnConfig.User)

	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "invoice-tracker"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", cfg.StatementTimeout.Milliseconds())
	}

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	// database/sql view over the pool; Conn() checks a pooled connection out.
	db := stdlib.OpenDBFromPool(pool)

	logger.Info("successfully connected to database")
	return &DB{SQL: db, Dialect: dialect.Postgres, Pool: pool}, nil
}

func openSQLite(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database", "driver", "sqlite", "path", cfg.DSN)
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, err
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}
	if cfg.MinConns > 0 {
		db.SetMaxIdleConns(int(cfg.MinConns))
	}
	if cfg.MaxConnLifetime > 0 {
		db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	}
	if cfg.MaxConnIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	logger.Info("successfully connected to database")
	return &DB{SQL: db, Dialect: dialect.SQLite}, nil
}

// Close closes the database connections gracefully
func Close(db *DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("closing database connections")
	if db.SQL != nil {
		if err := db.SQL.Close(); err != nil {
			logger.Error("failed to close sql db", "error", err)
		}
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
	logger.Info("database connections closed")
}

// HealthCheck pings the database within timeout.
func HealthCheck(ctx context.Context, db *DB, timeout time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.SQL.PingContext(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		return err
	}
	logger.Debug("database ping successful")
	return nil
}

// EnsureSchema creates the invoice table when it does not exist yet.
// Production schemas are managed outside the service; this is for local and test databases.
func EnsureSchema(ctx context.Context, db *DB, table string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	table = TableName(db.Dialect, table)
	query, args := createTableQuery(db.Dialect, table)
	if _, err := db.SQL.ExecContext(ctx, query, args...); err != nil {
		logger.Error("failed to ensure schema", "table", table, "error", err)
		return fmt.Errorf("create table %s: %w", table, err)
	}
	logger.Info("schema ready", "table", table)
	return nil
}

// TableName returns the identifier the repository quotes for table. Postgres folds unquoted
// names to lower case, so a table created as INVOICE is found as "invoice".
func TableName(d, table string) string {
	if table == "" {
		table = constants.InvoiceTable
	}
	if d == dialect.Postgres {
		return strings.ToLower(table)
	}
	return table
}

func createTableQuery(d, table string) (string, []any) {
	b := entsql.Dialect(d)
	var sb entsql.Builder
	sb.SetDialect(d)
	sb.WriteString("CREATE TABLE IF NOT EXISTS ").Ident(table).WriteString(" (")
	for i, c := range constants.InvoiceColumns {
		if i > 0 {
			sb.Comma()
		}
		sb.Join(b.Column(c).Type("TEXT"))
	}
	sb.WriteByte(')')
	return sb.Query()
}
