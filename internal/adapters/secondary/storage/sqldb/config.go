package sqldb

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	maxOpenConnections            = 25
	maxIdleConnections            = 5
	connMaxLifetime               = 5 * time.Minute
	connMaxIdleTime               = 1 * time.Minute
	defaultStatementTimeoutMillis = 60000
	defaultBusyTimeoutMillis      = 5000
	defaultSQLitePath             = "calorie_history.db"
)

// Dialect диалект SQL, под который собираются запросы и миграции
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) IsValid() bool {
	return d == DialectSQLite || d == DialectPostgres
}

type Config struct {
	Driver                 string `envconfig:"DRIVER" default:"sqlite"`
	Path                   string `envconfig:"SQLITE_PATH" default:"calorie_history.db"`
	BusyTimeoutMillis      int    `envconfig:"SQLITE_BUSY_TIMEOUT" default:"5000"`
	Host                   string `envconfig:"HOST"`
	Port                   string `envconfig:"PORT"`
	Username               string `envconfig:"USERNAME"`
	Password               string `envconfig:"PASSWORD"`
	Database               string `envconfig:"DATABASE"`
	SSLMode                string `envconfig:"SSL_MODE" default:"disable"`
	StatementTimeoutMillis int    `envconfig:"STATEMENT_TIMEOUT" default:"60000"`
}

// Dialect диалект по Driver; пустой драйвер - sqlite
func (c *Config) Dialect() Dialect {
	if c.Driver == "" {
		return DialectSQLite
	}
	return Dialect(c.Driver)
}

func (c *Config) toPgConnection() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		c.Host,
		c.Port,
		c.Username,
		c.Database,
		c.Password,
		c.SSLMode,
	)
}

func (c *Config) toSQLiteDSN() string {
	path := c.Path
	if path == "" {
		path = defaultSQLitePath
	}
	busy := c.BusyTimeoutMillis
	if busy <= 0 {
		busy = defaultBusyTimeoutMillis
	}
	// _time_format=sqlite: время пишется как "2006-01-02 15:04:05.999999999-07:00", а не time.String()
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_time_format=sqlite", path, busy)
}

// NewConnection открывает подключение к БД выбранного диалекта
func (c *Config) NewConnection() (*sqlx.DB, error) {
	switch c.Dialect() {
	case DialectSQLite:
		return c.newSQLiteConnection()
	case DialectPostgres:
		return c.newPostgresConnection()
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", c.Driver)
	}
}

// newSQLiteConnection одно соединение: sqlite сериализует запись, а пул
// только порождает SQLITE_BUSY
func (c *Config) newSQLiteConnection() (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", c.toSQLiteDSN())
	if err != nil {
		return nil, fmt.Errorf("connect sqlite error: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// newPostgresConnection подключение с настройками пула и statement_timeout
func (c *Config) newPostgresConnection() (*sqlx.DB, error) {
	connectionConfig, err := pgx.ParseConfig(c.toPgConnection())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	timeout := c.StatementTimeoutMillis
	if timeout <= 0 {
		timeout = defaultStatementTimeoutMillis
	}
	// параметр сессии, применяется к каждому соединению пула
	connectionConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", timeout)

	connectionString := stdlib.RegisterConnConfig(connectionConfig)
	db, err := sqlx.Connect("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("connect db error: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConnections)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetMaxIdleConns(maxIdleConnections)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db error: %w", err)
	}

	return db, nil
}
