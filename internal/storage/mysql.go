package storage

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func NewDB(config Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true",
		config.User,
		config.Password,
		config.Host,
		config.Port,
		config.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	return db, nil
}

// migrations are ordered; each entry runs once per process start and every
// statement is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		collection VARCHAR(64)  NOT NULL,
		id         CHAR(36)     NOT NULL,
		doc        JSON         NOT NULL,
		created_at TIMESTAMP    DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP    DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (collection, id)
	)`,
	`CREATE INDEX idx_documents_collection ON documents (collection)`,
}

func RunMigrations(db *sql.DB) error {
	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			// Index may already exist; MySQL has no IF NOT EXISTS for indexes.
			if i > 0 {
				log.Printf("Migration %d skipped: %v", i, err)
				continue
			}
			return fmt.Errorf("error executing migration %d: %v", i, err)
		}
	}
	return nil
}
