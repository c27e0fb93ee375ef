package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	_ "github.com/lib/pq"
)

// DB is the global database connection
var DB *sqlx.DB

var registerDriverOnce sync.Once

// registerSQLiteDriver installs a sqlite3 driver variant that carries a
// locale-aware collation, so ORDER BY on native-script columns sorts the way
// a dictionary would instead of by byte value. The locale comes from
// COLLATION_LOCALE (default "ja").
func registerSQLiteDriver() {
	registerDriverOnce.Do(func() {
		locale := os.Getenv("COLLATION_LOCALE")
		if locale == "" {
			locale = "ja"
		}
		collator := collate.New(language.Make(locale))

		// collate.Collator is not safe for concurrent use
		var mu sync.Mutex
		compare := func(a, b string) int {
			mu.Lock()
			defer mu.Unlock()
			return collator.CompareString(a, b)
		}

		sqlx.BindDriver("sqlite3_portal", sqlx.QUESTION)
		sql.Register("sqlite3_portal", &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterCollation("locale", compare)
			},
		})
	})
}

// Connect establishes a connection to the database. The engine is selected
// by DB_TYPE ("sqlite" by default, or "postgres" with DATABASE_URL).
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var db *sqlx.DB
	var err error

	switch dbType {
	case "postgres":
		db, err = sqlx.Connect("postgres", os.Getenv("DATABASE_URL"))
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		db.SetMaxOpenConns(10)
	default:
		registerSQLiteDriver()

		// Create data directory if it doesn't exist
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}

		dbPath := filepath.Join(dataDir, "langportal.db")
		db, err = sqlx.Connect("sqlite3_portal", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	// Initialize schema
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// Path returns the on-disk location of the SQLite database, or "" for other
// engines. Used by the maintenance job for backups.
func Path() string {
	if DB == nil || DB.DriverName() == "postgres" {
		return ""
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	return filepath.Join(dataDir, "langportal.db")
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS words (
			id %s,
			japanese TEXT NOT NULL,
			romaji TEXT NOT NULL,
			english TEXT NOT NULL,
			correct_count INTEGER NOT NULL DEFAULT 0 CHECK (correct_count >= 0),
			wrong_count INTEGER NOT NULL DEFAULT 0 CHECK (wrong_count >= 0),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, serial),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS groups (
			id %s,
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, serial),
		`
		CREATE TABLE IF NOT EXISTS words_groups (
			word_id INTEGER NOT NULL REFERENCES words(id),
			group_id INTEGER NOT NULL REFERENCES groups(id),
			PRIMARY KEY (word_id, group_id)
		)`,
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS study_activities (
			id %s,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			thumbnail_url TEXT NOT NULL DEFAULT '',
			launch_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, serial),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS study_sessions (
			id %s,
			group_id INTEGER NOT NULL REFERENCES groups(id),
			study_activity_id INTEGER NOT NULL REFERENCES study_activities(id),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, serial),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS word_review_items (
			id %s,
			study_session_id INTEGER NOT NULL REFERENCES study_sessions(id),
			word_id INTEGER NOT NULL REFERENCES words(id),
			correct BOOLEAN NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, serial),
		`CREATE INDEX IF NOT EXISTS idx_review_items_session ON word_review_items(study_session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_review_items_word ON word_review_items(word_id)`,
		`CREATE INDEX IF NOT EXISTS idx_words_groups_group ON words_groups(group_id)`,
		`CREATE INDEX IF NOT EXISTS idx_study_sessions_group ON study_sessions(group_id)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}
	return nil
}
