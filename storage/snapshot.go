package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// BusinessSnapshot is a cached copy of the aggregate state the remote
// services returned for a user. It backs the dashboard when the device
// is offline and serves as a stale fallback for state lookups.
type BusinessSnapshot struct {
	UserID    string
	Products  json.RawMessage
	Invoices  json.RawMessage
	FetchedAt time.Time
}

type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(dataDir string) (*SnapshotStore, error) {
	dbPath := filepath.Join(dataDir, "snapshots.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SnapshotStore{db: db}

	if err := store.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (ss *SnapshotStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		user_id TEXT PRIMARY KEY,
		products TEXT NOT NULL,
		invoices TEXT NOT NULL,
		fetched_at DATETIME NOT NULL
	);
	`

	_, err := ss.db.Exec(schema)
	if err != nil {
		return err
	}

	// Migration: older databases stored only products
	if err := ss.migrateSchema(); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	return nil
}

// migrateSchema adds missing columns to existing databases
func (ss *SnapshotStore) migrateSchema() error {
	hasInvoices, err := ss.columnExists("snapshots", "invoices")
	if err != nil {
		return fmt.Errorf("failed to check for invoices column: %w", err)
	}

	if !hasInvoices {
		_, err := ss.db.Exec(`ALTER TABLE snapshots ADD COLUMN invoices TEXT DEFAULT '[]'`)
		if err != nil {
			return fmt.Errorf("failed to add invoices column: %w", err)
		}
	}

	return nil
}

// columnExists checks if a column exists in a table using PRAGMA table_info
func (ss *SnapshotStore) columnExists(tableName, columnName string) (bool, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", tableName)
	rows, err := ss.db.Query(query)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name string
		var dataType string
		var notNull int
		var defaultValue interface{}
		var pk int

		err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultValue, &pk)
		if err != nil {
			return false, err
		}

		if name == columnName {
			return true, nil
		}
	}

	return false, rows.Err()
}

func (ss *SnapshotStore) Save(snapshot BusinessSnapshot) error {
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now()
	}
	if snapshot.Products == nil {
		snapshot.Products = json.RawMessage("[]")
	}
	if snapshot.Invoices == nil {
		snapshot.Invoices = json.RawMessage("[]")
	}

	query := `
	INSERT OR REPLACE INTO snapshots (user_id, products, invoices, fetched_at)
	VALUES (?, ?, ?, ?)
	`

	_, err := ss.db.Exec(query,
		snapshot.UserID,
		string(snapshot.Products),
		string(snapshot.Invoices),
		snapshot.FetchedAt,
	)

	return err
}

func (ss *SnapshotStore) Load(userID string) (*BusinessSnapshot, error) {
	query := `
	SELECT user_id, products, invoices, fetched_at
	FROM snapshots
	WHERE user_id = ?
	`

	var snapshot BusinessSnapshot
	var products, invoices string
	err := ss.db.QueryRow(query, userID).Scan(
		&snapshot.UserID,
		&products,
		&invoices,
		&snapshot.FetchedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	snapshot.Products = json.RawMessage(products)
	snapshot.Invoices = json.RawMessage(invoices)

	return &snapshot, nil
}

// Age returns how old the cached snapshot for a user is. A negative
// duration means no snapshot exists.
func (ss *SnapshotStore) Age(userID string) (time.Duration, error) {
	snapshot, err := ss.Load(userID)
	if err != nil {
		return 0, err
	}
	if snapshot == nil {
		return -1, nil
	}
	return time.Since(snapshot.FetchedAt), nil
}

func (ss *SnapshotStore) Delete(userID string) error {
	query := `DELETE FROM snapshots WHERE user_id = ?`
	_, err := ss.db.Exec(query, userID)
	return err
}

func (ss *SnapshotStore) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}
