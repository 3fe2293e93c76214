package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements Provider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// InitSchema creates the configuration tables if they do not exist
func (s *SQLiteProvider) InitSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS anchors (
			temperature REAL PRIMARY KEY,
			days        REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS dataset (
			id                   INTEGER PRIMARY KEY CHECK (id = 1),
			instant_freeze_below REAL,
			no_freeze_above      REAL
		)`,
		`CREATE TABLE IF NOT EXISTS http (
			id          INTEGER PRIMARY KEY CHECK (id = 1),
			listen_addr TEXT,
			port        INTEGER,
			tls_cert    TEXT,
			tls_key     TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS display (
			id           INTEGER PRIMARY KEY CHECK (id = 1),
			input_min    REAL,
			input_max    REAL,
			input_step   REAL,
			sweep_min    REAL,
			sweep_max    REAL,
			sweep_points INTEGER
		)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// LoadConfig loads the complete configuration from the SQLite database
func (s *SQLiteProvider) LoadConfig() (*Data, error) {
	cfg := &Data{}

	dataset, err := s.GetDataset()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset config: %w", err)
	}
	cfg.Dataset = *dataset

	httpCfg, err := s.GetHTTP()
	if err != nil {
		return nil, fmt.Errorf("failed to load http config: %w", err)
	}
	cfg.HTTP = *httpCfg

	display, err := s.GetDisplay()
	if err != nil {
		return nil, fmt.Errorf("failed to load display config: %w", err)
	}
	cfg.Display = *display

	return cfg, nil
}

// GetDataset returns the anchor points and thresholds from the database
func (s *SQLiteProvider) GetDataset() (*DatasetData, error) {
	rows, err := s.db.Query(`SELECT temperature, days FROM anchors ORDER BY temperature`)
	if err != nil {
		return nil, fmt.Errorf("failed to query anchors: %w", err)
	}
	defer rows.Close()

	ds := &DatasetData{}
	for rows.Next() {
		var a AnchorData
		if err := rows.Scan(&a.Temperature, &a.Days); err != nil {
			return nil, fmt.Errorf("failed to scan anchor: %w", err)
		}
		ds.Anchors = append(ds.Anchors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating anchors: %w", err)
	}

	var lower, upper sql.NullFloat64
	err = s.db.QueryRow(`SELECT instant_freeze_below, no_freeze_above FROM dataset WHERE id = 1`).
		Scan(&lower, &upper)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to query thresholds: %w", err)
	}
	if lower.Valid {
		ds.InstantFreezeBelow = &lower.Float64
	}
	if upper.Valid {
		ds.NoFreezeAbove = &upper.Float64
	}

	return ds, nil
}

// GetHTTP returns the HTTP server configuration from the database
func (s *SQLiteProvider) GetHTTP() (*HTTPData, error) {
	h := &HTTPData{}
	var listenAddr, cert, key sql.NullString
	var port sql.NullInt64

	err := s.db.QueryRow(`SELECT listen_addr, port, tls_cert, tls_key FROM http WHERE id = 1`).
		Scan(&listenAddr, &port, &cert, &key)
	if err == sql.ErrNoRows {
		return h, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query http config: %w", err)
	}

	h.ListenAddr = listenAddr.String
	h.Port = int(port.Int64)
	h.TLSCertPath = cert.String
	h.TLSKeyPath = key.String
	return h, nil
}

// GetDisplay returns the display configuration from the database
func (s *SQLiteProvider) GetDisplay() (*DisplayData, error) {
	d := &DisplayData{}
	var inputMin, inputMax, inputStep, sweepMin, sweepMax sql.NullFloat64
	var sweepPoints sql.NullInt64

	err := s.db.QueryRow(
		`SELECT input_min, input_max, input_step, sweep_min, sweep_max, sweep_points
		 FROM display WHERE id = 1`).
		Scan(&inputMin, &inputMax, &inputStep, &sweepMin, &sweepMax, &sweepPoints)
	if err == sql.ErrNoRows {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query display config: %w", err)
	}

	d.InputMin = inputMin.Float64
	d.InputMax = inputMax.Float64
	d.InputStep = inputStep.Float64
	d.SweepMin = sweepMin.Float64
	d.SweepMax = sweepMax.Float64
	d.SweepPoints = int(sweepPoints.Int64)
	return d, nil
}

// SaveConfig writes a complete configuration to the database, replacing
// any existing configuration. Used by the config-convert tool.
func (s *SQLiteProvider) SaveConfig(cfg *Data) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"anchors", "dataset", "http", "display"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, a := range cfg.Dataset.Anchors {
		if _, err := tx.Exec(
			`INSERT INTO anchors (temperature, days) VALUES (?, ?)`,
			a.Temperature, a.Days); err != nil {
			return fmt.Errorf("failed to insert anchor: %w", err)
		}
	}

	var lower, upper interface{}
	if cfg.Dataset.InstantFreezeBelow != nil {
		lower = *cfg.Dataset.InstantFreezeBelow
	}
	if cfg.Dataset.NoFreezeAbove != nil {
		upper = *cfg.Dataset.NoFreezeAbove
	}
	if _, err := tx.Exec(
		`INSERT INTO dataset (id, instant_freeze_below, no_freeze_above) VALUES (1, ?, ?)`,
		lower, upper); err != nil {
		return fmt.Errorf("failed to insert thresholds: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO http (id, listen_addr, port, tls_cert, tls_key) VALUES (1, ?, ?, ?, ?)`,
		cfg.HTTP.ListenAddr, cfg.HTTP.Port, cfg.HTTP.TLSCertPath, cfg.HTTP.TLSKeyPath); err != nil {
		return fmt.Errorf("failed to insert http config: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO display (id, input_min, input_max, input_step, sweep_min, sweep_max, sweep_points)
		 VALUES (1, ?, ?, ?, ?, ?, ?)`,
		cfg.Display.InputMin, cfg.Display.InputMax, cfg.Display.InputStep,
		cfg.Display.SweepMin, cfg.Display.SweepMax, cfg.Display.SweepPoints); err != nil {
		return fmt.Errorf("failed to insert display config: %w", err)
	}

	return tx.Commit()
}

// IsReadOnly returns false; SQLite configurations can be written
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
