// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store archives benchmark measurements in a SQL database so
// that reports can be regenerated from an earlier run.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdp-bench/speedstat/benchcsv"
)

// DB is an archive of measurement runs. It's safe for concurrent use
// by multiple goroutines.
type DB struct {
	sql    *sql.DB // underlying database connection
	driver string

	// prepared statements
	insertRun *sql.Stmt
}

// Drivers lists the supported database drivers.
var Drivers = []string{"sqlite3", "mysql"}

// ParseSource splits a "driver:dsn" data source, as in
// "sqlite3:runs.db" or "mysql:user@tcp(host)/bench".
func ParseSource(src string) (driver, dsn string, err error) {
	driver, dsn, ok := strings.Cut(src, ":")
	if !ok || dsn == "" {
		return "", "", fmt.Errorf("bad data source %q: want driver:dsn", src)
	}
	for _, d := range Drivers {
		if d == driver {
			return driver, dsn, nil
		}
	}
	return "", "", fmt.Errorf("bad data source %q: unknown driver %q", src, driver)
}

// OpenSQL opens an archive backed by a SQL database and creates any
// missing tables. The parameters are the same as the parameters for
// sql.Open. Only mysql and sqlite3 are supported.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db, driver: driverName}
	if err := d.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	d.insertRun, err = db.Prepare("INSERT INTO Runs(Created) VALUES (?)")
	if err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = map[string]func(*sql.DB) error{
	// Every SQLite connection to ":memory:" is a separate
	// database, so keep to one.
	"sqlite3": func(db *sql.DB) error {
		db.SetMaxOpenConns(1)
		_, err := db.Exec("PRAGMA foreign_keys = ON")
		return err
	},
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Created VARCHAR(64)
);
CREATE TABLE IF NOT EXISTS RunLabels (
	RunID BIGINT UNSIGNED,
	Name VARCHAR(255),
	Value VARCHAR(8192),
	PRIMARY KEY (RunID, Name),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Measurements (
	RunID BIGINT UNSIGNED,
	Seq BIGINT UNSIGNED,
	Impl VARCHAR(255),
	File VARCHAR(1024),
	N BIGINT,
	A BIGINT,
	Time DOUBLE,
	RecursionCalls BIGINT,
	PRIMARY KEY (RunID, Seq),
{{if not .sqlite3}}
	Index (Impl(100), File(100)),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS MeasurementsImplFile ON Measurements(Impl, File);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql.
func (db *DB) createTables() error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{db.driver: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// now is the clock used to stamp new runs. Tests replace it.
var now = time.Now

// A Run is a set of measurements archived together.
type Run struct {
	ID      int64
	Created time.Time
	Labels  map[string]string

	// Count is the number of archived measurements. It is only
	// set by Runs.
	Count int

	// next is the sequence number of the next measurement.
	next int64
	db   *DB
}

// NewRun starts a new run with the given labels, such as the input
// files it was read from.
func (db *DB) NewRun(ctx context.Context, labels map[string]string) (r *Run, err error) {
	created := now().UTC().Truncate(time.Second)
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, created.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var args []interface{}
	for _, k := range sortedKeys(labels) {
		args = append(args, id, k, labels[k])
	}
	if len(args) > 0 {
		query := "INSERT INTO RunLabels(RunID, Name, Value) VALUES " + placeholders(3, len(labels))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}
	return &Run{ID: id, Created: created, Labels: labels, db: db}, nil
}

// insertBatch bounds the number of rows in one INSERT statement.
const insertBatch = 100

// Insert appends ms to run r in a single transaction.
func (r *Run) Insert(ctx context.Context, ms []benchcsv.Measurement) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	seq := r.next
	for len(ms) > 0 {
		batch := ms
		if len(batch) > insertBatch {
			batch = batch[:insertBatch]
		}
		ms = ms[len(batch):]

		args := make([]interface{}, 0, 8*len(batch))
		for _, m := range batch {
			args = append(args, r.ID, seq, m.Impl, m.File, m.N, m.A, m.Time, m.RecursionCalls)
			seq++
		}
		query := "INSERT INTO Measurements(RunID, Seq, Impl, File, N, A, Time, RecursionCalls) VALUES " + placeholders(8, len(batch))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert into run %d: %w", r.ID, err)
		}
	}
	r.next = seq
	return nil
}

// Measurements returns the measurements of run runID in the order they
// were inserted.
func (db *DB) Measurements(ctx context.Context, runID int64) ([]benchcsv.Measurement, error) {
	var exists int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs WHERE RunID = ?", runID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %d not found", runID)
	}

	rows, err := db.sql.QueryContext(ctx, "SELECT Impl, File, N, A, Time, RecursionCalls FROM Measurements WHERE RunID = ? ORDER BY Seq", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ms []benchcsv.Measurement
	for rows.Next() {
		var m benchcsv.Measurement
		if err := rows.Scan(&m.Impl, &m.File, &m.N, &m.A, &m.Time, &m.RecursionCalls); err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, rows.Err()
}

// Runs lists the archived runs, oldest first.
func (db *DB) Runs(ctx context.Context) ([]*Run, error) {
	rows, err := db.sql.QueryContext(ctx, `
SELECT Runs.RunID, Runs.Created, COUNT(Measurements.Seq)
FROM Runs LEFT JOIN Measurements ON Runs.RunID = Measurements.RunID
GROUP BY Runs.RunID, Runs.Created
ORDER BY Runs.RunID`)
	if err != nil {
		return nil, err
	}
	var runs []*Run
	byID := make(map[int64]*Run)
	for rows.Next() {
		r := &Run{Labels: make(map[string]string), db: db}
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Count); err != nil {
			rows.Close()
			return nil, err
		}
		if r.Created, err = time.Parse(time.RFC3339, created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("run %d: bad creation time %q", r.ID, created)
		}
		r.next = int64(r.Count)
		runs = append(runs, r)
		byID[r.ID] = r
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.sql.QueryContext(ctx, "SELECT RunID, Name, Value FROM RunLabels")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var name, value string
		if err := rows.Scan(&id, &name, &value); err != nil {
			return nil, err
		}
		if r := byID[id]; r != nil {
			r.Labels[name] = value
		}
	}
	return runs, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}

func placeholders(cols, rows int) string {
	row := "(" + strings.TrimSuffix(strings.Repeat("?, ", cols), ", ") + ")"
	return strings.TrimSuffix(strings.Repeat(row+", ", rows), ", ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
