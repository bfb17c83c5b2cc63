package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// migration queries
	createRecordsTableSQL = `
  CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  timestamp TEXT NOT NULL,
  date TEXT NOT NULL,
  entry_time TEXT NOT NULL DEFAULT '',
  break_start_time TEXT NOT NULL DEFAULT '',
  break_end_time TEXT NOT NULL DEFAULT '',
  exit_time TEXT NOT NULL DEFAULT '',
  type TEXT NOT NULL DEFAULT 'automatic',
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
  )`

	createRecordsDateIndexSQL = `CREATE INDEX IF NOT EXISTS records_date ON records (date)`

	// record queries
	findRecordByDateSQL = `SELECT id FROM records WHERE date = ? ORDER BY id LIMIT 1`
	insertRecordSQL     = `
  INSERT INTO records (timestamp, date, entry_time, break_start_time, break_end_time, exit_time, type)
  VALUES (?, ?, ?, ?, ?, ?, ?)`
	updateRecordSQL = `
  UPDATE records
  SET entry_time = ?, break_start_time = ?, break_end_time = ?, exit_time = ?, type = ?, updated_at = ?
  WHERE id = ?`
	listRecordsSQL = `
  SELECT timestamp, date, entry_time, break_start_time, break_end_time, exit_time, type
  FROM records
  ORDER BY id`
	listRecordsByMonthSQL = `
  SELECT timestamp, date, entry_time, break_start_time, break_end_time, exit_time, type
  FROM records
  WHERE substr(date, 4) = ?
  ORDER BY id`
)

// Repo is the storage behind the store service, one row per record.
type Repo struct {
	db *sql.DB
}

func NewRepo(dbPath string) (*Repo, error) {
	// ensure directory exists
	err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// open database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// verify connection with database
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &Repo{db: db}

	// run migrations
	if err := repo.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}

// runs migrations on initial start
func (r *Repo) runMigrations() error {
	tables := []string{
		createRecordsTableSQL,
		createRecordsDateIndexSQL,
	}

	for _, tableSQL := range tables {
		if _, err := r.db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// SaveRecord updates the first row with the same date in place, or appends
// a new row. The timestamp of an existing row is kept.
func (r *Repo) SaveRecord(rec RemoteRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(findRecordByDateSQL, rec.Date).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.Exec(insertRecordSQL, string(rec.Timestamp), rec.Date,
			rec.EntryTime, rec.BreakStartTime, rec.BreakEndTime, rec.ExitTime, rec.Type)
		if err != nil {
			return fmt.Errorf("error inserting record: %w", err)
		}
	case err != nil:
		return fmt.Errorf("error finding record for %s: %w", rec.Date, err)
	default:
		_, err = tx.Exec(updateRecordSQL, rec.EntryTime, rec.BreakStartTime, rec.BreakEndTime,
			rec.ExitTime, rec.Type, time.Now(), id)
		if err != nil {
			return fmt.Errorf("error updating record: %w", err)
		}
	}

	return tx.Commit()
}

// ListRecords returns rows in insertion order. A non-empty month ("MM/YYYY")
// keeps only the dates of that month.
func (r *Repo) ListRecords(month string) ([]RemoteRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if month == "" {
		rows, err = r.db.Query(listRecordsSQL)
	} else {
		rows, err = r.db.Query(listRecordsByMonthSQL, month)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []RemoteRecord{}
	for rows.Next() {
		var (
			rec       RemoteRecord
			timestamp string
		)
		if err := rows.Scan(&timestamp, &rec.Date, &rec.EntryTime, &rec.BreakStartTime,
			&rec.BreakEndTime, &rec.ExitTime, &rec.Type); err != nil {
			return nil, err
		}
		rec.Timestamp = Timestamp(timestamp)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
