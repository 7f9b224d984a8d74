// Package db is the run catalog: a sqlite3 file recording every extraction
// run and the outcome of each of its tasks.
package db

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/spotsnap/spotsnap/data"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB represents our sqlite3 database file.
type DB struct{ *gorm.DB }

//go:embed schema.sql
var schema string

// Open returns a connection to a migrated sqlite3 database file on disk,
// creating the file and running migrations if necessary.
func Open(filename string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening db file at '%s': %w", filename, err)
	}

	db := &DB{gdb}

	if err := db.Exec(schema).Error; err != nil {
		return nil, fmt.Errorf("error migrating db at '%s': %w", filename, err)
	}

	return db, nil
}

func (db *DB) Close() error {
	pool, err := db.DB.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// StartRun inserts a new run row and fills in its assigned id.
func (db *DB) StartRun(run *data.Run) error {
	if err := db.Create(run).Error; err != nil {
		return fmt.Errorf("error inserting run: %w", err)
	}
	return nil
}

// FinishRun stamps the run's finish time.
func (db *DB) FinishRun(run *data.Run) error {
	now := time.Now()
	run.FinishedAt = &now
	if err := db.
		Table("runs").
		Where("id = ?", run.ID).
		Update("finished_at", run.FinishedAt).
		Error; err != nil {
		return fmt.Errorf("error finishing run %d: %w", run.ID, err)
	}
	return nil
}

// RecordTask inserts one task outcome for a run.
func (db *DB) RecordTask(task *data.TaskRun) error {
	if err := db.Create(task).Error; err != nil {
		return fmt.Errorf("error recording task '%s': %w", task.Name, err)
	}
	return nil
}

// RecentRuns returns up to n of the most recent runs, newest first, with
// their task outcomes attached.
func (db *DB) RecentRuns(n int) ([]data.Run, error) {
	var runs []data.Run
	if err := db.
		Preload("Tasks").
		Order("started_at desc").
		Limit(n).
		Find(&runs).
		Error; err != nil {
		return nil, fmt.Errorf("error listing runs: %w", err)
	}
	return runs, nil
}
