package data

import "time"

// Run is one catalog row per extraction run.
type Run struct {
	ID         uint `gorm:"primarykey"`
	StartedAt  time.Time
	FinishedAt *time.Time
	UserID     string
	UserName   string
	Tasks      []TaskRun `gorm:"foreignKey:RunID"`
}

// TaskRun is the recorded outcome of one task within a run.
type TaskRun struct {
	ID      uint `gorm:"primarykey"`
	RunID   uint
	Name    string
	Status  string
	Records int
	File    string
	Error   string
}
