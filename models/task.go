package models

import (
	"database/sql/driver"
	"time"
)

// Task status. A task tracks one async stage execution.
const (
	// pending: task has been enqueued, waiting for a worker slot
	TaskStatusPending = "pending"
	// processing: a worker is executing the stage
	TaskStatusProcessing = "processing"
	TaskStatusSuccess    = "finished"
	TaskStatusFailed     = "failed"
	// cancelled: the task was abandoned before completion
	TaskStatusCancelled = "cancelled"
)

type Task struct {
	ID         string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProjectID  string     `gorm:"index;type:varchar(64)" json:"projectId"`
	OwnerID    string     `gorm:"type:varchar(64)" json:"ownerId"`
	Stage      Stage      `gorm:"type:varchar(32)" json:"stage"`
	Status     string     `gorm:"type:varchar(32)" json:"status"`
	Progress   int        `json:"progress"`
	Message    string     `json:"message"`
	Input      StageInput `gorm:"type:json" json:"input"`
	Error      string     `json:"error"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (Task) TableName() string { return "task" }

// driver.Valuer: Go struct -> JSON string on write.
func (in StageInput) Value() (driver.Value, error) {
	return jsonValue(in)
}

// sql.Scanner: JSON string -> Go struct on read.
func (in *StageInput) Scan(value interface{}) error {
	return jsonScan(in, value)
}
