package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aida-server/models"

	"gorm.io/gorm"
)

type MySQLTaskStore struct {
	db *gorm.DB
}

func NewMySQLTaskStore(db *gorm.DB) *MySQLTaskStore {
	return &MySQLTaskStore{db: db}
}

func (s *MySQLTaskStore) Create(ctx context.Context, t *models.Task) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return mapMySQLError(err)
	}
	return nil
}

func (s *MySQLTaskStore) Get(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %s: %w", id, models.ErrNotFound)
		}
		return nil, mapMySQLError(err)
	}
	return &t, nil
}

func (s *MySQLTaskStore) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, mapMySQLError(err)
	}
	return tasks, nil
}

func (s *MySQLTaskStore) UpdateStatus(ctx context.Context, id, status string, progress int, message, errMsg string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"progress":   progress,
		"updated_at": now,
	}
	if message != "" {
		updates["message"] = message
	}
	if errMsg != "" {
		updates["error"] = errMsg
	}
	switch status {
	case models.TaskStatusProcessing:
		updates["started_at"] = now
	case models.TaskStatusSuccess, models.TaskStatusFailed, models.TaskStatusCancelled:
		updates["finished_at"] = now
	}

	tx := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return mapMySQLError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
