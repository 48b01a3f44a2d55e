package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aida-server/models"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open connects to MySQL and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.Project{}, &models.Task{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

type MySQLProjectStore struct {
	db *gorm.DB
}

func NewMySQLProjectStore(db *gorm.DB) *MySQLProjectStore {
	return &MySQLProjectStore{db: db}
}

func (s *MySQLProjectStore) Create(ctx context.Context, p *models.Project) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return mapMySQLError(err)
	}
	return nil
}

func (s *MySQLProjectStore) Get(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", id, models.ErrNotFound)
		}
		return nil, mapMySQLError(err)
	}
	return &p, nil
}

func (s *MySQLProjectStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, mapMySQLError(err)
	}
	return projects, nil
}

func (s *MySQLProjectStore) UpdateField(ctx context.Context, id, field string, value interface{}) error {
	if !writableFields[field] {
		return fmt.Errorf("field %q is not writable: %w", field, models.ErrInvalidArgument)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	switch v := value.(type) {
	case nil:
		updates[field] = nil
	case string:
		updates[field] = v
	default:
		bytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", field, err)
		}
		updates[field] = bytes
	}
	if progressFields[field] {
		updates["status"] = gorm.Expr(
			"IF(status = ?, ?, status)",
			models.ProjectStatusDraft, models.ProjectStatusInProgress,
		)
	}

	tx := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return mapMySQLError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		// distinguish a missing row from a value-identical no-op update
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *MySQLProjectStore) UpdateMeta(ctx context.Context, id, title, description string) error {
	tx := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
			"updated_at":  time.Now(),
		})
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

// Delete removes the project row and its tasks in one transaction. The row
// holds every stage output, so all artifacts go with it.
func (s *MySQLProjectStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Project{})
		if res.Error != nil {
			return mapMySQLError(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("project %s: %w", id, models.ErrNotFound)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return mapMySQLError(err)
		}
		return nil
	})
}

// mapMySQLError turns driver-level conflict errors into ErrWriteConflict so
// callers can retry by re-reading and re-applying.
func mapMySQLError(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		// 1213: deadlock, 1205: lock wait timeout
		if me.Number == 1213 || me.Number == 1205 {
			return fmt.Errorf("%v: %w", me, models.ErrWriteConflict)
		}
	}
	return err
}
