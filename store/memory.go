package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"aida-server/models"
)

// MemoryStore implements ProjectStore and TaskStore in memory. Used by tests
// and by the offline demo mode; it honors the same whole-field-replace
// discipline as the MySQL store.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*models.Project
	tasks    map[string]*models.Task
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string]*models.Project),
		tasks:    make(map[string]*models.Task),
	}
}

func (s *MemoryStore) Create(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.projects[p.ID] = cloneProject(p)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, models.ErrNotFound)
	}
	return cloneProject(p), nil
}

func (s *MemoryStore) ListByOwner(_ context.Context, ownerID string) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Project
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			out = append(out, *cloneProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *MemoryStore) UpdateField(_ context.Context, id, field string, value interface{}) error {
	if !writableFields[field] {
		return fmt.Errorf("field %q is not writable: %w", field, models.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return fmt.Errorf("project %s: %w", id, models.ErrNotFound)
	}
	if err := applyField(p, field, value); err != nil {
		return err
	}
	if progressFields[field] && p.Status == models.ProjectStatusDraft {
		p.Status = models.ProjectStatusInProgress
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) UpdateMeta(_ context.Context, id, title, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return fmt.Errorf("project %s: %w", id, models.ErrNotFound)
	}
	p.Title = title
	p.Description = description
	p.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, models.ErrNotFound)
	}
	delete(s.projects, id)
	for tid, t := range s.tasks {
		if t.ProjectID == id {
			delete(s.tasks, tid)
		}
	}
	return nil
}

// applyField replaces one whole field. The clone guards against callers
// mutating the stored value through a retained pointer.
func applyField(p *models.Project, field string, value interface{}) error {
	switch field {
	case "status":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("status must be a string: %w", models.ErrInvalidArgument)
		}
		p.Status = v
		return nil
	case "style":
		return assignJSON(&p.Style, value)
	case string(models.StageScript):
		return assignJSON(&p.Script, value)
	case string(models.StageStoryboard):
		return assignJSON(&p.Storyboard, value)
	case string(models.StageImages):
		return assignJSON(&p.Images, value)
	case string(models.StageVideos):
		return assignJSON(&p.Videos, value)
	case string(models.StageVoiceover):
		return assignJSON(&p.Voiceover, value)
	case string(models.StageSoundtrack):
		return assignJSON(&p.Soundtrack, value)
	default:
		return fmt.Errorf("field %q is not writable: %w", field, models.ErrInvalidArgument)
	}
}

func assignJSON[T any](dst **T, value interface{}) error {
	if value == nil {
		*dst = nil
		return nil
	}
	bytes, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal field value: %w", err)
	}
	fresh := new(T)
	if err := json.Unmarshal(bytes, fresh); err != nil {
		return fmt.Errorf("field value has wrong shape: %w", models.ErrInvalidArgument)
	}
	*dst = fresh
	return nil
}

func cloneProject(p *models.Project) *models.Project {
	bytes, _ := json.Marshal(p)
	out := &models.Project{}
	_ = json.Unmarshal(bytes, out)
	return out
}

// Task half of the store.

func (s *MemoryStore) CreateTask(_ context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks[t.ID] = cloneTask(t)
	return nil
}

func (s *MemoryStore) GetTask(_ context.Context, id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, models.ErrNotFound)
	}
	return cloneTask(t), nil
}

func (s *MemoryStore) ListTasksByProject(_ context.Context, projectID string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, *cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) UpdateTaskStatus(_ context.Context, id, status string, progress int, message, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("task %s: %w", id, models.ErrNotFound)
	}
	now := time.Now()
	t.Status = status
	t.Progress = progress
	if message != "" {
		t.Message = message
	}
	if errMsg != "" {
		t.Error = errMsg
	}
	switch status {
	case models.TaskStatusProcessing:
		t.StartedAt = now
	case models.TaskStatusSuccess, models.TaskStatusFailed, models.TaskStatusCancelled:
		t.FinishedAt = now
	}
	t.UpdatedAt = now
	return nil
}

// Tasks exposes the task half under the TaskStore interface.
func (s *MemoryStore) Tasks() TaskStore { return memoryTasks{s} }

type memoryTasks struct{ s *MemoryStore }

func (m memoryTasks) Create(ctx context.Context, t *models.Task) error {
	return m.s.CreateTask(ctx, t)
}

func (m memoryTasks) Get(ctx context.Context, id string) (*models.Task, error) {
	return m.s.GetTask(ctx, id)
}

func (m memoryTasks) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return m.s.ListTasksByProject(ctx, projectID)
}

func (m memoryTasks) UpdateStatus(ctx context.Context, id, status string, progress int, message, errMsg string) error {
	return m.s.UpdateTaskStatus(ctx, id, status, progress, message, errMsg)
}

func cloneTask(t *models.Task) *models.Task {
	bytes, _ := json.Marshal(t)
	out := &models.Task{}
	_ = json.Unmarshal(bytes, out)
	return out
}
