package store

import (
	"context"
	"sync"

	"github.com/biosecret/task-tracker/models"
	"github.com/biosecret/task-tracker/utils"
)

// Memory lưu dữ liệu trong bộ nhớ của process
type Memory struct {
	mu sync.RWMutex

	userSeq utils.Sequence
	users   map[int64]models.User

	taskSeq   utils.Sequence
	tasks     map[int64]*models.Task
	taskOrder []int64
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users: make(map[int64]models.User),
		tasks: make(map[int64]*models.Task),
	}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Close() error { return nil }

func (m *Memory) CreateUser(_ context.Context, u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.ID = m.userSeq.Next()
	m.users[u.ID] = u
	return u, nil
}

func (m *Memory) GetUser(_ context.Context, id int64) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *Memory) CreateTask(_ context.Context, t models.Task) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t.ID = m.taskSeq.Next()
	stored := t
	m.tasks[t.ID] = &stored
	m.taskOrder = append(m.taskOrder, t.ID)
	return t, nil
}

func (m *Memory) GetTask(_ context.Context, id int64) (models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[id]
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}
	return *t, nil
}

func (m *Memory) UpdateTaskStatus(_ context.Context, id int64, status string) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}
	t.Status = status
	return *t, nil
}

func (m *Memory) ListTasksByUser(_ context.Context, userID int64) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := []models.Task{}
	for _, id := range m.taskOrder {
		if t := m.tasks[id]; t.UserID == userID {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}
