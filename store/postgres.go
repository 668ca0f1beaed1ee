package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/biosecret/task-tracker/database"
	"github.com/biosecret/task-tracker/models"
)

// Postgres lưu dữ liệu trong PostgreSQL, ID do SERIAL cấp
type Postgres struct {
	db *sql.DB
}

var _ Store = (*Postgres)(nil)

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Name() string { return "postgresql" }

func (p *Postgres) Close() error {
	return database.ClosePostgreSQL(p.db)
}

func (p *Postgres) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	err := p.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email) VALUES ($1, $2) RETURNING id",
		u.Username, u.Email,
	).Scan(&u.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (p *Postgres) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := p.db.QueryRowContext(ctx,
		"SELECT id, username, email FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	} else if err != nil {
		return models.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

const taskColumns = "id, title, description, status, due_date, user_id"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var due time.Time
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &due, &t.UserID); err != nil {
		return models.Task{}, err
	}
	t.DueDate = models.NewDate(due)
	return t, nil
}

func (p *Postgres) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	err := p.db.QueryRowContext(ctx,
		"INSERT INTO tasks (title, description, status, due_date, user_id) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		t.Title, t.Description, t.Status, t.DueDate.Time(), t.UserID,
	).Scan(&t.ID)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (p *Postgres) GetTask(ctx context.Context, id int64) (models.Task, error) {
	t, err := scanTask(p.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	} else if err != nil {
		return models.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

func (p *Postgres) UpdateTaskStatus(ctx context.Context, id int64, status string) (models.Task, error) {
	t, err := scanTask(p.db.QueryRowContext(ctx,
		"UPDATE tasks SET status = $1 WHERE id = $2 RETURNING "+taskColumns, status, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrTaskNotFound
	} else if err != nil {
		return models.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	return t, nil
}

func (p *Postgres) ListTasksByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	rows, err := p.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = $1 ORDER BY id", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks for user %d: %w", userID, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks for user %d: %w", userID, err)
	}
	return tasks, nil
}
