// Package store định nghĩa nơi lưu trữ User và Task cùng các backend của nó.
package store

import (
	"context"
	"errors"

	"github.com/biosecret/task-tracker/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUserNotFound = &notFoundError{msg: "User not found"}
	ErrTaskNotFound = &notFoundError{msg: "Task not found"}
)

type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string { return e.msg }

// Is cho phép errors.Is(err, ErrNotFound) khớp với mọi lỗi không tìm thấy
func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

type UserStore interface {
	// CreateUser gán ID mới cho u, lưu và trả về bản ghi đầy đủ
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
}

type TaskStore interface {
	// CreateTask gán ID mới cho t, lưu và trả về bản ghi đầy đủ.
	// t.UserID không được kiểm tra có tồn tại hay không.
	CreateTask(ctx context.Context, t models.Task) (models.Task, error)
	GetTask(ctx context.Context, id int64) (models.Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, status string) (models.Task, error)
	// ListTasksByUser trả về các task của userID theo thứ tự tạo, không bao giờ nil
	ListTasksByUser(ctx context.Context, userID int64) ([]models.Task, error)
}

// Store gom cả hai bảng lại cùng vòng đời của process
type Store interface {
	UserStore
	TaskStore
	// Name là tên backend, hiển thị ở /health
	Name() string
	Close() error
}
