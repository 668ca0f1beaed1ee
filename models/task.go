package models

// Các trạng thái hợp lệ của một task
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// AllowedStatuses theo thứ tự hiển thị
var AllowedStatuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// IsValidStatus kiểm tra status có thuộc tập trạng thái cho phép không
func IsValidStatus(status string) bool {
	for _, s := range AllowedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Task là một công việc gắn với một user
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     Date   `json:"due_date"`
	UserID      int64  `json:"user_id"`
}

// TaskCreate là body của request tạo task.
// Các trường là con trỏ để phân biệt trường bị thiếu với chuỗi rỗng.
// Status không bị giới hạn ở AllowedStatuses và UserID không cần tồn tại.
type TaskCreate struct {
	Title       *string `json:"title" validate:"required"`
	Description *string `json:"description" validate:"required"`
	Status      *string `json:"status" validate:"required"`
	DueDate     *Date   `json:"due_date" validate:"required,notpast"`
	UserID      *int64  `json:"user_id" validate:"required"`
}

// Task chuyển một TaskCreate đã được validate thành Task chưa có ID
func (in TaskCreate) Task() Task {
	var t Task
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.DueDate != nil {
		t.DueDate = *in.DueDate
	}
	if in.UserID != nil {
		t.UserID = *in.UserID
	}
	return t
}

// TaskStatusUpdate là body của request PUT /tasks/{task_id}
type TaskStatusUpdate struct {
	Status *string `json:"status" validate:"required"`
}
