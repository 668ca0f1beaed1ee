package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/biosecret/task-tracker/models"
)

// testStore chạy cùng một bộ kiểm tra cho mọi backend.
// newStore phải trả về một store rỗng.
func testStore(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()
	due := models.NewDate(time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC))

	t.Run("UserIDsStartAtOne", func(t *testing.T) {
		s := newStore(t)
		for want := int64(1); want <= 2; want++ {
			u, err := s.CreateUser(ctx, models.User{Username: "alice", Email: "alice@example.com"})
			if err != nil {
				t.Fatalf("CreateUser: %v", err)
			}
			if u.ID != want {
				t.Fatalf("user id = %d, want %d", u.ID, want)
			}
		}
	})

	t.Run("GetUser", func(t *testing.T) {
		s := newStore(t)
		created, err := s.CreateUser(ctx, models.User{Username: "bob", Email: "bob@example.com"})
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		got, err := s.GetUser(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetUser: %v", err)
		}
		if got != created {
			t.Fatalf("GetUser = %+v, want %+v", got, created)
		}

		_, err = s.GetUser(ctx, created.ID+100)
		if !errors.Is(err, ErrUserNotFound) || !errors.Is(err, ErrNotFound) {
			t.Fatalf("GetUser(missing) err = %v", err)
		}
	})

	t.Run("TaskLifecycle", func(t *testing.T) {
		s := newStore(t)
		created, err := s.CreateTask(ctx, models.Task{
			Title: "write report", Description: "q3", Status: "pending", DueDate: due, UserID: 7,
		})
		if err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
		if created.ID != 1 {
			t.Fatalf("task id = %d, want 1", created.ID)
		}

		updated, err := s.UpdateTaskStatus(ctx, created.ID, models.StatusCompleted)
		if err != nil {
			t.Fatalf("UpdateTaskStatus: %v", err)
		}
		if updated.Status != models.StatusCompleted || updated.Title != "write report" {
			t.Fatalf("updated = %+v", updated)
		}

		got, err := s.GetTask(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetTask: %v", err)
		}
		if got.Status != models.StatusCompleted {
			t.Fatalf("status after update = %q", got.Status)
		}
		if got.DueDate.String() != due.String() {
			t.Fatalf("due date = %s, want %s", got.DueDate, due)
		}

		if _, err := s.GetTask(ctx, 999); !errors.Is(err, ErrTaskNotFound) {
			t.Fatalf("GetTask(missing) err = %v", err)
		}
		if _, err := s.UpdateTaskStatus(ctx, 999, "pending"); !errors.Is(err, ErrTaskNotFound) {
			t.Fatalf("UpdateTaskStatus(missing) err = %v", err)
		}
	})

	t.Run("ListTasksByUser", func(t *testing.T) {
		s := newStore(t)
		tasks, err := s.ListTasksByUser(ctx, 1)
		if err != nil {
			t.Fatalf("ListTasksByUser: %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			t.Fatalf("empty list = %#v, want non-nil empty slice", tasks)
		}

		for i, owner := range []int64{1, 2, 1, 1} {
			_, err := s.CreateTask(ctx, models.Task{
				Title: "t", Status: "pending", DueDate: due, UserID: owner,
				Description: string(rune('a' + i)),
			})
			if err != nil {
				t.Fatalf("CreateTask: %v", err)
			}
		}

		tasks, err = s.ListTasksByUser(ctx, 1)
		if err != nil {
			t.Fatalf("ListTasksByUser: %v", err)
		}
		var got string
		for _, task := range tasks {
			got += task.Description
		}
		if got != "acd" {
			t.Fatalf("tasks for user 1 in order = %q, want %q", got, "acd")
		}
	})
}
