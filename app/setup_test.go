package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/biosecret/task-tracker/config"
	"github.com/biosecret/task-tracker/events"
	"github.com/biosecret/task-tracker/models"
	"github.com/biosecret/task-tracker/store"
	"github.com/gofiber/fiber/v2"
)

var fixedNow = time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC)

const (
	today     = "2030-06-15"
	yesterday = "2030-06-14"
	nextWeek  = "2030-06-22"
)

type testApp struct {
	t      *testing.T
	app    *fiber.App
	broker *events.Broker
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	broker := events.NewBroker(func() time.Time { return fixedNow })
	app := New(config.Config{CORSOrigins: "*"}, Deps{
		Store:  store.NewMemory(),
		Broker: broker,
		Now:    func() time.Time { return fixedNow },
	})
	return &testApp{t: t, app: app, broker: broker}
}

// do gửi request và decode body JSON vào out nếu out khác nil
func (a *testApp) do(method, path string, body any, out any) int {
	a.t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			a.t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	if err != nil {
		a.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, out); err != nil {
			a.t.Fatalf("%s %s: decode %s: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode
}

func (a *testApp) createUser(username, email string) models.User {
	a.t.Helper()
	var u models.User
	code := a.do(http.MethodPost, "/users/", map[string]any{"username": username, "email": email}, &u)
	if code != http.StatusOK {
		a.t.Fatalf("create user: status %d", code)
	}
	return u
}

func taskBody(due string, userID int64) map[string]any {
	return map[string]any{
		"title":       "Write report",
		"description": "Quarterly numbers",
		"status":      "pending",
		"due_date":    due,
		"user_id":     userID,
	}
}

func TestCreateUserValidation(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name string
		body any
	}{
		{"short username", map[string]any{"username": "ab", "email": "a@example.com"}},
		{"long username", map[string]any{"username": "abcdefghijklmnopqrstu", "email": "a@example.com"}},
		{"invalid email", map[string]any{"username": "alice", "email": "alice-at-example"}},
		{"missing email", map[string]any{"username": "alice"}},
		{"mistyped username", map[string]any{"username": 42, "email": "a@example.com"}},
		{"malformed json", `{"username": "alice",`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			if code := a.do(http.MethodPost, "/users/", tt.body, &body); code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", code)
			}
			if body["error"] == nil {
				t.Fatalf("missing error message: %v", body)
			}
		})
	}
}

func TestCreateUsersSequentialIDs(t *testing.T) {
	a := newTestApp(t)

	first := a.createUser("alice", "alice@example.com")
	second := a.createUser("bob", "bob@example.com")
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}
	if first.Username != "alice" || first.Email != "alice@example.com" {
		t.Fatalf("user = %+v", first)
	}

	var got models.User
	if code := a.do(http.MethodGet, "/user/2", nil, &got); code != http.StatusOK {
		t.Fatalf("get user: status %d", code)
	}
	if got != second {
		t.Fatalf("get user = %+v, want %+v", got, second)
	}
}

func TestGetUserNotFound(t *testing.T) {
	a := newTestApp(t)

	var body map[string]string
	if code := a.do(http.MethodGet, "/user/99", nil, &body); code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
	if body["error"] != "User not found" {
		t.Fatalf("error = %q", body["error"])
	}

	if code := a.do(http.MethodGet, "/user/abc", nil, nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("non-integer id: status = %d, want 422", code)
	}
}

func TestCreateTaskDueDate(t *testing.T) {
	a := newTestApp(t)

	if code := a.do(http.MethodPost, "/tasks/", taskBody(yesterday, 1), nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("past due date: status = %d, want 422", code)
	}

	var task models.Task
	if code := a.do(http.MethodPost, "/tasks/", taskBody(today, 1), &task); code != http.StatusOK {
		t.Fatalf("today: status = %d, want 200", code)
	}
	if task.ID != 1 || task.DueDate.String() != today {
		t.Fatalf("task = %+v", task)
	}

	if code := a.do(http.MethodPost, "/tasks/", taskBody("15/06/2030", 1), nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("bad date format: status = %d, want 422", code)
	}
}

func TestCreateTaskKeepsUncheckedFields(t *testing.T) {
	a := newTestApp(t)

	// status tùy ý và user_id không tồn tại vẫn được chấp nhận khi tạo
	body := taskBody(nextWeek, 42)
	body["status"] = "whatever"
	body["description"] = ""

	var task models.Task
	if code := a.do(http.MethodPost, "/tasks/", body, &task); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if task.Status != "whatever" || task.UserID != 42 || task.Description != "" {
		t.Fatalf("task = %+v", task)
	}

	missing := taskBody(nextWeek, 1)
	delete(missing, "title")
	if code := a.do(http.MethodPost, "/tasks/", missing, nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("missing title: status = %d, want 422", code)
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	a := newTestApp(t)
	a.do(http.MethodPost, "/tasks/", taskBody(today, 1), nil)

	var body map[string]string
	if code := a.do(http.MethodPut, "/tasks/1", map[string]any{"status": "archived"}, &body); code != http.StatusBadRequest {
		t.Fatalf("archived: status = %d, want 400", code)
	}
	if body["error"] != "Invalid status" {
		t.Fatalf("error = %q", body["error"])
	}

	var updated models.Task
	if code := a.do(http.MethodPut, "/tasks/1", map[string]any{"status": "completed"}, &updated); code != http.StatusOK {
		t.Fatalf("completed: status = %d, want 200", code)
	}
	if updated.Status != "completed" {
		t.Fatalf("updated status = %q", updated.Status)
	}

	var fetched models.Task
	a.do(http.MethodGet, "/tasks/1", nil, &fetched)
	if fetched.Status != "completed" {
		t.Fatalf("fetched status = %q", fetched.Status)
	}

	// Task không tồn tại thắng status không hợp lệ
	if code := a.do(http.MethodPut, "/tasks/99", map[string]any{"status": "archived"}, nil); code != http.StatusNotFound {
		t.Fatalf("missing task: status = %d, want 404", code)
	}
	if code := a.do(http.MethodPut, "/tasks/1", map[string]any{}, nil); code != http.StatusUnprocessableEntity {
		t.Fatalf("missing status field: status = %d, want 422", code)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	a := newTestApp(t)
	if code := a.do(http.MethodGet, "/tasks/1", nil, nil); code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
}

func TestListTasksForUser(t *testing.T) {
	a := newTestApp(t)

	if code := a.do(http.MethodGet, "/users/1/tasks", nil, nil); code != http.StatusNotFound {
		t.Fatalf("missing user: status = %d, want 404", code)
	}

	a.createUser("alice", "alice@example.com")

	var tasks []models.Task
	if code := a.do(http.MethodGet, "/users/1/tasks", nil, &tasks); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("tasks = %#v, want empty JSON array", tasks)
	}
}

func TestEndToEnd(t *testing.T) {
	a := newTestApp(t)
	sub := a.broker.Subscribe(8)
	defer sub.Close()

	user := a.createUser("alice", "alice@example.com")
	if user.ID != 1 {
		t.Fatalf("user id = %d", user.ID)
	}

	var created models.Task
	if code := a.do(http.MethodPost, "/tasks/", taskBody(nextWeek, user.ID), &created); code != http.StatusOK {
		t.Fatalf("create task: status %d", code)
	}
	if created.ID != 1 || created.Status != "pending" {
		t.Fatalf("created = %+v", created)
	}
	a.do(http.MethodPost, "/tasks/", taskBody(nextWeek, 2), nil)

	if code := a.do(http.MethodPut, "/tasks/1", map[string]any{"status": "in_progress"}, nil); code != http.StatusOK {
		t.Fatalf("update: status %d", code)
	}

	var fetched models.Task
	a.do(http.MethodGet, "/tasks/1", nil, &fetched)
	if fetched.Status != "in_progress" {
		t.Fatalf("fetched status = %q", fetched.Status)
	}

	var tasks []models.Task
	a.do(http.MethodGet, "/users/1/tasks", nil, &tasks)
	if len(tasks) != 1 || tasks[0] != fetched {
		t.Fatalf("tasks for user 1 = %+v, want [%+v]", tasks, fetched)
	}

	wantEvents := []models.EventType{
		models.EventUserCreated,
		models.EventTaskCreated,
		models.EventTaskCreated,
		models.EventTaskStatusChanged,
	}
	for _, want := range wantEvents {
		select {
		case ev := <-sub.C:
			if ev.Type != want {
				t.Fatalf("event = %s, want %s", ev.Type, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestHealthAndTrailingSlash(t *testing.T) {
	a := newTestApp(t)

	var health map[string]string
	if code := a.do(http.MethodGet, "/health", nil, &health); code != http.StatusOK {
		t.Fatalf("health: status %d", code)
	}
	if health["status"] != "ok" || health["store"] != "memory" {
		t.Fatalf("health = %v", health)
	}

	var u models.User
	if code := a.do(http.MethodPost, "/users", map[string]any{"username": "alice", "email": "a@example.com"}, &u); code != http.StatusOK {
		t.Fatalf("POST /users: status %d", code)
	}
}
