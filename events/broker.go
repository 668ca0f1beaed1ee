// Package events phát các thay đổi của User/Task tới SSE client và MQTT broker.
package events

import (
	"slices"
	"sync"
	"time"

	"github.com/biosecret/task-tracker/models"
)

// DefaultBuffer là số event mỗi subscriber giữ được trước khi bắt đầu bỏ event
const DefaultBuffer = 16

// Subscription nhận event qua C cho tới khi bị hủy
type Subscription struct {
	C      <-chan models.Event
	ch     chan models.Event
	broker *Broker
	once   sync.Once
}

// Close hủy đăng ký và đóng C
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s)
	})
}

// Broker phát event tới mọi subscriber mà không bao giờ chặn người publish
type Broker struct {
	mu     sync.Mutex
	subs   []*Subscription
	now    func() time.Time
	closed bool
}

func NewBroker(now func() time.Time) *Broker {
	if now == nil {
		now = time.Now
	}
	return &Broker{now: now}
}

// Subscribe đăng ký một subscriber mới với buffer kích thước buffer
func (b *Broker) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan models.Event, buffer)
	s := &Subscription{C: ch, ch: ch, broker: b}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return s
	}
	b.subs = append(b.subs, s)
	return s
}

func (b *Broker) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := slices.Index(b.subs, s)
	if idx != -1 {
		b.subs = slices.Delete(b.subs, idx, idx+1)
		close(s.ch)
	}
}

// Publish gửi ev tới mọi subscriber; subscriber đầy buffer sẽ bị bỏ qua event này
func (b *Broker) Publish(ev models.Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = b.now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		select {
		case s.ch <- ev:
		default:
		}
	}
}

func (b *Broker) UserCreated(u models.User) {
	b.Publish(models.Event{Type: models.EventUserCreated, User: &u})
}

func (b *Broker) TaskCreated(t models.Task) {
	b.Publish(models.Event{Type: models.EventTaskCreated, Task: &t})
}

func (b *Broker) TaskStatusChanged(t models.Task) {
	b.Publish(models.Event{Type: models.EventTaskStatusChanged, Task: &t})
}

// Close đóng mọi subscription hiện có; Subscribe sau đó trả về kênh đã đóng
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	b.closed = true
}

// Len trả về số subscriber đang hoạt động
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
