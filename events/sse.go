package events

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/biosecret/task-tracker/models"
)

// KeepAliveMessage là comment SSE gửi định kỳ để giữ kết nối
const KeepAliveMessage = ":keepalive\n\n"

// retry gợi ý client kết nối lại sau 15 giây
const retryMillis = 15000

// FormatSSE định dạng ev thành một message text/event-stream
func FormatSSE(ev models.Event) (string, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("event: %s\n", ev.Type))
	sb.WriteString(fmt.Sprintf("retry: %d\n", retryMillis))
	sb.WriteString(fmt.Sprintf("data: %s\n\n", data))
	return sb.String(), nil
}
