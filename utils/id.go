package utils

import "sync/atomic"

// Sequence cấp ID tăng dần bắt đầu từ 1, an toàn khi gọi đồng thời
type Sequence struct {
	last atomic.Int64
}

// Next trả về ID kế tiếp
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Current trả về ID đã cấp gần nhất, 0 nếu chưa cấp ID nào
func (s *Sequence) Current() int64 {
	return s.last.Load()
}
