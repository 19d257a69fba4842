package recommend

import (
	"sync"

	"github.com/couchcryptid/vessel-risk-service/internal/domain"
)

const (
	defaultCapacity    = 1000
	defaultRecentLimit = 100
)

// History retains the most recent recommendations in a fixed-capacity ring.
// Once full, each new entry overwrites the oldest one.
type History struct {
	mu     sync.Mutex
	buf    []domain.Recommendation
	next   int
	filled bool
}

// NewHistory creates a history retaining up to capacity entries. A
// non-positive capacity falls back to the default of 1000.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &History{buf: make([]domain.Recommendation, capacity)}
}

// Add records recommendations, oldest first.
func (h *History) Add(recs ...domain.Recommendation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, r := range recs {
		h.buf[h.next] = r
		h.next++
		if h.next == len(h.buf) {
			h.next = 0
			h.filled = true
		}
	}
}

// Recent returns up to limit recommendations, newest first, optionally
// filtered by MMSI. A non-positive limit applies the default of 100.
func (h *History) Recent(limit int, mmsi string) []domain.Recommendation {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	size := h.sizeLocked()
	out := make([]domain.Recommendation, 0, min(limit, size))
	for i := 1; i <= size && len(out) < limit; i++ {
		r := h.buf[(h.next-i+len(h.buf))%len(h.buf)]
		if mmsi != "" && r.MMSI != mmsi {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Size reports the number of retained recommendations.
func (h *History) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sizeLocked()
}

func (h *History) sizeLocked() int {
	if h.filled {
		return len(h.buf)
	}
	return h.next
}
