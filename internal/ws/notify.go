package ws

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

type ResumeUpdatedEvent struct {
	Type      string `json:"type"`
	Slug      string `json:"slug"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyResumeUpdated tells preview clients watching the slug to refetch.
func NotifyResumeUpdated(slug string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return
	}

	evt := ResumeUpdatedEvent{
		Type:      "resume_updated",
		Slug:      slug,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(slug, b)
}
