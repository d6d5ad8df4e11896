// Package audit records every processing of face imagery. Images and
// landmarks are never logged, only what was done with them.
package audit

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventFaceDetected      EventType = "FACE_DETECTED"
	EventNoFaceDetected    EventType = "NO_FACE_DETECTED"
	EventAnalysisCompleted EventType = "ANALYSIS_COMPLETED"
	EventImageRejected     EventType = "IMAGE_REJECTED"
)

// Event is one audited step. ID and Timestamp are filled in by the logger
// when left zero.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	EventType  EventType         `json:"event_type"`
	AnalysisID string            `json:"analysis_id,omitempty"`
	Source     string            `json:"source,omitempty"`
	Provider   string            `json:"provider,omitempty"`
	Success    bool              `json:"success"`
	Error      string            `json:"error,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type Logger interface {
	Log(ctx context.Context, event Event) error
}

// SlogLogger writes each event as a single "audit_event" record
type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{
		logger: logger.With(slog.String("component", "audit")),
	}
}

func (l *SlogLogger) Log(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	attrs := []slog.Attr{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.EventType)),
		slog.Time("event_time", event.Timestamp),
		slog.Bool("success", event.Success),
	}
	if event.AnalysisID != "" {
		attrs = append(attrs, slog.String("analysis_id", event.AnalysisID))
	}
	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}
	if event.Provider != "" {
		attrs = append(attrs, slog.String("provider", event.Provider))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, metadataGroup(event.Metadata))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}

	l.logger.LogAttrs(ctx, level, "audit_event", attrs...)
	return nil
}

// metadataGroup keeps keys sorted so records diff cleanly
func metadataGroup(metadata map[string]string) slog.Attr {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	args := make([]any, 0, len(keys))
	for _, k := range keys {
		args = append(args, slog.String(k, metadata[k]))
	}
	return slog.Group("metadata", args...)
}

// NoOpLogger discards events
type NoOpLogger struct{}

func (l *NoOpLogger) Log(_ context.Context, _ Event) error {
	return nil
}
