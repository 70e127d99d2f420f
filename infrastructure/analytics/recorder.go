package analytics

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/prasetyowira/qrforge/constant"
	appLogger "github.com/prasetyowira/qrforge/infrastructure/logger"
)

// EventType tags one kind of recorded action.
type EventType string

const (
	EventQRGenerate      EventType = "qr.generate"
	EventBarcodeGenerate EventType = "barcode.generate"
	EventWifiGenerate    EventType = "wifi.generate"
	EventScan            EventType = "scan"
	EventLogin           EventType = "login"
)

// Event is one self-contained analytics record. Login events carry the
// username only; passwords are never persisted.
type Event struct {
	Type       EventType `json:"type"`
	ArtifactID string    `json:"artifact_id,omitempty"`
	PayloadLen int       `json:"payload_len,omitempty"`
	IP         string    `json:"ip,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	SSID       string    `json:"ssid,omitempty"`
	Username   string    `json:"username,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Recorder appends events one JSON line at a time to an append-only log.
// Appends are serialized; reads return newest-first.
type Recorder struct {
	path string
	mu   sync.Mutex
}

// NewRecorder creates a recorder writing to the given log path. The file is
// created on first append.
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

// Record appends one event. Best-effort: failures are logged and swallowed so
// the caller's request path never fails on analytics.
func (r *Recorder) Record(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	line, err := json.Marshal(event)
	if err != nil {
		appLogger.CtxWarn(ctx, "Failed to marshal event", appLogger.LoggerInfo{
			ContextFunction: constant.CtxEvents,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeEventMarshal,
				Message: err.Error(),
				Type:    constant.ErrTypeAnalytics,
			},
		})
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		appLogger.CtxWarn(ctx, "Failed to open event log", appLogger.LoggerInfo{
			ContextFunction: constant.CtxEvents,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeEventWrite,
				Message: err.Error(),
				Type:    constant.ErrTypeAnalytics,
			},
			Data: map[string]interface{}{
				constant.DataPath: r.path,
			},
		})
		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		appLogger.CtxWarn(ctx, "Failed to append event", appLogger.LoggerInfo{
			ContextFunction: constant.CtxEvents,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeEventWrite,
				Message: err.Error(),
				Type:    constant.ErrTypeAnalytics,
			},
			Data: map[string]interface{}{
				constant.DataEventType: string(event.Type),
			},
		})
	}
}

// Recent returns up to limit events in reverse write order (newest first).
// An empty eventType matches every event; limit <= 0 means no limit. A log
// that does not exist yet yields an empty result, not an error.
func (r *Recorder) Recent(ctx context.Context, eventType EventType, limit int) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		appLogger.CtxError(ctx, "Failed to open event log for reading", appLogger.LoggerInfo{
			ContextFunction: constant.CtxEvents,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeEventRead,
				Message: err.Error(),
				Type:    constant.ErrTypeAnalytics,
			},
			Data: map[string]interface{}{
				constant.DataPath: r.path,
			},
		})
		return nil, err
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var event Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			// Skip torn or foreign lines rather than failing the whole read
			continue
		}
		if eventType != "" && event.Type != eventType {
			continue
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	return events, nil
}
