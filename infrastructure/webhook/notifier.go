package webhook

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/prasetyowira/qrforge/constant"
	appLogger "github.com/prasetyowira/qrforge/infrastructure/logger"
)

const deliveryTimeout = 5 * time.Second

// ScanNotification is the payload posted when an artifact scan is tracked.
type ScanNotification struct {
	ArtifactID string    `json:"artifact_id"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	ScannedAt  time.Time `json:"scanned_at"`
}

// Notifier delivers scan notifications fire-and-forget. An empty URL disables
// delivery entirely.
type Notifier struct {
	url    string
	client *http.Client
}

// NewNotifier creates a notifier posting to the given webhook URL.
func NewNotifier(url string) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: deliveryTimeout},
	}
}

// Enabled reports whether a webhook URL is configured.
func (n *Notifier) Enabled() bool {
	return n.url != ""
}

// NotifyScan posts the notification in the background. The outcome never
// reaches the caller; delivery failures are logged and dropped.
func (n *Notifier) NotifyScan(notification ScanNotification) {
	if !n.Enabled() {
		return
	}

	go func() {
		body, err := json.Marshal(notification)
		if err != nil {
			return
		}

		resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
		if err != nil {
			appLogger.Warn("Webhook delivery failed", appLogger.LoggerInfo{
				ContextFunction: constant.CtxWebhook,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeWebhookPost,
					Message: err.Error(),
					Type:    constant.ErrTypeWebhook,
				},
				Data: map[string]interface{}{
					constant.DataArtifactID: notification.ArtifactID,
					constant.DataWebhookURL: n.url,
				},
			})
			return
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		appLogger.Debug("Webhook delivered", appLogger.LoggerInfo{
			ContextFunction: constant.CtxWebhook,
			Data: map[string]interface{}{
				constant.DataArtifactID: notification.ArtifactID,
				constant.DataStatus:     resp.StatusCode,
			},
		})
	}()
}
