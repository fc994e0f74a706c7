package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultWebhookTimeout = 3 * time.Second

// Webhook POSTs events to a primary URL, falling back to a secondary one when
// the primary is unreachable or answers non-2xx.
type Webhook struct {
	primary  string
	fallback string
	client   *http.Client
	logFn    LogFunc
}

func NewWebhook(primaryURL, fallbackURL string, timeout time.Duration, logFn LogFunc) *Webhook {
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	if logFn == nil {
		logFn = log.Printf
	}
	return &Webhook{
		primary:  primaryURL,
		fallback: fallbackURL,
		client:   &http.Client{Timeout: timeout},
		logFn:    logFn,
	}
}

func (w *Webhook) Publish(ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ev.Event, err)
	}
	if err := w.post(w.primary, body); err != nil {
		if w.fallback == "" {
			return err
		}
		w.logFn("notify: primary webhook %s: %v, trying fallback", w.primary, err)
		if err := w.post(w.fallback, body); err != nil {
			return fmt.Errorf("fallback webhook: %w", err)
		}
	}
	return nil
}

func (w *Webhook) post(url string, body []byte) error {
	resp, err := w.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook %s returned %s", url, resp.Status)
	}
	return nil
}
