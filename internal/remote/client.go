// Package remote posts submitted weeks to a central collection server.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// maxErrorBody bounds how much of a rejection body is kept.
const maxErrorBody = 512

// Submission is one week's records sent as a JSON array.
type Submission struct {
	ID      string
	Records []domain.ExportRecord
}

// Receipt describes a successful post.
type Receipt struct {
	StatusCode int
	Attempts   int
	LatencyMs  int64
}

// Sink delivers submissions to the central server.
type Sink interface {
	Submit(ctx context.Context, sub Submission) (*Receipt, error)
}

// httpSink implements Sink with a JSON POST per submission.
type httpSink struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPSink creates a Sink for cfg.URL. When client credentials are
// configured the transport fetches and refreshes bearer tokens itself.
func NewHTTPSink(cfg Config, observer Observer) Sink {
	if observer == nil {
		observer = NoopObserver{}
	}
	base := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
	client := base
	if cfg.UsesOAuth() {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		client = cc.Client(context.WithValue(context.Background(), oauth2.HTTPClient, base))
	}
	return &httpSink{cfg: cfg, http: client, observer: observer}
}

func (s *httpSink) Submit(ctx context.Context, sub Submission) (*Receipt, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	records := sub.Records
	if records == nil {
		records = []domain.ExportRecord{}
	}
	body, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshaling submission: %w", err)
	}

	var (
		lastErr  error
		status   int
		attempts int
	)
	for attempts < 1+s.cfg.MaxRetries {
		attempts++
		status, lastErr = s.post(ctx, sub.ID, body)
		if lastErr == nil || !retryable(lastErr) || ctx.Err() != nil {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	if lastErr == nil {
		s.observer.OnCallComplete(SinkCallEvent{
			SubmissionID: sub.ID,
			Records:      len(records),
			Attempts:     attempts,
			LatencyMs:    latency,
			StatusCode:   status,
			Success:      true,
		})
		return &Receipt{StatusCode: status, Attempts: attempts, LatencyMs: latency}, nil
	}

	switch {
	case ctx.Err() != nil:
		lastErr = ErrTimeout
	case isConnectionError(lastErr):
		lastErr = fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}
	s.observer.OnCallComplete(SinkCallEvent{
		SubmissionID: sub.ID,
		Records:      len(records),
		Attempts:     attempts,
		LatencyMs:    latency,
		StatusCode:   status,
		Success:      false,
		ErrorCode:    errorCode(lastErr),
	})
	return nil, lastErr
}

func (s *httpSink) post(ctx context.Context, id string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id != "" {
		req.Header.Set("X-Submission-ID", id)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(excerpt))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// retryable reports whether another attempt may succeed: connection
// failures and 5xx answers are retried, 4xx answers are not.
func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500
	}
	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}
