package remote

import (
	"fmt"
	"io"
	"time"
)

// SinkCallEvent records metadata about one submission attempt.
type SinkCallEvent struct {
	SubmissionID string
	Records      int
	Attempts     int
	LatencyMs    int64
	StatusCode   int
	Success      bool
	ErrorCode    string
}

// Observer receives events about sink calls for logging and metrics.
type Observer interface {
	OnCallComplete(event SinkCallEvent)
}

// LogObserver writes sink call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event SinkCallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] sink_call submission=%s records=%d attempts=%d latency_ms=%d http_status=%d status=%s\n",
		ts, event.SubmissionID, event.Records, event.Attempts, event.LatencyMs, event.StatusCode, status)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(SinkCallEvent) {}
