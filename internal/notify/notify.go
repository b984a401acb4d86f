// Package notify publishes build events to NATS.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/website-builder/internal/logfields"
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/retry"
)

const flushTimeout = 5 * time.Second

// BuildEvent is the JSON payload published after every build.
type BuildEvent struct {
	BuildID      string    `json:"build_id"`
	Pipeline     string    `json:"pipeline"`
	Outcome      string    `json:"outcome"`
	FailedStage  string    `json:"failed_stage,omitempty"`
	Error        string    `json:"error,omitempty"`
	FilesWritten int       `json:"files_written"`
	DurationMS   int64     `json:"duration_ms"`
	Target       string    `json:"target"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewBuildEvent converts a build result into its wire form.
func NewBuildEvent(result *pipeline.BuildResult, target string) BuildEvent {
	ev := BuildEvent{
		BuildID:      result.BuildID,
		Pipeline:     result.Pipeline,
		Outcome:      string(result.Outcome),
		FailedStage:  string(result.FailedStage),
		FilesWritten: result.FilesWritten,
		DurationMS:   result.Duration().Milliseconds(),
		Target:       target,
		Timestamp:    result.End.UTC(),
	}
	if result.Err != nil {
		ev.Error = result.Err.Error()
	}
	return ev
}

// Publisher sends a payload on a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Conn is a NATS-backed Publisher.
type Conn struct {
	nc *nats.Conn
}

// Connect dials the NATS server at url.
func Connect(url string) (*Conn, error) {
	nc, err := nats.Connect(url, nats.Name("website-builder"), nats.Timeout(flushTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Conn{nc: nc}, nil
}

// Publish sends data and waits for the server to acknowledge the flush.
func (c *Conn) Publish(subject string, data []byte) error {
	if err := c.nc.Publish(subject, data); err != nil {
		return err
	}
	return c.nc.FlushTimeout(flushTimeout)
}

// Close drains and closes the connection.
func (c *Conn) Close() {
	if err := c.nc.Drain(); err != nil {
		c.nc.Close()
	}
}

// Notifier is a pipeline.BuildObserver publishing one BuildEvent per build.
// Failures are logged and never change the build outcome.
type Notifier struct {
	pipeline.NoopObserver

	Publisher Publisher
	Subject   string
	Target    string
	Logger    *slog.Logger

	// Retry governs publish attempts; the zero value tries once.
	Retry retry.Policy
}

func (n *Notifier) OnBuildComplete(result *pipeline.BuildResult) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	data, err := json.Marshal(NewBuildEvent(result, n.Target))
	if err != nil {
		logger.Warn("Failed to encode build event", logfields.BuildID(result.BuildID), logfields.Error(err))
		return
	}
	err = n.Retry.Do(func() error { return n.Publisher.Publish(n.Subject, data) })
	if err != nil {
		logger.Warn("Failed to publish build event",
			logfields.BuildID(result.BuildID),
			slog.String("subject", n.Subject),
			logfields.Error(err))
		return
	}
	logger.Debug("Published build event", logfields.BuildID(result.BuildID), slog.String("subject", n.Subject))
}
