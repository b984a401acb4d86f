package commands

import (
	"log/slog"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/website-builder/internal/build"
	"git.home.luguber.info/inful/website-builder/internal/config"
	"git.home.luguber.info/inful/website-builder/internal/logfields"
	"git.home.luguber.info/inful/website-builder/internal/metrics"
	"git.home.luguber.info/inful/website-builder/internal/notify"
	"git.home.luguber.info/inful/website-builder/internal/pipeline"
	"git.home.luguber.info/inful/website-builder/internal/retry"
)

// session wires one command invocation: the build service plus the
// observers for logging, metrics and notifications.
type session struct {
	Service *build.Service
	BuildID string

	recorder    *metrics.PrometheusRecorder
	metricsFile string
	conn        *notify.Conn
}

func newSession(g *Global, c *CLI, workdir string, cfg *config.Config) *session {
	s := &session{BuildID: uuid.NewString()}
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(logfields.BuildID(s.BuildID))

	observers := pipeline.Observers{pipeline.LogObserver{Logger: logger}}

	s.metricsFile = c.MetricsFile
	if s.metricsFile == "" {
		s.metricsFile = cfg.Metrics.Textfile
	}
	if s.metricsFile != "" {
		s.recorder = metrics.NewPrometheusRecorder(prom.NewRegistry())
		observers = append(observers, pipeline.RecorderObserver{Recorder: s.recorder})
	}

	if cfg.Notify.Enabled() {
		conn, err := notify.Connect(cfg.Notify.NATSURL)
		if err != nil {
			logger.Warn("Build notifications disabled", logfields.Error(err))
		} else {
			s.conn = conn
			observers = append(observers, &notify.Notifier{
				Publisher: conn,
				Subject:   cfg.Notify.Subject,
				Target:    cfg.Paths.Target,
				Logger:    logger,
				Retry:     retry.NewPolicy(retry.BackoffMode(cfg.Notify.Backoff), 0, 0, cfg.Notify.Retries()),
			})
		}
	}

	s.Service = build.NewService(workdir, cfg.Paths.Target, cfg,
		build.WithBuildID(s.BuildID),
		build.WithObserver(observers),
	)
	return s
}

// Close flushes metrics and closes the notification connection. Failures
// are logged only.
func (s *session) Close() {
	if s.recorder != nil {
		if err := s.recorder.WriteTextfile(s.metricsFile); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(s.metricsFile), logfields.Error(err))
		}
	}
	if s.conn != nil {
		s.conn.Close()
	}
}

// openSession loads the configuration, lets the command's path flags
// override it and wires the session.
func openSession(g *Global, c *CLI, overrides ...func(*config.PathsConfig)) (*session, error) {
	wd, cfg, err := c.load()
	if err != nil {
		return nil, err
	}
	for _, apply := range overrides {
		apply(&cfg.Paths)
	}
	return newSession(g, c, wd, cfg), nil
}

// overridePath replaces a configured path with a flag value.
// Priority: CLI flag > config file > built-in default.
func overridePath(dst *string, flag string) {
	if flag != "" {
		*dst = flag
	}
}
