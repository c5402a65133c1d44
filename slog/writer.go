package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/c2cgpx"
)

// Ensure LoggingWaypointWriter implements c2cgpx.WaypointWriter.
var _ c2cgpx.WaypointWriter = (*LoggingWaypointWriter)(nil)

// LoggingWaypointWriter wraps a WaypointWriter with logging.
type LoggingWaypointWriter struct {
	next   c2cgpx.WaypointWriter
	logger *slog.Logger
}

// NewLoggingWaypointWriter creates a new LoggingWaypointWriter.
func NewLoggingWaypointWriter(next c2cgpx.WaypointWriter, logger *slog.Logger) *LoggingWaypointWriter {
	return &LoggingWaypointWriter{next: next, logger: logger}
}

// WriteWaypoints delegates to the wrapped writer and logs the operation.
func (w *LoggingWaypointWriter) WriteWaypoints(out io.Writer, wps []*c2cgpx.Waypoint) (n int, err error) {
	defer func(begin time.Time) {
		w.logger.Info("write waypoints",
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteWaypoints(out, wps)
}
