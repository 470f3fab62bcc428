package testutil

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/activities-service/internal/metrics"
)

// NewRecorderWithShutdown returns a recorder and a no-op shutdown to simplify tests.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	return metrics.NewRecorder(), func(context.Context) error { return nil }
}

// MetricsSetupStub returns a metrics.Setup replacement that hands back rec and handler.
func MetricsSetupStub(rec *metrics.Recorder, handler http.Handler, err error) func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	return func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		if err != nil {
			return nil, nil, nil, err
		}
		return rec, handler, func(context.Context) error { return nil }, nil
	}
}
