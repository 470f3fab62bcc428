package testutil

import (
	"github.com/preston-bernstein/activities-service/internal/app/enrollment"
	"github.com/preston-bernstein/activities-service/internal/domain/activities"
	"github.com/preston-bernstein/activities-service/internal/metrics"
	"github.com/preston-bernstein/activities-service/internal/store"
)

// NewServiceWithCatalog builds an enrollment service backed by an in-memory store seeded with items.
func NewServiceWithCatalog(items []activities.Activity) *enrollment.Service {
	return enrollment.NewService(store.NewMemoryStore(items), nil)
}

// NewServiceWithRecorder is NewServiceWithCatalog plus a fresh metrics recorder for assertions.
func NewServiceWithRecorder(items []activities.Activity) (*enrollment.Service, *metrics.Recorder) {
	rec := metrics.NewRecorder()
	return enrollment.NewService(store.NewMemoryStore(items), rec), rec
}
