package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/activities-service/internal/domain/activities"
)

func newSQLiteStore(t *testing.T, items []activities.Activity) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), "", items)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreListAllPreservesOrderAndRoster(t *testing.T) {
	s := newSQLiteStore(t, seed())

	list, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Chess Club" || list[1].Name != "Art Club" {
		t.Fatalf("unexpected list %+v", list)
	}
	if list[0].Participants == nil || len(list[0].Participants) != 0 {
		t.Fatalf("expected empty non-nil roster, got %#v", list[0].Participants)
	}
	if len(list[1].Participants) != 1 || list[1].Participants[0] != "amelia@x.com" {
		t.Fatalf("unexpected seeded roster %v", list[1].Participants)
	}
	if list[1].MaxParticipants != 3 || list[1].Schedule != "Thursdays" {
		t.Fatalf("unexpected activity fields %+v", list[1])
	}
}

func TestSQLiteStoreAdmitAndRemove(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t, seed())

	if err := s.Admit(ctx, "Unknown", "a@x.com"); !errors.Is(err, activities.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Admit(ctx, "Chess Club", "a@x.com"); err != nil {
		t.Fatalf("admit: %v", err)
	}
	if err := s.Admit(ctx, "Chess Club", "a@x.com"); !errors.Is(err, activities.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if err := s.Admit(ctx, "Chess Club", "b@x.com"); err != nil {
		t.Fatalf("admit: %v", err)
	}
	if err := s.Admit(ctx, "Chess Club", "c@x.com"); !errors.Is(err, activities.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	if err := s.Remove(ctx, "Unknown", "a@x.com"); !errors.Is(err, activities.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Remove(ctx, "Chess Club", "z@x.com"); !errors.Is(err, activities.ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
	if err := s.Remove(ctx, "Chess Club", "a@x.com"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Admit(ctx, "Chess Club", "c@x.com"); err != nil {
		t.Fatalf("expected freed slot to be admissible, got %v", err)
	}

	list, _ := s.ListAll(ctx)
	got := list[0].Participants
	if len(got) != 2 || got[0] != "b@x.com" || got[1] != "c@x.com" {
		t.Fatalf("expected [b c], got %v", got)
	}
}

func TestSQLiteStoreConcurrentAdmitsNeverExceedCapacity(t *testing.T) {
	const capacity, extra = 4, 12
	s := newSQLiteStore(t, []activities.Activity{{Name: "Gym Class", Description: "gym", Schedule: "daily", MaxParticipants: capacity}})

	var ok, full atomic.Int32
	var g errgroup.Group
	for i := 0; i < capacity+extra; i++ {
		email := fmt.Sprintf("student%d@x.com", i)
		g.Go(func() error {
			err := s.Admit(context.Background(), "Gym Class", email)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, activities.ErrCapacityExceeded):
				full.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok.Load() != capacity || full.Load() != extra {
		t.Fatalf("expected %d/%d, got %d/%d", capacity, extra, ok.Load(), full.Load())
	}
}

func TestSQLiteStoreReseedKeepsExistingRows(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "rosters.db")

	first, err := NewSQLiteStore(ctx, dsn, seed())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := first.Admit(ctx, "Chess Club", "kept@x.com"); err != nil {
		t.Fatalf("admit: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	items := append(seed(), activities.Activity{Name: "Math Club", Description: "math", Schedule: "Tuesdays", MaxParticipants: 10})
	second, err := NewSQLiteStore(ctx, dsn, items)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer second.Close()

	list, err := second.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[2].Name != "Math Club" {
		t.Fatalf("expected new activity appended, got %+v", list)
	}
	if len(list[0].Participants) != 1 || list[0].Participants[0] != "kept@x.com" {
		t.Fatalf("expected existing roster kept, got %v", list[0].Participants)
	}
	if len(list[1].Participants) != 1 {
		t.Fatalf("expected seed participants not duplicated, got %v", list[1].Participants)
	}
}
