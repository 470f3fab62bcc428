package enrollment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/preston-bernstein/activities-service/internal/domain/activities"
	"github.com/preston-bernstein/activities-service/internal/logging"
	"github.com/preston-bernstein/activities-service/internal/metrics"
)

// Store defines the roster operations the service needs.
type Store interface {
	ListAll(ctx context.Context) ([]activities.Activity, error)
	Admit(ctx context.Context, name, email string) error
	Remove(ctx context.Context, name, email string) error
}

// Operation names reported to metrics and logs.
const (
	OpSignUp     = "signup"
	OpUnregister = "unregister"
)

// Outcome labels reported to metrics and logs.
const (
	OutcomeOK                = "ok"
	OutcomeNotFound          = "not_found"
	OutcomeAlreadyRegistered = "already_registered"
	OutcomeCapacityExceeded  = "capacity_exceeded"
	OutcomeNotRegistered     = "not_registered"
	OutcomeInvalidInput      = "invalid_input"
	OutcomeError             = "error"
)

// Email validation errors; both match activities.ErrInvalidInput.
var (
	ErrEmailRequired = fmt.Errorf("%w: email is required", activities.ErrInvalidInput)
	ErrEmailInvalid  = fmt.Errorf("%w: invalid email address", activities.ErrInvalidInput)
)

// Service applies enrollment rules on top of a Store. It holds no roster state.
type Service struct {
	store    Store
	recorder *metrics.Recorder
}

// NewService constructs a Service with the provided Store. recorder may be nil.
func NewService(store Store, recorder *metrics.Recorder) *Service {
	return &Service{store: store, recorder: recorder}
}

// ListActivities returns every activity with its current roster.
func (s *Service) ListActivities(ctx context.Context) ([]activities.Activity, error) {
	return s.store.ListAll(ctx)
}

// Occupancy reports roster sizes for the metrics gauges.
func (s *Service) Occupancy(ctx context.Context) ([]metrics.Occupancy, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]metrics.Occupancy, 0, len(items))
	for _, a := range items {
		out = append(out, metrics.Occupancy{
			Activity:     a.Name,
			Participants: len(a.Participants),
			Capacity:     a.MaxParticipants,
		})
	}
	return out, nil
}

// SignUp admits email to the named activity.
func (s *Service) SignUp(ctx context.Context, name, email string) error {
	email = strings.TrimSpace(email)
	err := ValidateEmail(email)
	if err == nil {
		err = s.store.Admit(ctx, name, email)
	}
	s.record(ctx, OpSignUp, name, email, err)
	return err
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, name, email string) error {
	email = strings.TrimSpace(email)
	var err error
	if email == "" {
		err = ErrEmailRequired
	} else {
		err = s.store.Remove(ctx, name, email)
	}
	s.record(ctx, OpUnregister, name, email, err)
	return err
}

// ValidateEmail accepts addresses with exactly one "@", non-empty local and
// domain parts and no whitespace. It wraps activities.ErrInvalidInput.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if strings.Count(email, "@") != 1 {
		return ErrEmailInvalid
	}
	local, domain, _ := strings.Cut(email, "@")
	if local == "" || domain == "" {
		return ErrEmailInvalid
	}
	if strings.IndexFunc(email, unicode.IsSpace) >= 0 {
		return ErrEmailInvalid
	}
	return nil
}

// Outcome maps an operation error to its metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, activities.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, activities.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, activities.ErrAlreadyRegistered):
		return OutcomeAlreadyRegistered
	case errors.Is(err, activities.ErrCapacityExceeded):
		return OutcomeCapacityExceeded
	case errors.Is(err, activities.ErrNotRegistered):
		return OutcomeNotRegistered
	default:
		return OutcomeError
	}
}

func (s *Service) record(ctx context.Context, op, name, email string, err error) {
	outcome := Outcome(err)
	s.recorder.RecordEnrollment(op, outcome)

	logger := logging.FromContext(ctx, nil)
	if outcome == OutcomeError {
		logging.Error(logger, "enrollment failed", err,
			logging.FieldOperation, op,
			logging.FieldActivity, name,
		)
		return
	}
	logging.Debug(logger, "enrollment",
		logging.FieldOperation, op,
		logging.FieldActivity, name,
		logging.FieldEmail, email,
		logging.FieldOutcome, outcome,
	)
}
