package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dtroode/gophkeeper-profile/internal/logger"
	"github.com/dtroode/gophkeeper-profile/internal/model"
)

// AcquisitionState is a state of the avatar acquisition flow.
type AcquisitionState string

const (
	StateIdle                AcquisitionState = "idle"
	StatePermissionRequested AcquisitionState = "permission_requested"
	StateGranted             AcquisitionState = "granted"
	StateDenied              AcquisitionState = "denied"
	StatePickerActive        AcquisitionState = "picker_active"
	StateCommitted           AcquisitionState = "committed"
	StateCancelled           AcquisitionState = "cancelled"
)

// Acquisition is the outcome of one acquisition flow.
// URI is set only in StateCommitted.
type Acquisition struct {
	Kind  model.MediaKind
	State AcquisitionState
	URI   string
}

// Committed reports whether a new avatar reference was obtained.
func (a Acquisition) Committed() bool {
	return a.State == StateCommitted
}

var transitions = map[AcquisitionState][]AcquisitionState{
	StateIdle:                {StatePermissionRequested},
	StatePermissionRequested: {StateGranted, StateDenied, StateIdle},
	StateDenied:              {StateIdle},
	StateGranted:             {StatePickerActive},
	StatePickerActive:        {StateCommitted, StateCancelled, StateIdle},
	StateCommitted:           {StateIdle},
	StateCancelled:           {StateIdle},
}

// Avatar runs the permission-gated acquisition flow against the gallery and
// camera surfaces. It never touches durable storage.
type Avatar struct {
	permissions model.PermissionRequester
	surfaces    map[model.MediaKind]model.MediaSurface
	notifier    model.Notifier
	logger      *logger.Logger
	now         func() time.Time

	mu    sync.Mutex
	state AcquisitionState
}

func NewAvatar(
	permissions model.PermissionRequester,
	gallery model.MediaSurface,
	camera model.MediaSurface,
	notifier model.Notifier,
	logger *logger.Logger,
) *Avatar {
	return &Avatar{
		permissions: permissions,
		surfaces: map[model.MediaKind]model.MediaSurface{
			model.MediaKindGallery: gallery,
			model.MediaKindCamera:  camera,
		},
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		state:    StateIdle,
	}
}

// State returns the current flow state.
func (a *Avatar) State() AcquisitionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// RequestPermission asks for access to kind. A denial is surfaced to the
// user, returns the flow to idle and yields model.ErrPermissionDenied.
func (a *Avatar) RequestPermission(ctx context.Context, kind model.MediaKind) (model.PermissionStatus, error) {
	if _, ok := a.surfaces[kind]; !ok {
		return model.PermissionDenied, fmt.Errorf("%w: %s", model.ErrUnknownMediaKind, kind)
	}

	a.begin()
	a.transition(StatePermissionRequested)

	status, err := a.permissions.RequestPermission(ctx, kind)
	if err != nil {
		a.transition(StateIdle)
		return model.PermissionDenied, fmt.Errorf("failed to request %s permission: %w", kind, err)
	}
	if status != model.PermissionGranted {
		a.transition(StateDenied)
		a.transition(StateIdle)
		a.notify(ctx, model.NoticeInfo, "Permission required", fmt.Sprintf("We need access to your %s", kind))
		return model.PermissionDenied, model.ErrPermissionDenied
	}

	a.transition(StateGranted)
	return model.PermissionGranted, nil
}

// Acquire runs the whole flow for kind. Selection is forwarded to the
// surface; selection surfaces treat an empty selection as a dismissal.
//
// Denied permission never launches the surface. A cancelled launch returns
// an Acquisition in StateCancelled and no error.
func (a *Avatar) Acquire(ctx context.Context, kind model.MediaKind, selection string) (Acquisition, error) {
	if _, err := a.RequestPermission(ctx, kind); err != nil {
		return Acquisition{Kind: kind, State: StateIdle}, err
	}

	a.transition(StatePickerActive)
	res, err := a.surfaces[kind].Launch(ctx, model.PickRequest{
		Options:   model.AvatarPickerOptions(kind),
		Selection: selection,
	})
	if err != nil {
		a.transition(StateIdle)
		a.logger.ErrorContext(ctx, "Avatar service: failed to acquire avatar", "error", err.Error(), "kind", kind)
		a.notify(ctx, model.NoticeError, "Error", fmt.Sprintf("Could not get an image from your %s", kind))
		return Acquisition{Kind: kind, State: StateIdle}, fmt.Errorf("failed to launch %s: %w", kind, err)
	}

	if res.Canceled || len(res.Assets) == 0 {
		a.transition(StateCancelled)
		return Acquisition{Kind: kind, State: StateCancelled}, nil
	}

	a.transition(StateCommitted)
	return Acquisition{Kind: kind, State: StateCommitted, URI: res.Assets[0].URI}, nil
}

// begin resets a finished flow so a new one can start.
func (a *Avatar) begin() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateIdle {
		a.state = StateIdle
	}
}

func (a *Avatar) transition(to AcquisitionState) {
	a.mu.Lock()
	from := a.state
	allowed := false
	for _, next := range transitions[from] {
		if next == to {
			allowed = true
			break
		}
	}
	if allowed {
		a.state = to
	}
	a.mu.Unlock()

	if !allowed {
		a.logger.Warn("Avatar service: invalid state transition", "from", from, "to", to)
		return
	}
	a.logger.Debug("Avatar service: state changed", "from", from, "to", to)
}

func (a *Avatar) notify(ctx context.Context, level model.NoticeLevel, title, message string) {
	a.notifier.Notify(ctx, model.Notice{Level: level, Title: title, Message: message, At: a.now()})
}
