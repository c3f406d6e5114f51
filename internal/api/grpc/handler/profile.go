package handler

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/gophkeeper-profile/internal/logger"
	"github.com/dtroode/gophkeeper-profile/internal/model"
	"github.com/dtroode/gophkeeper-profile/internal/service"
)

// ProfileEditor is the editing session driven by the control API.
type ProfileEditor interface {
	Profile() model.Profile
	Update(u model.ProfileUpdate) model.Profile
	PickImage(ctx context.Context, selection string) (service.Acquisition, error)
	TakePhoto(ctx context.Context) (service.Acquisition, error)
	RemovePhoto(ctx context.Context) error
	Save(ctx context.Context) error
}

// NoticeSource returns notices emitted since the previous call.
type NoticeSource interface {
	Drain() []model.Notice
}

// PermissionSetter records the user's answer to a media access prompt.
type PermissionSetter interface {
	Set(kind model.MediaKind, granted bool)
}

var _ ProfileServer = (*Profile)(nil)

// Profile implements the profile.Profile control API.
type Profile struct {
	editor         ProfileEditor
	notices        NoticeSource
	permissions    PermissionSetter
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProfile creates a new Profile handler instance.
func NewProfile(
	editor ProfileEditor,
	notices NoticeSource,
	permissions PermissionSetter,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		editor:         editor,
		notices:        notices,
		permissions:    permissions,
		contextManager: contextManager,
		logger:         logger,
	}
}

// GetProfile returns the in-memory profile.
func (h *Profile) GetProfile(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return profileStruct(h.editor.Profile())
}

// UpdateProfile applies the name, email and bio fields present in the
// request. Other fields are rejected.
func (h *Profile) UpdateProfile(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var u model.ProfileUpdate
	for field, v := range in.GetFields() {
		sv, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "field %q must be a string", field)
		}
		value := sv.StringValue
		switch field {
		case "name":
			u.Name = &value
		case "email":
			u.Email = &value
		case "bio":
			u.Bio = &value
		default:
			return nil, status.Errorf(codes.InvalidArgument, "unknown field %q", field)
		}
	}

	p := h.editor.Update(u)
	h.logger.DebugContext(ctx, "profile updated", "subject", h.subject(ctx))
	return profileStruct(p)
}

// SaveProfile persists the in-memory profile.
func (h *Profile) SaveProfile(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if err := h.editor.Save(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to save profile", "error", err, "subject", h.subject(ctx))
		return nil, handleError(err)
	}
	return profileStruct(h.editor.Profile())
}

// PickAvatar runs the gallery flow with the request's "selection" field.
// An empty selection cancels the picker.
func (h *Profile) PickAvatar(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var selection string
	if v, ok := in.GetFields()["selection"]; ok {
		sv, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, status.Error(codes.InvalidArgument, `field "selection" must be a string`)
		}
		selection = sv.StringValue
	}

	acq, err := h.editor.PickImage(ctx, selection)
	if err != nil {
		h.logger.WarnContext(ctx, "gallery flow failed", "error", err)
		return nil, handleError(err)
	}
	return h.acquisitionStruct(acq)
}

// CaptureAvatar runs the camera flow.
func (h *Profile) CaptureAvatar(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	acq, err := h.editor.TakePhoto(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "camera flow failed", "error", err)
		return nil, handleError(err)
	}
	return h.acquisitionStruct(acq)
}

// RemoveAvatar clears the avatar and deletes it from storage.
func (h *Profile) RemoveAvatar(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if err := h.editor.RemovePhoto(ctx); err != nil {
		var storageErr *model.StorageError
		if errors.As(err, &storageErr) {
			return nil, status.Error(codes.Unavailable, "could not remove profile photo")
		}
		return nil, handleError(err)
	}
	return profileStruct(h.editor.Profile())
}

// DrainNotices returns and clears the buffered notices.
func (h *Profile) DrainNotices(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	notices := h.notices.Drain()

	list := make([]any, 0, len(notices))
	for _, n := range notices {
		list = append(list, map[string]any{
			"level":   string(n.Level),
			"title":   n.Title,
			"message": n.Message,
			"at":      n.At.UTC().Format(time.RFC3339Nano),
		})
	}

	out, err := structpb.NewStruct(map[string]any{"notices": list})
	if err != nil {
		return nil, handleError(err)
	}
	return out, nil
}

// SetPermission records whether access to "kind" is "granted". It applies
// to flows started after the call.
func (h *Profile) SetPermission(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()

	kindValue, ok := fields["kind"].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, `field "kind" must be a string`)
	}
	kind := model.MediaKind(kindValue.StringValue)
	if kind != model.MediaKindGallery && kind != model.MediaKindCamera {
		return nil, handleError(model.ErrUnknownMediaKind)
	}
	grantedValue, ok := fields["granted"].GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, `field "granted" must be a bool`)
	}

	h.permissions.Set(kind, grantedValue.BoolValue)
	h.logger.InfoContext(ctx, "Profile handler: permission changed",
		"kind", kind, "granted", grantedValue.BoolValue, "subject", h.subject(ctx))

	out, err := structpb.NewStruct(map[string]any{
		"kind":    string(kind),
		"granted": grantedValue.BoolValue,
	})
	if err != nil {
		return nil, handleError(err)
	}
	return out, nil
}

func (h *Profile) acquisitionStruct(acq service.Acquisition) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(map[string]any{
		"kind":    string(acq.Kind),
		"state":   string(acq.State),
		"uri":     acq.URI,
		"profile": profileMap(h.editor.Profile()),
	})
	if err != nil {
		return nil, handleError(err)
	}
	return out, nil
}

func (h *Profile) subject(ctx context.Context) string {
	subject, _ := h.contextManager.GetSubjectFromContext(ctx)
	return subject
}

func profileMap(p model.Profile) map[string]any {
	m := map[string]any{
		"name":           p.Name,
		"email":          p.Email,
		"bio":            p.Bio,
		"display_avatar": p.DisplayAvatar(),
	}
	if p.HasAvatar() {
		m["avatar_uri"] = p.AvatarURI
	}
	return m
}

func profileStruct(p model.Profile) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(profileMap(p))
	if err != nil {
		return nil, handleError(err)
	}
	return out, nil
}
