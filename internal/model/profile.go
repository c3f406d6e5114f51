package model

// Storage keys holding the profile fields.
const (
	KeyName   = "user_name"
	KeyEmail  = "user_email"
	KeyBio    = "user_bio"
	KeyAvatar = "user_avatar"
)

// PlaceholderAvatar is shown in place of a missing avatar.
const PlaceholderAvatar = "asset://icons/person.png"

// Profile is the editable user profile.
//
// An empty AvatarURI means no avatar has been acquired, or it was removed.
type Profile struct {
	Name      string
	Email     string
	Bio       string
	AvatarURI string
}

// HasAvatar reports whether an avatar reference is set.
func (p Profile) HasAvatar() bool {
	return p.AvatarURI != ""
}

// DisplayAvatar returns the avatar reference or the placeholder.
func (p Profile) DisplayAvatar() string {
	if p.HasAvatar() {
		return p.AvatarURI
	}
	return PlaceholderAvatar
}

// ProfileUpdate carries field edits; nil fields stay unchanged.
type ProfileUpdate struct {
	Name  *string
	Email *string
	Bio   *string
}
