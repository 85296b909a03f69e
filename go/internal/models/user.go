package models

// User represents a league member on the fantasy platform
type User struct {
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"display_name"`
	Avatar      string       `json:"avatar,omitempty"`
	Metadata    UserMetadata `json:"metadata"`
}

// UserMetadata holds the free-form per-league user settings we care about.
type UserMetadata struct {
	TeamName string `json:"team_name,omitempty"`
}

// Name returns the display name, falling back to the username.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
