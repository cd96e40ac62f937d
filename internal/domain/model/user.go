package model

import "github.com/google/uuid"

// User is the public profile of an identified principal.
// Users are owned by the identity provider; this core only reads them.
type User struct {
	ID            uuid.UUID
	Username      string
	FullName      string
	AvatarURL     string
	CoverImageURL string
}

// UserSummary is the projection every view uses when it embeds a user.
type UserSummary struct {
	ID        uuid.UUID
	Username  string
	FullName  string
	AvatarURL string
}

// Summary projects the user onto the shared summary shape.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}
