package model

import "github.com/google/uuid"

// ChannelStats aggregates a channel's audience and published catalogue.
type ChannelStats struct {
	ChannelID        uuid.UUID
	Username         string
	FullName         string
	AvatarURL        string
	CoverImageURL    string
	TotalVideos      int64
	TotalViews       int64
	TotalLikes       int64
	TotalSubscribers int64
}
