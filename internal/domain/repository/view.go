package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/pagination"
)

// VideoSort is a sortable video feed field.
type VideoSort string

const (
	SortByViews    VideoSort = "views"
	SortByDuration VideoSort = "duration"
	SortByTitle    VideoSort = "title"
)

// ParseVideoSort maps a requested field onto the allow-list, falling back to views.
func ParseVideoSort(field string) VideoSort {
	switch VideoSort(field) {
	case SortByViews, SortByDuration, SortByTitle:
		return VideoSort(field)
	default:
		return SortByViews
	}
}

// VideoFeedQuery filters and orders the public video feed.
type VideoFeedQuery struct {
	// Search matches title or description case-insensitively when non-empty.
	Search  string
	OwnerID uuid.UUID
	SortBy  VideoSort
	Desc    bool
}

// ViewRepository builds read-only aggregation views. Every paginated view
// reads its total and its page from the same snapshot.
type ViewRepository interface {
	// ChannelStats returns ErrNotFound for an unknown channel.
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error)
	ChannelVideos(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.Video], error)

	VideoFeed(ctx context.Context, q VideoFeedQuery, req pagination.Request) (pagination.Page[model.VideoWithOwner], error)
	VideoComments(ctx context.Context, videoID uuid.UUID, req pagination.Request) (pagination.Page[model.CommentWithOwner], error)
	LikedVideos(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.LikedVideo], error)

	Subscribers(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error)
	SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error)

	UserTweets(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Tweet], error)
	UserPlaylists(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Playlist], error)
}
