package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

const timeFormat = time.RFC3339

type UserSummaryResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

type VideoResponse struct {
	ID          string               `json:"id"`
	OwnerID     string               `json:"ownerId"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	VideoFile   string               `json:"videoFile"`
	Thumbnail   string               `json:"thumbnail"`
	Duration    float64              `json:"duration"`
	Views       int64                `json:"views"`
	IsPublished bool                 `json:"isPublished"`
	Owner       *UserSummaryResponse `json:"owner,omitempty"`
	CreatedAt   string               `json:"createdAt"`
	UpdatedAt   string               `json:"updatedAt"`
}

type CommentResponse struct {
	ID        string               `json:"id"`
	VideoID   string               `json:"videoId"`
	OwnerID   string               `json:"ownerId"`
	Content   string               `json:"content"`
	Owner     *UserSummaryResponse `json:"owner,omitempty"`
	CreatedAt string               `json:"createdAt"`
	UpdatedAt string               `json:"updatedAt"`
}

type TweetResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"ownerId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type PlaylistResponse struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Videos      []string `json:"videos"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type LikedVideoResponse struct {
	LikeID  string `json:"likeId"`
	LikedAt string `json:"likedAt"`
	Video   struct {
		ID          string `json:"id"`
		VideoFile   string `json:"videoFile"`
		Thumbnail   string `json:"thumbnail"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Views       int64  `json:"views"`
	} `json:"likedVideo"`
}

type SubscriberEntryResponse struct {
	SubscriptionID string              `json:"subscriptionId"`
	User           UserSummaryResponse `json:"user"`
	SubscribedAt   string              `json:"subscribedAt"`
}

type ChannelStatsResponse struct {
	ChannelID        string `json:"channelId"`
	Username         string `json:"username"`
	FullName         string `json:"fullName"`
	Avatar           string `json:"avatar"`
	CoverImage       string `json:"coverImage"`
	TotalVideos      int64  `json:"totalVideos"`
	TotalViews       int64  `json:"totalViews"`
	TotalLikes       int64  `json:"totalLikes"`
	TotalSubscribers int64  `json:"totalSubscribers"`
}

// ToggleResponse reports the relationship state after a toggle. Record is the
// created relationship and is omitted when the toggle removed it.
type ToggleResponse struct {
	State  string `json:"state"`
	Record any    `json:"record,omitempty"`
}

type LikeResponse struct {
	ID         string `json:"id"`
	LikedBy    string `json:"likedBy"`
	TargetKind string `json:"targetKind"`
	TargetID   string `json:"targetId"`
	CreatedAt  string `json:"createdAt"`
}

type SubscriptionResponse struct {
	ID           string `json:"id"`
	SubscriberID string `json:"subscriberId"`
	ChannelID    string `json:"channelId"`
	CreatedAt    string `json:"createdAt"`
}

func toUserSummary(u model.UserSummary) UserSummaryResponse {
	return UserSummaryResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.AvatarURL,
	}
}

func toVideoResponse(v model.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID.String(),
		OwnerID:     v.OwnerID.String(),
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoURL,
		Thumbnail:   v.ThumbnailURL,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt.Format(timeFormat),
		UpdatedAt:   v.UpdatedAt.Format(timeFormat),
	}
}

func toVideoWithOwnerResponse(v model.VideoWithOwner) VideoResponse {
	resp := toVideoResponse(v.Video)
	owner := toUserSummary(v.Owner)
	resp.Owner = &owner
	return resp
}

func toCommentResponse(c model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		VideoID:   c.VideoID.String(),
		OwnerID:   c.OwnerID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(timeFormat),
		UpdatedAt: c.UpdatedAt.Format(timeFormat),
	}
}

func toCommentWithOwnerResponse(c model.CommentWithOwner) CommentResponse {
	resp := toCommentResponse(c.Comment)
	owner := toUserSummary(c.Owner)
	resp.Owner = &owner
	return resp
}

func toTweetResponse(t model.Tweet) TweetResponse {
	return TweetResponse{
		ID:        t.ID.String(),
		OwnerID:   t.OwnerID.String(),
		Content:   t.Content,
		CreatedAt: t.CreatedAt.Format(timeFormat),
		UpdatedAt: t.UpdatedAt.Format(timeFormat),
	}
}

func toPlaylistResponse(p model.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:          p.ID.String(),
		OwnerID:     p.OwnerID.String(),
		Name:        p.Name,
		Description: p.Description,
		Videos:      idStrings(p.VideoIDs),
		CreatedAt:   p.CreatedAt.Format(timeFormat),
		UpdatedAt:   p.UpdatedAt.Format(timeFormat),
	}
}

func toLikedVideoResponse(l model.LikedVideo) LikedVideoResponse {
	var resp LikedVideoResponse
	resp.LikeID = l.LikeID.String()
	resp.LikedAt = l.LikedAt.Format(timeFormat)
	resp.Video.ID = l.Video.ID.String()
	resp.Video.VideoFile = l.Video.VideoURL
	resp.Video.Thumbnail = l.Video.ThumbnailURL
	resp.Video.Title = l.Video.Title
	resp.Video.Description = l.Video.Description
	resp.Video.Views = l.Video.Views
	return resp
}

func toSubscriberEntryResponse(e model.SubscriberEntry) SubscriberEntryResponse {
	return SubscriberEntryResponse{
		SubscriptionID: e.SubscriptionID.String(),
		User:           toUserSummary(e.User),
		SubscribedAt:   e.SubscribedAt.Format(timeFormat),
	}
}

func toChannelStatsResponse(s *model.ChannelStats) ChannelStatsResponse {
	return ChannelStatsResponse{
		ChannelID:        s.ChannelID.String(),
		Username:         s.Username,
		FullName:         s.FullName,
		Avatar:           s.AvatarURL,
		CoverImage:       s.CoverImageURL,
		TotalVideos:      s.TotalVideos,
		TotalViews:       s.TotalViews,
		TotalLikes:       s.TotalLikes,
		TotalSubscribers: s.TotalSubscribers,
	}
}

func toLikeResponse(l *model.Like) LikeResponse {
	return LikeResponse{
		ID:         l.ID.String(),
		LikedBy:    l.LikedBy.String(),
		TargetKind: l.Target.Kind().String(),
		TargetID:   l.Target.ID().String(),
		CreatedAt:  l.CreatedAt.Format(timeFormat),
	}
}

func toSubscriptionResponse(s *model.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:           s.ID.String(),
		SubscriberID: s.SubscriberID.String(),
		ChannelID:    s.ChannelID.String(),
		CreatedAt:    s.CreatedAt.Format(timeFormat),
	}
}

// toToggleResponse renders a toggle outcome, converting the record only when
// one was created.
func toToggleResponse[T, R any](res usecase.ToggleResult[T], convert func(*T) R) ToggleResponse {
	resp := ToggleResponse{State: string(res.State)}
	if res.Record != nil {
		resp.Record = convert(res.Record)
	}
	return resp
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
