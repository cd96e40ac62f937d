package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

type mockVideoService struct {
	publishVideoFn  func(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error)
	getVideoFn      func(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error)
	updateVideoFn   func(ctx context.Context, actor, videoID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error)
	togglePublishFn func(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error)
	deleteVideoFn   func(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error)
	recordViewFn    func(ctx context.Context, actor, videoID uuid.UUID) (int64, error)
	listVideosFn    func(ctx context.Context, query repository.VideoFeedQuery, req pagination.Request) (pagination.Page[model.VideoWithOwner], error)
}

func (m *mockVideoService) PublishVideo(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error) {
	if m.publishVideoFn != nil {
		return m.publishVideoFn(ctx, input)
	}
	return nil, nil
}

func (m *mockVideoService) GetVideo(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, actor, videoID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockVideoService) UpdateVideo(ctx context.Context, actor, videoID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error) {
	if m.updateVideoFn != nil {
		return m.updateVideoFn(ctx, actor, videoID, input)
	}
	return &model.Video{ID: videoID}, nil
}

func (m *mockVideoService) TogglePublish(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error) {
	if m.togglePublishFn != nil {
		return m.togglePublishFn(ctx, actor, videoID)
	}
	return &model.Video{ID: videoID}, nil
}

func (m *mockVideoService) DeleteVideo(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error) {
	if m.deleteVideoFn != nil {
		return m.deleteVideoFn(ctx, actor, videoID)
	}
	return &model.Video{ID: videoID}, nil
}

func (m *mockVideoService) RecordView(ctx context.Context, actor, videoID uuid.UUID) (int64, error) {
	if m.recordViewFn != nil {
		return m.recordViewFn(ctx, actor, videoID)
	}
	return 1, nil
}

func (m *mockVideoService) ListVideos(ctx context.Context, query repository.VideoFeedQuery, req pagination.Request) (pagination.Page[model.VideoWithOwner], error) {
	if m.listVideosFn != nil {
		return m.listVideosFn(ctx, query, req)
	}
	return pagination.NewPage[model.VideoWithOwner](nil, 0, req), nil
}

type mockCommentService struct {
	addFn    func(ctx context.Context, actor, videoID uuid.UUID, content string) (*model.Comment, error)
	updateFn func(ctx context.Context, actor, commentID uuid.UUID, content string) (*model.Comment, error)
	deleteFn func(ctx context.Context, actor, commentID uuid.UUID) (*model.Comment, error)
	listFn   func(ctx context.Context, videoID uuid.UUID, req pagination.Request) (pagination.Page[model.CommentWithOwner], error)
}

func (m *mockCommentService) AddComment(ctx context.Context, actor, videoID uuid.UUID, content string) (*model.Comment, error) {
	if m.addFn != nil {
		return m.addFn(ctx, actor, videoID, content)
	}
	return &model.Comment{ID: uuid.New(), OwnerID: actor, VideoID: videoID, Content: content}, nil
}

func (m *mockCommentService) UpdateComment(ctx context.Context, actor, commentID uuid.UUID, content string) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, actor, commentID, content)
	}
	return &model.Comment{ID: commentID, OwnerID: actor, Content: content}, nil
}

func (m *mockCommentService) DeleteComment(ctx context.Context, actor, commentID uuid.UUID) (*model.Comment, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, actor, commentID)
	}
	return &model.Comment{ID: commentID, OwnerID: actor}, nil
}

func (m *mockCommentService) VideoComments(ctx context.Context, videoID uuid.UUID, req pagination.Request) (pagination.Page[model.CommentWithOwner], error) {
	if m.listFn != nil {
		return m.listFn(ctx, videoID, req)
	}
	return pagination.NewPage[model.CommentWithOwner](nil, 0, req), nil
}

type mockLikeService struct {
	toggleFn      func(ctx context.Context, actor uuid.UUID, target model.LikeTarget) (usecase.ToggleResult[model.Like], error)
	likedVideosFn func(ctx context.Context, actor uuid.UUID, req pagination.Request) (pagination.Page[model.LikedVideo], error)
}

func (m *mockLikeService) ToggleLike(ctx context.Context, actor uuid.UUID, target model.LikeTarget) (usecase.ToggleResult[model.Like], error) {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, actor, target)
	}
	return usecase.ToggleResult[model.Like]{State: usecase.ToggleOff}, nil
}

func (m *mockLikeService) LikedVideos(ctx context.Context, actor uuid.UUID, req pagination.Request) (pagination.Page[model.LikedVideo], error) {
	if m.likedVideosFn != nil {
		return m.likedVideosFn(ctx, actor, req)
	}
	return pagination.NewPage[model.LikedVideo](nil, 0, req), nil
}

type mockSubscriptionService struct {
	toggleFn      func(ctx context.Context, actor, channelID uuid.UUID) (usecase.ToggleResult[model.Subscription], error)
	subscribersFn func(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error)
	channelsFn    func(ctx context.Context, subscriberID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error)
}

func (m *mockSubscriptionService) ToggleSubscription(ctx context.Context, actor, channelID uuid.UUID) (usecase.ToggleResult[model.Subscription], error) {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, actor, channelID)
	}
	return usecase.ToggleResult[model.Subscription]{State: usecase.ToggleOff}, nil
}

func (m *mockSubscriptionService) Subscribers(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error) {
	if m.subscribersFn != nil {
		return m.subscribersFn(ctx, channelID, req)
	}
	return pagination.NewPage[model.SubscriberEntry](nil, 0, req), nil
}

func (m *mockSubscriptionService) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error) {
	if m.channelsFn != nil {
		return m.channelsFn(ctx, subscriberID, req)
	}
	return pagination.NewPage[model.SubscriberEntry](nil, 0, req), nil
}

type mockTweetService struct {
	createFn func(ctx context.Context, actor uuid.UUID, content string) (*model.Tweet, error)
	getFn    func(ctx context.Context, tweetID uuid.UUID) (*model.Tweet, error)
	updateFn func(ctx context.Context, actor, tweetID uuid.UUID, content string) (*model.Tweet, error)
	deleteFn func(ctx context.Context, actor, tweetID uuid.UUID) (*model.Tweet, error)
	listFn   func(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Tweet], error)
}

func (m *mockTweetService) CreateTweet(ctx context.Context, actor uuid.UUID, content string) (*model.Tweet, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actor, content)
	}
	return &model.Tweet{ID: uuid.New(), OwnerID: actor, Content: content}, nil
}

func (m *mockTweetService) GetTweet(ctx context.Context, tweetID uuid.UUID) (*model.Tweet, error) {
	if m.getFn != nil {
		return m.getFn(ctx, tweetID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTweetService) UpdateTweet(ctx context.Context, actor, tweetID uuid.UUID, content string) (*model.Tweet, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, actor, tweetID, content)
	}
	return &model.Tweet{ID: tweetID, OwnerID: actor, Content: content}, nil
}

func (m *mockTweetService) DeleteTweet(ctx context.Context, actor, tweetID uuid.UUID) (*model.Tweet, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, actor, tweetID)
	}
	return &model.Tweet{ID: tweetID, OwnerID: actor}, nil
}

func (m *mockTweetService) UserTweets(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Tweet], error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, req)
	}
	return pagination.NewPage[model.Tweet](nil, 0, req), nil
}

type mockPlaylistService struct {
	createFn      func(ctx context.Context, actor uuid.UUID, name, description string) (*model.Playlist, error)
	getFn         func(ctx context.Context, actor, playlistID uuid.UUID) (*model.Playlist, error)
	updateFn      func(ctx context.Context, actor, playlistID uuid.UUID, name, description string) (*model.Playlist, error)
	deleteFn      func(ctx context.Context, actor, playlistID uuid.UUID) (*model.Playlist, error)
	addVideoFn    func(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*model.Playlist, error)
	removeVideoFn func(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*model.Playlist, error)
	listFn        func(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Playlist], error)
}

func (m *mockPlaylistService) CreatePlaylist(ctx context.Context, actor uuid.UUID, name, description string) (*model.Playlist, error) {
	if m.createFn != nil {
		return m.createFn(ctx, actor, name, description)
	}
	return &model.Playlist{ID: uuid.New(), OwnerID: actor, Name: name, Description: description}, nil
}

func (m *mockPlaylistService) GetPlaylist(ctx context.Context, actor, playlistID uuid.UUID) (*model.Playlist, error) {
	if m.getFn != nil {
		return m.getFn(ctx, actor, playlistID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockPlaylistService) UpdatePlaylist(ctx context.Context, actor, playlistID uuid.UUID, name, description string) (*model.Playlist, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, actor, playlistID, name, description)
	}
	return &model.Playlist{ID: playlistID, OwnerID: actor, Name: name}, nil
}

func (m *mockPlaylistService) DeletePlaylist(ctx context.Context, actor, playlistID uuid.UUID) (*model.Playlist, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, actor, playlistID)
	}
	return &model.Playlist{ID: playlistID, OwnerID: actor}, nil
}

func (m *mockPlaylistService) AddVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	if m.addVideoFn != nil {
		return m.addVideoFn(ctx, actor, playlistID, videoID)
	}
	return &model.Playlist{ID: playlistID, OwnerID: actor, VideoIDs: []uuid.UUID{videoID}}, nil
}

func (m *mockPlaylistService) RemoveVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	if m.removeVideoFn != nil {
		return m.removeVideoFn(ctx, actor, playlistID, videoID)
	}
	return &model.Playlist{ID: playlistID, OwnerID: actor, VideoIDs: []uuid.UUID{}}, nil
}

func (m *mockPlaylistService) UserPlaylists(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Playlist], error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, req)
	}
	return pagination.NewPage[model.Playlist](nil, 0, req), nil
}

type mockDashboardService struct {
	statsFn  func(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error)
	videosFn func(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.Video], error)
}

func (m *mockDashboardService) ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, channelID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockDashboardService) ChannelVideos(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.Video], error) {
	if m.videosFn != nil {
		return m.videosFn(ctx, channelID, req)
	}
	return pagination.NewPage[model.Video](nil, 0, req), nil
}
