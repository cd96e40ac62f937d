package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
)

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	createFn         func(ctx context.Context, video *model.Video) error
	getVisibleFn     func(ctx context.Context, id, actor uuid.UUID) (*model.VideoWithOwner, error)
	updateOwnedFn    func(ctx context.Context, id, owner uuid.UUID, changes model.VideoChanges) (*model.Video, error)
	togglePublishFn  func(ctx context.Context, id, owner uuid.UUID) (*model.Video, error)
	deleteOwnedFn    func(ctx context.Context, id, owner uuid.UUID) (*model.Video, error)
	incrementViewsFn func(ctx context.Context, id, actor uuid.UUID) (int64, error)
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetVisible(ctx context.Context, id, actor uuid.UUID) (*model.VideoWithOwner, error) {
	if m.getVisibleFn != nil {
		return m.getVisibleFn(ctx, id, actor)
	}
	return nil, repository.ErrNotFound
}

func (m *mockVideoRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, changes model.VideoChanges) (*model.Video, error) {
	if m.updateOwnedFn != nil {
		return m.updateOwnedFn(ctx, id, owner, changes)
	}
	return nil, repository.ErrNotFound
}

func (m *mockVideoRepository) TogglePublishOwned(ctx context.Context, id, owner uuid.UUID) (*model.Video, error) {
	if m.togglePublishFn != nil {
		return m.togglePublishFn(ctx, id, owner)
	}
	return nil, repository.ErrNotFound
}

func (m *mockVideoRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*model.Video, error) {
	if m.deleteOwnedFn != nil {
		return m.deleteOwnedFn(ctx, id, owner)
	}
	return nil, repository.ErrNotFound
}

func (m *mockVideoRepository) IncrementViews(ctx context.Context, id, actor uuid.UUID) (int64, error) {
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, id, actor)
	}
	return 0, repository.ErrNotFound
}

// mockViewRepository provides a configurable mock for ViewRepository.
type mockViewRepository struct {
	channelStatsFn       func(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error)
	channelVideosFn      func(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.Video], error)
	videoFeedFn          func(ctx context.Context, q repository.VideoFeedQuery, req pagination.Request) (pagination.Page[model.VideoWithOwner], error)
	videoCommentsFn      func(ctx context.Context, videoID uuid.UUID, req pagination.Request) (pagination.Page[model.CommentWithOwner], error)
	likedVideosFn        func(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.LikedVideo], error)
	subscribersFn        func(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error)
	subscribedChannelsFn func(ctx context.Context, subscriberID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error)
	userTweetsFn         func(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Tweet], error)
	userPlaylistsFn      func(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Playlist], error)
}

func (m *mockViewRepository) ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	if m.channelStatsFn != nil {
		return m.channelStatsFn(ctx, channelID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockViewRepository) ChannelVideos(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.Video], error) {
	if m.channelVideosFn != nil {
		return m.channelVideosFn(ctx, channelID, req)
	}
	return pagination.NewPage[model.Video](nil, 0, req), nil
}

func (m *mockViewRepository) VideoFeed(ctx context.Context, q repository.VideoFeedQuery, req pagination.Request) (pagination.Page[model.VideoWithOwner], error) {
	if m.videoFeedFn != nil {
		return m.videoFeedFn(ctx, q, req)
	}
	return pagination.NewPage[model.VideoWithOwner](nil, 0, req), nil
}

func (m *mockViewRepository) VideoComments(ctx context.Context, videoID uuid.UUID, req pagination.Request) (pagination.Page[model.CommentWithOwner], error) {
	if m.videoCommentsFn != nil {
		return m.videoCommentsFn(ctx, videoID, req)
	}
	return pagination.NewPage[model.CommentWithOwner](nil, 0, req), nil
}

func (m *mockViewRepository) LikedVideos(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.LikedVideo], error) {
	if m.likedVideosFn != nil {
		return m.likedVideosFn(ctx, userID, req)
	}
	return pagination.NewPage[model.LikedVideo](nil, 0, req), nil
}

func (m *mockViewRepository) Subscribers(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error) {
	if m.subscribersFn != nil {
		return m.subscribersFn(ctx, channelID, req)
	}
	return pagination.NewPage[model.SubscriberEntry](nil, 0, req), nil
}

func (m *mockViewRepository) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error) {
	if m.subscribedChannelsFn != nil {
		return m.subscribedChannelsFn(ctx, subscriberID, req)
	}
	return pagination.NewPage[model.SubscriberEntry](nil, 0, req), nil
}

func (m *mockViewRepository) UserTweets(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Tweet], error) {
	if m.userTweetsFn != nil {
		return m.userTweetsFn(ctx, userID, req)
	}
	return pagination.NewPage[model.Tweet](nil, 0, req), nil
}

func (m *mockViewRepository) UserPlaylists(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Playlist], error) {
	if m.userPlaylistsFn != nil {
		return m.userPlaylistsFn(ctx, userID, req)
	}
	return pagination.NewPage[model.Playlist](nil, 0, req), nil
}

// mockLikeRepository provides a configurable mock for LikeRepository.
type mockLikeRepository struct {
	deleteFn func(ctx context.Context, likedBy uuid.UUID, target model.LikeTarget) (bool, error)
	insertFn func(ctx context.Context, like *model.Like) error
}

func (m *mockLikeRepository) Delete(ctx context.Context, likedBy uuid.UUID, target model.LikeTarget) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, likedBy, target)
	}
	return false, nil
}

func (m *mockLikeRepository) Insert(ctx context.Context, like *model.Like) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, like)
	}
	return nil
}

// mockSubscriptionRepository provides a configurable mock for SubscriptionRepository.
type mockSubscriptionRepository struct {
	deleteFn func(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	insertFn func(ctx context.Context, sub *model.Subscription) error
}

func (m *mockSubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, subscriberID, channelID)
	}
	return false, nil
}

func (m *mockSubscriptionRepository) Insert(ctx context.Context, sub *model.Subscription) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, sub)
	}
	return nil
}

// mockCommentRepository provides a configurable mock for CommentRepository.
type mockCommentRepository struct {
	createFn      func(ctx context.Context, comment *model.Comment) error
	updateOwnedFn func(ctx context.Context, id, owner uuid.UUID, content string) (*model.Comment, error)
	deleteOwnedFn func(ctx context.Context, id, owner uuid.UUID) (*model.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, content string) (*model.Comment, error) {
	if m.updateOwnedFn != nil {
		return m.updateOwnedFn(ctx, id, owner, content)
	}
	return nil, repository.ErrNotFound
}

func (m *mockCommentRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*model.Comment, error) {
	if m.deleteOwnedFn != nil {
		return m.deleteOwnedFn(ctx, id, owner)
	}
	return nil, repository.ErrNotFound
}

// mockTweetRepository provides a configurable mock for TweetRepository.
type mockTweetRepository struct {
	createFn      func(ctx context.Context, tweet *model.Tweet) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*model.Tweet, error)
	updateOwnedFn func(ctx context.Context, id, owner uuid.UUID, content string) (*model.Tweet, error)
	deleteOwnedFn func(ctx context.Context, id, owner uuid.UUID) (*model.Tweet, error)
}

func (m *mockTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	if m.createFn != nil {
		return m.createFn(ctx, tweet)
	}
	return nil
}

func (m *mockTweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTweetRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, content string) (*model.Tweet, error) {
	if m.updateOwnedFn != nil {
		return m.updateOwnedFn(ctx, id, owner, content)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTweetRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*model.Tweet, error) {
	if m.deleteOwnedFn != nil {
		return m.deleteOwnedFn(ctx, id, owner)
	}
	return nil, repository.ErrNotFound
}

// mockUserRepository provides a configurable mock for UserRepository.
type mockUserRepository struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*model.User, error)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.User{ID: id, Username: "user"}, nil
}

// mockMediaStore provides a configurable mock for MediaStore and
// ThumbnailExtractor. Removed URLs are recorded.
type mockMediaStore struct {
	storeFn     func(ctx context.Context, obj repository.LocalObject) (*repository.StoredMedia, error)
	removeFn    func(ctx context.Context, url string) error
	thumbnailFn func(ctx context.Context, video repository.LocalObject) (*repository.LocalObject, error)

	mu      sync.Mutex
	removed []string
}

func (m *mockMediaStore) Store(ctx context.Context, obj repository.LocalObject) (*repository.StoredMedia, error) {
	if m.storeFn != nil {
		return m.storeFn(ctx, obj)
	}
	return &repository.StoredMedia{URL: "http://cdn/" + obj.Path}, nil
}

func (m *mockMediaStore) Remove(ctx context.Context, url string) error {
	if m.removeFn != nil {
		if err := m.removeFn(ctx, url); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.removed = append(m.removed, url)
	m.mu.Unlock()
	return nil
}

func (m *mockMediaStore) Thumbnail(ctx context.Context, video repository.LocalObject) (*repository.LocalObject, error) {
	if m.thumbnailFn != nil {
		return m.thumbnailFn(ctx, video)
	}
	return &repository.LocalObject{Path: "extracted.jpg", ContentType: "image/jpeg"}, nil
}

func (m *mockMediaStore) removedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removed...)
}

// mockMessageQueue provides a configurable mock for MessageQueue.
type mockMessageQueue struct {
	publishFn func(ctx context.Context, task repository.MediaCleanupTask) error
	published []repository.MediaCleanupTask
}

func (m *mockMessageQueue) PublishMediaCleanup(ctx context.Context, task repository.MediaCleanupTask) error {
	m.published = append(m.published, task)
	if m.publishFn != nil {
		return m.publishFn(ctx, task)
	}
	return nil
}

func (m *mockMessageQueue) ConsumeMediaCleanup(ctx context.Context, handler func(task repository.MediaCleanupTask) error) error {
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockMessageQueue) Close() error {
	return nil
}

// mockVideoCache is an in-memory VideoCache with per-video generations
// that records calls.
type mockVideoCache struct {
	mu       sync.Mutex
	data     map[uuid.UUID]*model.VideoWithOwner
	versions map[uuid.UUID]int64
	getErr   error
	gets     int
	deletes  int
}

func newMockVideoCache() *mockVideoCache {
	return &mockVideoCache{
		data:     make(map[uuid.UUID]*model.VideoWithOwner),
		versions: make(map[uuid.UUID]int64),
	}
}

func (m *mockVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.VideoWithOwner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[videoID], nil
}

func (m *mockVideoCache) Version(ctx context.Context, videoID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions[videoID], nil
}

func (m *mockVideoCache) Set(ctx context.Context, video *model.VideoWithOwner, ttl time.Duration, version int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !video.IsPublished || m.versions[video.ID] != version {
		return false, nil
	}
	m.data[video.ID] = video
	return true, nil
}

func (m *mockVideoCache) Invalidate(ctx context.Context, videoID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	m.versions[videoID]++
	delete(m.data, videoID)
	return nil
}

func (m *mockVideoCache) cached(videoID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[videoID]
	return ok
}
