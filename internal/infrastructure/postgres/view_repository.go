package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
	"github.com/hszk-dev/vidtube/internal/pagination"
	"github.com/hszk-dev/vidtube/internal/pipeline"
)

// View names used as metric labels.
const (
	viewChannelStats       = "channel_stats"
	viewChannelVideos      = "channel_videos"
	viewVideoFeed          = "video_feed"
	viewVideoComments      = "video_comments"
	viewLikedVideos        = "liked_videos"
	viewSubscribers        = "subscribers"
	viewSubscribedChannels = "subscribed_channels"
	viewUserTweets         = "user_tweets"
	viewUserPlaylists      = "user_playlists"
)

var (
	videoProjection = []string{
		"v.id", "v.owner_id", "v.title", "v.description", "v.video_url", "v.thumbnail_url",
		"v.duration", "v.views", "v.is_published", "v.created_at", "v.updated_at",
	}
	ownerProjection = []string{"u.username", "u.full_name", "u.avatar_url"}
)

// ViewRepository implements repository.ViewRepository. Each view is one
// pipeline executed by the database.
type ViewRepository struct {
	db     DBTX
	readTx readTxFunc
}

// NewViewRepository creates a ViewRepository whose paginated views read
// their count and page inside one repeatable-read transaction.
func NewViewRepository(db TxDB) *ViewRepository {
	return &ViewRepository{db: db, readTx: snapshotReader(db)}
}

// likeCounts groups video likes per video.
func likeCounts() pipeline.Pipeline {
	return pipeline.From("likes").
		Match(sq.NotEq{"video_id": nil}).
		Project("video_id", "COUNT(*) AS like_count").
		Group("video_id")
}

// channelStatsPipeline aggregates a channel's published videos, their likes
// and its subscribers onto the channel's user row.
func channelStatsPipeline(channelID uuid.UUID) pipeline.Pipeline {
	published := pipeline.From("videos v").
		LookupSub(likeCounts(), "lc", "lc.video_id = v.id").
		Match(sq.Expr("v.owner_id = u.id")).
		Match(sq.Eq{"v.is_published": true}).
		Project(
			"COUNT(v.id) AS total_videos",
			"COALESCE(SUM(v.views), 0)::bigint AS total_views",
			"COALESCE(SUM(lc.like_count), 0)::bigint AS total_likes",
		)

	subscribers := pipeline.From("subscriptions s").
		Match(sq.Expr("s.channel_id = u.id")).
		Project("COUNT(*) AS total_subscribers")

	return pipeline.From("users u").
		LookupLateral(published, "vs").
		LookupLateral(subscribers, "ss").
		Match(sq.Eq{"u.id": channelID}).
		Project(
			"u.id", "u.username", "u.full_name", "u.avatar_url", "u.cover_image_url",
			"vs.total_videos", "vs.total_views", "vs.total_likes", "ss.total_subscribers",
		)
}

// ChannelStats aggregates a channel's published catalogue and audience.
func (r *ViewRepository) ChannelStats(ctx context.Context, channelID uuid.UUID) (*model.ChannelStats, error) {
	defer metrics.ObserveView(viewChannelStats)()

	query, args, err := channelStatsPipeline(channelID).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build channel stats query: %w", err)
	}

	var s model.ChannelStats
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&s.ChannelID,
		&s.Username,
		&s.FullName,
		&s.AvatarURL,
		&s.CoverImageURL,
		&s.TotalVideos,
		&s.TotalViews,
		&s.TotalLikes,
		&s.TotalSubscribers,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}

	return &s, nil
}

// ChannelVideos lists a channel's published videos, newest first.
func (r *ViewRepository) ChannelVideos(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.Video], error) {
	defer metrics.ObserveView(viewChannelVideos)()

	p := pipeline.From("videos v").
		Match(sq.Eq{"v.owner_id": channelID, "v.is_published": true}).
		Project(videoProjection...).
		Sort(pipeline.Desc("v.created_at"), pipeline.Desc("v.id"))

	return paginate(ctx, r.readTx, p, req, func(rows pgx.Rows) (model.Video, error) {
		v, err := scanVideo(rows)
		if err != nil {
			return model.Video{}, err
		}
		return *v, nil
	})
}

// videoFeedPipeline builds the public feed. Ties on the sort field are
// broken by id in the same direction so pages never overlap.
func videoFeedPipeline(q repository.VideoFeedQuery) pipeline.Pipeline {
	p := pipeline.From("videos v").
		Lookup("users u ON u.id = v.owner_id").
		Match(sq.Eq{"v.is_published": true})

	if q.Search != "" {
		p = p.Match(pipeline.ContainsFold(q.Search, "v.title", "v.description"))
	}
	if q.OwnerID != uuid.Nil {
		p = p.Match(sq.Eq{"v.owner_id": q.OwnerID})
	}

	field := "v." + string(repository.ParseVideoSort(string(q.SortBy)))
	return p.
		Project(videoProjection...).
		Project(ownerProjection...).
		Sort(pipeline.SortKey{Field: field, Desc: q.Desc}, pipeline.SortKey{Field: "v.id", Desc: q.Desc})
}

// VideoFeed lists published videos with their owners.
func (r *ViewRepository) VideoFeed(ctx context.Context, q repository.VideoFeedQuery, req pagination.Request) (pagination.Page[model.VideoWithOwner], error) {
	defer metrics.ObserveView(viewVideoFeed)()

	return paginate(ctx, r.readTx, videoFeedPipeline(q), req, func(rows pgx.Rows) (model.VideoWithOwner, error) {
		var v model.VideoWithOwner
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoURL, &v.ThumbnailURL,
			&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
			&v.Owner.Username, &v.Owner.FullName, &v.Owner.AvatarURL,
		)
		v.Owner.ID = v.OwnerID
		return v, err
	})
}

// VideoComments lists a video's comments with their authors, newest first.
func (r *ViewRepository) VideoComments(ctx context.Context, videoID uuid.UUID, req pagination.Request) (pagination.Page[model.CommentWithOwner], error) {
	defer metrics.ObserveView(viewVideoComments)()

	p := pipeline.From("comments c").
		Lookup("users u ON u.id = c.owner_id").
		Match(sq.Eq{"c.video_id": videoID}).
		Project("c.id", "c.owner_id", "c.video_id", "c.content", "c.created_at", "c.updated_at").
		Project(ownerProjection...).
		Sort(pipeline.Desc("c.created_at"), pipeline.Desc("c.id"))

	return paginate(ctx, r.readTx, p, req, func(rows pgx.Rows) (model.CommentWithOwner, error) {
		var c model.CommentWithOwner
		err := rows.Scan(
			&c.ID, &c.OwnerID, &c.VideoID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&c.Owner.Username, &c.Owner.FullName, &c.Owner.AvatarURL,
		)
		c.Owner.ID = c.OwnerID
		return c, err
	})
}

// LikedVideos lists the videos a user likes. Likes on comments and tweets
// drop out of the join.
func (r *ViewRepository) LikedVideos(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.LikedVideo], error) {
	defer metrics.ObserveView(viewLikedVideos)()

	p := pipeline.From("likes l").
		Lookup("videos v ON v.id = l.video_id").
		Match(sq.Eq{"l.liked_by": userID}).
		Match(sq.Expr("(v.is_published OR v.owner_id = l.liked_by)")).
		Project("l.id", "l.created_at", "v.id", "v.video_url", "v.thumbnail_url", "v.title", "v.description", "v.views").
		Sort(pipeline.Desc("l.created_at"), pipeline.Desc("l.id"))

	return paginate(ctx, r.readTx, p, req, func(rows pgx.Rows) (model.LikedVideo, error) {
		var lv model.LikedVideo
		err := rows.Scan(
			&lv.LikeID, &lv.LikedAt,
			&lv.Video.ID, &lv.Video.VideoURL, &lv.Video.ThumbnailURL, &lv.Video.Title, &lv.Video.Description, &lv.Video.Views,
		)
		return lv, err
	})
}

// subscriptionPipeline lists subscriptions filtered on one side and joined
// with the user summary of the other side.
func subscriptionPipeline(filterColumn, joinColumn string, id uuid.UUID) pipeline.Pipeline {
	return pipeline.From("subscriptions s").
		Lookup("users u ON u.id = s." + joinColumn).
		Match(sq.Eq{"s." + filterColumn: id}).
		Project("s.id", "s.created_at", "u.id", "u.username", "u.full_name", "u.avatar_url").
		Sort(pipeline.Desc("s.created_at"), pipeline.Desc("s.id"))
}

func scanSubscriberEntry(rows pgx.Rows) (model.SubscriberEntry, error) {
	var e model.SubscriberEntry
	err := rows.Scan(&e.SubscriptionID, &e.SubscribedAt, &e.User.ID, &e.User.Username, &e.User.FullName, &e.User.AvatarURL)
	return e, err
}

// Subscribers lists the users subscribed to a channel.
func (r *ViewRepository) Subscribers(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error) {
	defer metrics.ObserveView(viewSubscribers)()
	return paginate(ctx, r.readTx, subscriptionPipeline("channel_id", "subscriber_id", channelID), req, scanSubscriberEntry)
}

// SubscribedChannels lists the channels a user subscribes to.
func (r *ViewRepository) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error) {
	defer metrics.ObserveView(viewSubscribedChannels)()
	return paginate(ctx, r.readTx, subscriptionPipeline("subscriber_id", "channel_id", subscriberID), req, scanSubscriberEntry)
}

// UserTweets lists a user's tweets, newest first.
func (r *ViewRepository) UserTweets(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Tweet], error) {
	defer metrics.ObserveView(viewUserTweets)()

	p := pipeline.From("tweets t").
		Match(sq.Eq{"t.owner_id": userID}).
		Project("t.id", "t.owner_id", "t.content", "t.created_at", "t.updated_at").
		Sort(pipeline.Desc("t.created_at"), pipeline.Desc("t.id"))

	return paginate(ctx, r.readTx, p, req, func(rows pgx.Rows) (model.Tweet, error) {
		t, err := scanTweet(rows)
		if err != nil {
			return model.Tweet{}, err
		}
		return *t, nil
	})
}

// UserPlaylists lists a user's playlists, newest first.
func (r *ViewRepository) UserPlaylists(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Playlist], error) {
	defer metrics.ObserveView(viewUserPlaylists)()

	p := pipeline.From("playlists p").
		Match(sq.Eq{"p.owner_id": userID}).
		Project("p.id", "p.owner_id", "p.name", "p.description", "p.video_ids", "p.created_at", "p.updated_at").
		Sort(pipeline.Desc("p.created_at"), pipeline.Desc("p.id"))

	return paginate(ctx, r.readTx, p, req, func(rows pgx.Rows) (model.Playlist, error) {
		pl, err := scanPlaylist(rows)
		if err != nil {
			return model.Playlist{}, err
		}
		return *pl, nil
	})
}

var _ repository.ViewRepository = (*ViewRepository)(nil)
