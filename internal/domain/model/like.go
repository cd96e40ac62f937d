package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TargetKind names the entity a like points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

func (k TargetKind) String() string {
	return string(k)
}

var ErrInvalidTarget = errors.New("like target must reference exactly one entity")

// LikeTarget is the tagged union of things a user can like.
// The zero value is invalid; build one with VideoTarget, CommentTarget or TweetTarget.
type LikeTarget struct {
	kind TargetKind
	id   uuid.UUID
}

func VideoTarget(id uuid.UUID) LikeTarget   { return LikeTarget{kind: TargetVideo, id: id} }
func CommentTarget(id uuid.UUID) LikeTarget { return LikeTarget{kind: TargetComment, id: id} }
func TweetTarget(id uuid.UUID) LikeTarget   { return LikeTarget{kind: TargetTweet, id: id} }

// NewLikeTarget builds a target from a stored kind, used when scanning rows.
func NewLikeTarget(kind TargetKind, id uuid.UUID) (LikeTarget, error) {
	switch kind {
	case TargetVideo, TargetComment, TargetTweet:
	default:
		return LikeTarget{}, ErrInvalidTarget
	}
	if id == uuid.Nil {
		return LikeTarget{}, ErrInvalidTarget
	}
	return LikeTarget{kind: kind, id: id}, nil
}

func (t LikeTarget) Kind() TargetKind { return t.kind }
func (t LikeTarget) ID() uuid.UUID    { return t.id }

// Valid reports whether the target was built through a constructor with a real ID.
func (t LikeTarget) Valid() bool {
	return t.kind != "" && t.id != uuid.Nil
}

// Like records that LikedBy likes exactly one target.
type Like struct {
	ID        uuid.UUID
	LikedBy   uuid.UUID
	Target    LikeTarget
	CreatedAt time.Time
}

// NewLike creates an unsaved like.
func NewLike(likedBy uuid.UUID, target LikeTarget) (*Like, error) {
	if likedBy == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	if !target.Valid() {
		return nil, ErrInvalidTarget
	}
	return &Like{
		ID:        uuid.New(),
		LikedBy:   likedBy,
		Target:    target,
		CreatedAt: time.Now(),
	}, nil
}

// LikedVideo is one row of the liked-video feed.
type LikedVideo struct {
	LikeID  uuid.UUID
	LikedAt time.Time
	Video   VideoSummary
}
