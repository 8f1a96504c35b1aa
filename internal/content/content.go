package content

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a content id does not exist.
var ErrNotFound = errors.New("content not found")

// Content is a teacher-authored note bundle tied to one event.
type Content struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"event_id"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

// Photo is a stored file attached to a content item. It is owned by its
// content and goes away with it, backing file included.
type Photo struct {
	ID        int64  `json:"id"`
	ContentID int64  `json:"content_id"`
	PhotoPath string `json:"photo_path"`
}

// WithPhotos is a content item annotated with its photo list for display.
type WithPhotos struct {
	Content
	Photos []Photo `json:"photos"`
}

// Repository persists content, photos and access grants.
// FindContent returns (nil, nil) when no row matches.
type Repository interface {
	CreateContent(ctx context.Context, c Content) (Content, error)
	FindContent(ctx context.Context, id int64) (*Content, error)
	ListByEvent(ctx context.Context, eventID int64) ([]Content, error)
	DeleteContent(ctx context.Context, id int64) error

	AddPhoto(ctx context.Context, p Photo) (Photo, error)
	ListPhotos(ctx context.Context, contentID int64) ([]Photo, error)
	DeletePhotos(ctx context.Context, contentID int64) error

	Grant(ctx context.Context, contentID, userID int64) error
	HasAccess(ctx context.Context, contentID, userID int64) (bool, error)
	DeleteGrants(ctx context.Context, contentID int64) error
}
