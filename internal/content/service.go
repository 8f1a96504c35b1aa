package content

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"

	"clubtrack/internal/user"
)

// FileStore is the slice of the upload store the service needs.
type FileStore interface {
	Save(name string, r io.Reader) (string, error)
	Remove(name string) error
}

// Upload is one file submitted with a publish request.
type Upload struct {
	Name string
	Data io.Reader
}

// Service implements publishing, access-filtered viewing and cascading delete.
type Service struct {
	repo  Repository
	files FileStore
}

// NewService creates a service backed by a repository and a file store.
func NewService(repo Repository, files FileStore) *Service {
	return &Service{repo: repo, files: files}
}

// Publish creates a content row, stores each uploaded file as a photo, then
// writes one access grant per listed user. The three phases are sequential
// commits with no surrounding transaction; a failure leaves the earlier
// phases in place.
func (s *Service) Publish(ctx context.Context, eventID int64, description, text string, uploads []Upload, accessUserIDs []int64) (Content, error) {
	c, err := s.repo.CreateContent(ctx, Content{EventID: eventID, Content: text, Description: description})
	if err != nil {
		return Content{}, err
	}
	for _, up := range uploads {
		if up.Name == "" || up.Data == nil {
			continue
		}
		stored, err := s.files.Save(up.Name, up.Data)
		if err != nil {
			return Content{}, err
		}
		if _, err := s.repo.AddPhoto(ctx, Photo{ContentID: c.ID, PhotoPath: stored}); err != nil {
			return Content{}, err
		}
	}
	for _, uid := range accessUserIDs {
		if err := s.repo.Grant(ctx, c.ID, uid); err != nil {
			return Content{}, err
		}
	}
	return c, nil
}

// View returns the event's content items visible to the viewer. Teachers see
// everything; students only items they hold an access grant for. Each item
// carries its photo list.
func (s *Service) View(ctx context.Context, eventID, viewerID int64, viewerRole string) ([]WithPhotos, error) {
	contents, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	var visible []WithPhotos
	for _, c := range contents {
		if viewerRole != user.RoleTeacher {
			ok, err := s.repo.HasAccess(ctx, c.ID, viewerID)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		photos, err := s.repo.ListPhotos(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		visible = append(visible, WithPhotos{Content: c, Photos: photos})
	}
	return visible, nil
}

// Delete removes a content item and everything hanging off it: backing files
// (best-effort), photo rows, access grants, then the content row. Returns the
// owning event id so callers can redirect back to it.
func (s *Service) Delete(ctx context.Context, contentID int64) (int64, error) {
	c, err := s.repo.FindContent(ctx, contentID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, ErrNotFound
	}
	photos, err := s.repo.ListPhotos(ctx, contentID)
	if err != nil {
		return 0, err
	}
	for _, p := range photos {
		if err := s.files.Remove(p.PhotoPath); err != nil {
			log.Warn().Err(err).Str("file", p.PhotoPath).Msg("photo file removal failed")
		}
	}
	if err := s.repo.DeletePhotos(ctx, contentID); err != nil {
		return 0, err
	}
	if err := s.repo.DeleteGrants(ctx, contentID); err != nil {
		return 0, err
	}
	if err := s.repo.DeleteContent(ctx, contentID); err != nil {
		return 0, err
	}
	return c.EventID, nil
}
