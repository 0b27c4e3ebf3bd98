package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/repository"
	"bidproposal-backend/internal/service/artifact"
	"bidproposal-backend/internal/service/generation"
)

var (
	// ErrVersionConflict is surfaced when concurrent appends on one document
	// keep losing the revision race after all retries.
	ErrVersionConflict = errors.New("version conflict: concurrent update in progress")
	ErrSectionNotFound = errors.New("section not found in latest version")
)

// maxAppendAttempts bounds the optimistic retry loop; conflicts beyond this
// are surfaced to the caller.
const maxAppendAttempts = 3

const latestCacheTTL = 10 * time.Minute

// Service owns the version chain: numbers are allocated by reading current
// state (1-based, gapless), the artifact is written before the metadata so a
// version entry never points at a missing file.
type Service interface {
	WriteInitialVersion(ctx context.Context, folderName string, content domain.DocumentContent) (*domain.Version, error)
	AppendVersion(ctx context.Context, documentID uuid.UUID, content domain.DocumentContent) (*domain.Version, error)
	GetLatestVersion(ctx context.Context, documentID uuid.UUID) (*domain.Version, error)
	UpdateSection(ctx context.Context, documentID uuid.UUID, sectionName, instructions string) (*domain.Version, error)
	GetVersionArtifact(ctx context.Context, documentID uuid.UUID, number int) ([]byte, error)
}

type service struct {
	docRepo repository.DocumentRepository
	store   artifact.Service
	genSvc  generation.Service
	redis   *redis.Client
}

func NewService(docRepo repository.DocumentRepository, store artifact.Service, genSvc generation.Service, redis *redis.Client) Service {
	return &service{
		docRepo: docRepo,
		store:   store,
		genSvc:  genSvc,
		redis:   redis,
	}
}

// WriteInitialVersion stores the version 1 artifact for a document that has
// not been persisted yet and returns the chain entry for the caller to embed
// in the insert. No metadata is touched here, so a storage failure leaves
// nothing behind.
func (s *service) WriteInitialVersion(ctx context.Context, folderName string, content domain.DocumentContent) (*domain.Version, error) {
	v := domain.Version{
		VersionID:     domain.VersionFileName(1),
		VersionNumber: 1,
		Content:       content,
		LastModified:  time.Now().UTC(),
	}

	if err := s.writeArtifact(ctx, folderName, v); err != nil {
		return nil, err
	}
	return &v, nil
}

// AppendVersion allocates the next number by reading the current chain, then
// races the write on the document revision. The loser recomputes and retries
// up to maxAppendAttempts before giving up with ErrVersionConflict.
func (s *service) AppendVersion(ctx context.Context, documentID uuid.UUID, content domain.DocumentContent) (*domain.Version, error) {
	for attempt := 0; attempt < maxAppendAttempts; attempt++ {
		doc, err := s.docRepo.GetByID(ctx, documentID)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, domain.ErrDocumentNotFound
		}

		next := 1
		if latest, ok := doc.Versions.Latest(); ok {
			next = latest.VersionNumber + 1
		}

		v := domain.Version{
			VersionID:     domain.VersionFileName(next),
			VersionNumber: next,
			Content:       content,
			LastModified:  time.Now().UTC(),
		}

		if err := s.writeArtifact(ctx, doc.FolderName, v); err != nil {
			return nil, err
		}

		err = s.docRepo.AppendVersion(ctx, documentID, v, doc.Revision)
		if errors.Is(err, repository.ErrStaleRevision) {
			continue
		}
		if err != nil {
			log.Printf("orphaned artifact %s/%s after metadata write failure: %v", doc.FolderName, v.VersionID, err)
			return nil, err
		}

		s.invalidateCache(ctx, documentID)
		return &v, nil
	}

	return nil, ErrVersionConflict
}

func (s *service) GetLatestVersion(ctx context.Context, documentID uuid.UUID) (*domain.Version, error) {
	if cached := s.readCache(ctx, documentID); cached != nil {
		return cached, nil
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrDocumentNotFound
	}

	latest, ok := doc.Versions.Latest()
	if !ok {
		return nil, domain.ErrNoVersions
	}

	s.writeCache(ctx, documentID, latest)
	return &latest, nil
}

// UpdateSection rewrites one named section via the generation adapter and
// appends the resulting full snapshot as a new version.
func (s *service) UpdateSection(ctx context.Context, documentID uuid.UUID, sectionName, instructions string) (*domain.Version, error) {
	latest, err := s.GetLatestVersion(ctx, documentID)
	if err != nil {
		return nil, err
	}

	idx := latest.Content.SectionIndex(sectionName)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, sectionName)
	}

	revised, err := s.genSvc.ReviseSection(ctx, sectionName, latest.Content.Sections[idx].Body, instructions)
	if err != nil {
		return nil, err
	}

	return s.AppendVersion(ctx, documentID, latest.Content.WithSection(idx, revised))
}

// GetVersionArtifact fetches the stored snapshot file for one version.
func (s *service) GetVersionArtifact(ctx context.Context, documentID uuid.UUID, number int) ([]byte, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrDocumentNotFound
	}
	if number < 1 || number > len(doc.Versions) {
		return nil, domain.ErrNoVersions
	}

	return s.store.GetFile(ctx, doc.FolderName, domain.VersionFileName(number))
}

func (s *service) writeArtifact(ctx context.Context, folder string, v domain.Version) error {
	data, err := json.MarshalIndent(v.Content, "", "  ")
	if err != nil {
		return err
	}
	return s.store.PutFile(ctx, folder, v.VersionID, data)
}

func latestCacheKey(documentID uuid.UUID) string {
	return "document:latest:" + documentID.String()
}

func (s *service) readCache(ctx context.Context, documentID uuid.UUID) *domain.Version {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, latestCacheKey(documentID)).Bytes()
	if err != nil {
		return nil
	}
	var v domain.Version
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return &v
}

func (s *service) writeCache(ctx context.Context, documentID uuid.UUID, v domain.Version) {
	if s.redis == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		_ = s.redis.Set(ctx, latestCacheKey(documentID), data, latestCacheTTL).Err()
	}
}

func (s *service) invalidateCache(ctx context.Context, documentID uuid.UUID) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, latestCacheKey(documentID)).Err()
}
