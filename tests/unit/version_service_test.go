package unit_test

import (
	"context"
	"errors"
	"testing"

	"bidproposal-backend/internal/domain"
	"bidproposal-backend/internal/repository"
	"bidproposal-backend/internal/service/version"
	"bidproposal-backend/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newContent(sections ...string) domain.DocumentContent {
	content := domain.DocumentContent{
		ProjectName: "Harbor Expansion",
		Summary:     "A proposal for the harbor expansion project.",
	}
	for _, name := range sections {
		content.Sections = append(content.Sections, domain.SectionContent{Name: name, Body: "body of " + name})
	}
	return content
}

func TestVersionService_WriteInitialVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		mockStore := new(mocks.ArtifactService)

		svc := version.NewService(mockDocRepo, mockStore, nil, nil)

		content := newContent("Introduction", "Scope of Work")

		mockStore.On("PutFile", ctx, "harbor-expansion-abc", "version-1.json", mock.Anything).Return(nil).Once()

		v, err := svc.WriteInitialVersion(ctx, "harbor-expansion-abc", content)

		assert.NoError(t, err)
		assert.Equal(t, 1, v.VersionNumber)
		assert.Equal(t, "version-1.json", v.VersionID)
		assert.Equal(t, content, v.Content)
		mockStore.AssertExpectations(t)
	})

	t.Run("Writes No Metadata", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		mockStore := new(mocks.ArtifactService)

		svc := version.NewService(mockDocRepo, mockStore, nil, nil)

		mockStore.On("PutFile", ctx, "f", "version-1.json", mock.Anything).Return(nil).Once()

		_, err := svc.WriteInitialVersion(ctx, "f", newContent("Introduction"))

		assert.NoError(t, err)
		mockDocRepo.AssertNotCalled(t, "AppendVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockDocRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Storage Failure", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		mockStore := new(mocks.ArtifactService)

		svc := version.NewService(mockDocRepo, mockStore, nil, nil)

		mockStore.On("PutFile", ctx, "f", "version-1.json", mock.Anything).
			Return(errors.New("connection reset")).Once()

		_, err := svc.WriteInitialVersion(ctx, "f", newContent("Introduction"))

		assert.Error(t, err)
	})
}

func TestVersionService_AppendVersion(t *testing.T) {
	ctx := context.Background()
	docID := uuid.New()

	docWithVersions := func(revision int, numbers ...int) *domain.Document {
		doc := &domain.Document{
			ID:         docID,
			FolderName: "harbor-expansion-abc",
			Revision:   revision,
		}
		for _, n := range numbers {
			doc.Versions = append(doc.Versions, domain.Version{
				VersionID:     domain.VersionFileName(n),
				VersionNumber: n,
			})
		}
		return doc
	}

	t.Run("Allocates Next Number", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		mockStore := new(mocks.ArtifactService)

		svc := version.NewService(mockDocRepo, mockStore, nil, nil)

		mockDocRepo.On("GetByID", ctx, docID).Return(docWithVersions(2, 1, 2), nil).Once()
		mockStore.On("PutFile", ctx, "harbor-expansion-abc", "version-3.json", mock.Anything).Return(nil).Once()
		mockDocRepo.On("AppendVersion", ctx, docID, mock.MatchedBy(func(v domain.Version) bool {
			return v.VersionNumber == 3
		}), 2).Return(nil).Once()

		v, err := svc.AppendVersion(ctx, docID, newContent("Introduction"))

		assert.NoError(t, err)
		assert.Equal(t, 3, v.VersionNumber)
		mockDocRepo.AssertExpectations(t)
	})

	t.Run("Retries On Stale Revision", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		mockStore := new(mocks.ArtifactService)

		svc := version.NewService(mockDocRepo, mockStore, nil, nil)

		mockDocRepo.On("GetByID", ctx, docID).Return(docWithVersions(1, 1), nil).Once()
		mockStore.On("PutFile", ctx, "harbor-expansion-abc", "version-2.json", mock.Anything).Return(nil).Once()
		mockDocRepo.On("AppendVersion", ctx, docID, mock.Anything, 1).
			Return(repository.ErrStaleRevision).Once()

		// A concurrent writer got there first; the retry sees its version.
		mockDocRepo.On("GetByID", ctx, docID).Return(docWithVersions(2, 1, 2), nil).Once()
		mockStore.On("PutFile", ctx, "harbor-expansion-abc", "version-3.json", mock.Anything).Return(nil).Once()
		mockDocRepo.On("AppendVersion", ctx, docID, mock.Anything, 2).Return(nil).Once()

		v, err := svc.AppendVersion(ctx, docID, newContent("Introduction"))

		assert.NoError(t, err)
		assert.Equal(t, 3, v.VersionNumber)
		mockDocRepo.AssertExpectations(t)
	})

	t.Run("Gives Up After Max Attempts", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		mockStore := new(mocks.ArtifactService)

		svc := version.NewService(mockDocRepo, mockStore, nil, nil)

		mockDocRepo.On("GetByID", ctx, docID).Return(docWithVersions(1, 1), nil).Times(3)
		mockStore.On("PutFile", ctx, "harbor-expansion-abc", "version-2.json", mock.Anything).Return(nil).Times(3)
		mockDocRepo.On("AppendVersion", ctx, docID, mock.Anything, 1).
			Return(repository.ErrStaleRevision).Times(3)

		_, err := svc.AppendVersion(ctx, docID, newContent("Introduction"))

		assert.ErrorIs(t, err, version.ErrVersionConflict)
		mockDocRepo.AssertExpectations(t)
	})

	t.Run("Document Not Found", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		mockStore := new(mocks.ArtifactService)

		svc := version.NewService(mockDocRepo, mockStore, nil, nil)

		mockDocRepo.On("GetByID", ctx, docID).Return(nil, nil).Once()

		_, err := svc.AppendVersion(ctx, docID, newContent("Introduction"))

		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})
}

func TestVersionService_GetLatestVersion(t *testing.T) {
	ctx := context.Background()
	docID := uuid.New()

	t.Run("Returns Highest Number", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)

		svc := version.NewService(mockDocRepo, nil, nil, nil)

		doc := &domain.Document{
			ID: docID,
			Versions: domain.VersionList{
				{VersionNumber: 1},
				{VersionNumber: 2},
			},
		}
		mockDocRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()

		v, err := svc.GetLatestVersion(ctx, docID)

		assert.NoError(t, err)
		assert.Equal(t, 2, v.VersionNumber)
	})

	t.Run("No Versions", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)

		svc := version.NewService(mockDocRepo, nil, nil, nil)

		mockDocRepo.On("GetByID", ctx, docID).Return(&domain.Document{ID: docID}, nil).Once()

		_, err := svc.GetLatestVersion(ctx, docID)

		assert.ErrorIs(t, err, domain.ErrNoVersions)
	})
}

func TestVersionService_UpdateSection(t *testing.T) {
	ctx := context.Background()
	docID := uuid.New()

	t.Run("Section Not Found", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		mockGen := new(mocks.GenerationService)

		svc := version.NewService(mockDocRepo, nil, mockGen, nil)

		doc := &domain.Document{
			ID: docID,
			Versions: domain.VersionList{
				{VersionNumber: 1, Content: newContent("Introduction")},
			},
		}
		mockDocRepo.On("GetByID", ctx, docID).Return(doc, nil).Once()

		_, err := svc.UpdateSection(ctx, docID, "Budget", "shorten it")

		assert.ErrorIs(t, err, version.ErrSectionNotFound)
		mockGen.AssertNotCalled(t, "ReviseSection", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Appends Revised Snapshot", func(t *testing.T) {
		mockDocRepo := new(mocks.DocumentRepository)
		mockStore := new(mocks.ArtifactService)
		mockGen := new(mocks.GenerationService)

		svc := version.NewService(mockDocRepo, mockStore, mockGen, nil)

		doc := &domain.Document{
			ID:         docID,
			FolderName: "f",
			Revision:   1,
			Versions: domain.VersionList{
				{VersionNumber: 1, Content: newContent("Introduction", "Budget")},
			},
		}
		mockDocRepo.On("GetByID", ctx, docID).Return(doc, nil).Twice()
		mockGen.On("ReviseSection", ctx, "Budget", "body of Budget", "shorten it").
			Return("a shorter budget", nil).Once()
		mockStore.On("PutFile", ctx, "f", "version-2.json", mock.Anything).Return(nil).Once()
		mockDocRepo.On("AppendVersion", ctx, docID, mock.MatchedBy(func(v domain.Version) bool {
			return v.VersionNumber == 2 &&
				v.Content.Sections[0].Body == "body of Introduction" &&
				v.Content.Sections[1].Body == "a shorter budget"
		}), 1).Return(nil).Once()

		v, err := svc.UpdateSection(ctx, docID, "Budget", "shorten it")

		assert.NoError(t, err)
		assert.Equal(t, 2, v.VersionNumber)
		mockGen.AssertExpectations(t)
		mockDocRepo.AssertExpectations(t)
	})
}
