package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrNoVersions       = errors.New("document has no versions")
)

// Document owns its version chain: versions are embedded, append-only and
// ordered by version number. Revision is the optimistic concurrency token
// bumped on every write that touches the version sequence or status.
type Document struct {
	ID            uuid.UUID   `json:"id" db:"document_id"`
	Name          string      `json:"name" db:"name"`
	CreatorID     uuid.UUID   `json:"creator_id" db:"creator_id"`
	CurrentStatus DocStatus   `json:"current_status" db:"current_status"`
	UsedModel     string      `json:"used_model" db:"used_model"`
	FolderName    string      `json:"-" db:"folder_name"`
	Versions      VersionList `json:"versions" db:"versions"`
	Revision      int         `json:"-" db:"revision"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	LastModified  time.Time   `json:"last_modified" db:"last_modified"`

	Creator *User `json:"creator,omitempty" db:"-"`
}

type DocStatus string

const (
	DocStatusDraft      DocStatus = "draft"
	DocStatusSubmitted  DocStatus = "submitted"
	DocStatusInProgress DocStatus = "in_progress"
	DocStatusApproved   DocStatus = "approved"
	DocStatusRejected   DocStatus = "rejected"
)

func (s DocStatus) IsTerminal() bool {
	return s == DocStatusApproved || s == DocStatusRejected
}

// Version is one immutable entry in a document's chain. VersionID doubles as
// the artifact file name in the document's storage folder.
type Version struct {
	VersionID     string          `json:"version_id"`
	VersionNumber int             `json:"version_number"`
	Content       DocumentContent `json:"content"`
	LastModified  time.Time       `json:"last_modified"`
}

// VersionFileName derives the artifact name for a version number.
func VersionFileName(number int) string {
	return fmt.Sprintf("version-%d.json", number)
}

// DocumentContent is the full content snapshot stored per version. Sections
// keep their generation order, which a plain map would lose.
type DocumentContent struct {
	ProjectName string           `json:"project_name"`
	Summary     string           `json:"summary"`
	Sections    []SectionContent `json:"sections"`
}

type SectionContent struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// SectionIndex returns the position of the named section, or -1.
func (c DocumentContent) SectionIndex(name string) int {
	for i, s := range c.Sections {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// WithSection returns a copy of the snapshot with one section body replaced.
func (c DocumentContent) WithSection(index int, body string) DocumentContent {
	sections := make([]SectionContent, len(c.Sections))
	copy(sections, c.Sections)
	sections[index].Body = body
	c.Sections = sections
	return c
}

// VersionList stores the embedded chain as a JSONB column.
type VersionList []Version

func (v VersionList) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

func (v *VersionList) Scan(src any) error {
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, v)
	case string:
		return json.Unmarshal([]byte(data), v)
	case nil:
		*v = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for VersionList", src)
	}
}

// Latest returns the version with the highest number. The chain is
// append-only so this is the last element.
func (v VersionList) Latest() (Version, bool) {
	if len(v) == 0 {
		return Version{}, false
	}
	return v[len(v)-1], true
}

type CreateDocumentInput struct {
	ProjectName    string `json:"project_name" validate:"required,min=2"`
	ProjectDetails string `json:"project_details" validate:"required"`
}

type CreateFromRFQInput struct {
	FileName string `json:"file_name" validate:"required"`
	RFQText  string `json:"rfq_text" validate:"required"`
}

type UpdateSectionInput struct {
	DocumentID   uuid.UUID `json:"document_id" validate:"required"`
	SectionName  string    `json:"section_name" validate:"required"`
	Instructions string    `json:"instructions" validate:"required"`
}
