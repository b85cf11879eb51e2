package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tag is a named label shared across contacts. Identity is the name value;
// the ID exists for storage only. The book keeps exactly one canonical Tag
// per distinct name, and contacts reference tags by name.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTag(name string) (Tag, error) {
	name = strings.TrimSpace(name)
	if err := validate.Var(name, "required,tagname"); err != nil {
		return Tag{}, invalid("tag", "tag names should be alphanumeric")
	}
	return Tag{ID: uuid.New(), Name: name, CreatedAt: time.Now()}, nil
}

// Same reports whether two tags are the same tag for uniqueness purposes.
func (t Tag) Same(other Tag) bool { return t.Name == other.Name }

func (t Tag) String() string { return "[" + t.Name + "]" }
