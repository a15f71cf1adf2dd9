// Package gallery maintains the ordered image list of a car being edited: a
// single sequence of tagged items mixing images already stored by the backend
// with files picked locally and not yet uploaded. The sequence is the one
// source of truth for display order; add, remove and reorder all operate on
// it, and the submission payload is derived from it by partition.
package gallery

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateImage is returned when seeding would introduce the same
	// remote URL twice.
	ErrDuplicateImage = errors.New("duplicate image url")

	// ErrIndexOutOfRange is returned for positions outside the display list.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Kind tags a gallery item. Reordering never changes an item's kind.
type Kind int

const (
	// KindExisting is an image owned by the backend, identified by its URL.
	KindExisting Kind = iota
	// KindNew is a locally picked file pending upload; it has no stable
	// server identity yet, so it carries a generated one.
	KindNew
)

// File is a pending upload: a local path plus a generated id that gives the
// item identity until the backend assigns a URL.
type File struct {
	ID   string
	Name string
	Path string
}

// NewFile builds a pending upload handle for a picked file.
func NewFile(name, path string) File {
	return File{ID: uuid.NewString(), Name: name, Path: path}
}

// Item is one entry of the display list.
type Item struct {
	Kind Kind
	URL  string // existing items only
	File File   // new items only
}

// Mode distinguishes editing a stored car from creating a new one. In edit
// mode removed existing images are a soft delete: they drop out of the keep
// list sent on submit, the backend record stays untouched until then.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Model is the gallery state machine. Not safe for concurrent use; it lives
// on the form's event loop.
type Model struct {
	mode  Mode
	items []Item
}

func NewModel(mode Mode) *Model {
	return &Model{mode: mode}
}

func (m *Model) Mode() Mode {
	return m.mode
}

// SeedExisting appends the car's stored images, in their server order.
// Duplicate URLs, against either the seeded batch or items already present,
// are rejected and nothing is appended.
func (m *Model) SeedExisting(urls []string) error {
	seen := make(map[string]struct{}, len(m.items)+len(urls))
	for _, it := range m.items {
		if it.Kind == KindExisting {
			seen[it.URL] = struct{}{}
		}
	}
	for _, u := range urls {
		if _, dup := seen[u]; dup {
			return ErrDuplicateImage
		}
		seen[u] = struct{}{}
	}

	for _, u := range urls {
		m.items = append(m.items, Item{Kind: KindExisting, URL: u})
	}
	return nil
}

// AddFiles appends picked files in selection order. Existing images are not
// touched.
func (m *Model) AddFiles(files ...File) {
	for _, f := range files {
		m.items = append(m.items, Item{Kind: KindNew, File: f})
	}
}

// Len is the display list length.
func (m *Model) Len() int {
	return len(m.items)
}

// Items returns a copy of the display list in its current order.
func (m *Model) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// RemoveAt removes the item currently at the given display position,
// whichever underlying collection it belongs to. For an existing image in
// edit mode this is the soft delete described on Mode.
func (m *Model) RemoveAt(index int) error {
	if index < 0 || index >= len(m.items) {
		return ErrIndexOutOfRange
	}
	m.items = append(m.items[:index], m.items[index+1:]...)
	return nil
}

// Reorder moves the item at from to position to: a single permutation of the
// display list (remove at from, insert at to). Item count and every item's
// kind are preserved.
func (m *Model) Reorder(from, to int) error {
	if from < 0 || from >= len(m.items) || to < 0 || to >= len(m.items) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	moved := m.items[from]
	rest := append(m.items[:from:from], m.items[from+1:]...)
	m.items = append(rest[:to:to], append([]Item{moved}, rest[to:]...)...)
	return nil
}

// KeepURLs is the ordered list of existing-image URLs still present, i.e.
// the imagesToKeep submission field in edit mode.
func (m *Model) KeepURLs() []string {
	urls := make([]string, 0, len(m.items))
	for _, it := range m.items {
		if it.Kind == KindExisting {
			urls = append(urls, it.URL)
		}
	}
	return urls
}

// NewFiles is the ordered list of pending uploads.
func (m *Model) NewFiles() []File {
	files := make([]File, 0, len(m.items))
	for _, it := range m.items {
		if it.Kind == KindNew {
			files = append(files, it.File)
		}
	}
	return files
}

// Payload derives the submission lists: ordered existing URLs to keep and
// ordered new files. The backend performs the final merge; this model's job
// ends at producing the two correctly ordered partitions. In create mode the
// keep list is nil, there is no server record to reconcile against.
func (m *Model) Payload() (keep []string, files []File) {
	if m.mode == ModeEdit {
		keep = m.KeepURLs()
	}
	return keep, m.NewFiles()
}
