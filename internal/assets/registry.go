package assets

import (
	"io"
	"maps"
	"slices"
	"strings"
)

// Entry is one registered asset. Entries are immutable once created.
type Entry struct {
	Hash     string
	Tag      string
	Priority int
	Kind     Kind
	Source   string
}

// Bucket groups the entries registered at one priority, in insertion order.
type Bucket struct {
	Priority int
	Entries  []Entry
}

// Registry stores entries by priority. Duplicates are kept; Render drops
// them, first occurrence wins.
type Registry struct {
	buckets map[int][]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{buckets: map[int][]Entry{}}
}

func (r *Registry) Add(entry Entry) {
	if r.buckets == nil {
		r.buckets = map[int][]Entry{}
	}
	r.buckets[entry.Priority] = append(r.buckets[entry.Priority], entry)
}

// Buckets returns a copy of the buckets in ascending priority.
func (r *Registry) Buckets() []Bucket {
	out := make([]Bucket, 0, len(r.buckets))
	for _, priority := range slices.Sorted(maps.Keys(r.buckets)) {
		out = append(out, Bucket{Priority: priority, Entries: slices.Clone(r.buckets[priority])})
	}
	return out
}

// Len counts registered entries, duplicates included.
func (r *Registry) Len() int {
	n := 0
	for _, entries := range r.buckets {
		n += len(entries)
	}
	return n
}

func (r *Registry) Reset() {
	clear(r.buckets)
}

// Tags returns the tags to emit: buckets ascending, insertion order inside a
// bucket, each hash once.
func (r *Registry) Tags() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, bucket := range r.Buckets() {
		for _, entry := range bucket.Entries {
			if _, dup := seen[entry.Hash]; dup {
				continue
			}
			seen[entry.Hash] = struct{}{}
			tags = append(tags, entry.Tag)
		}
	}
	return tags
}

// String renders the deduplicated tags joined by newlines.
func (r *Registry) String() string {
	return strings.Join(r.Tags(), "\n")
}

// Render writes String to w.
func (r *Registry) Render(w io.Writer) error {
	_, err := io.WriteString(w, r.String())
	return err
}
