// Package domain defines the normalized credential model produced by a
// conversion: a tree of groups containing entries with typed attributes.
package domain

import (
	"github.com/google/uuid"

	"github.com/vault-cli/bwimport/internal/totp"
)

// Tree is the result of one conversion. Root is always non-nil; entries
// whose source folder could not be resolved live directly under Root.
type Tree struct {
	Root *Group
}

// NewTree creates a tree with a named root group.
func NewTree(rootName string) *Tree {
	return &Tree{
		Root: &Group{
			ID:   uuid.NewString(),
			Name: rootName,
		},
	}
}

// Groups returns the root's direct subgroups.
func (t *Tree) Groups() []*Group {
	return t.Root.Groups
}

// EntryCount counts every entry in the tree, root included.
func (t *Tree) EntryCount() int {
	n := len(t.Root.Entries)
	for _, g := range t.Root.Groups {
		n += len(g.Entries)
	}
	return n
}

// FindEntry returns the first entry with the given title, searching the
// root group first and then each subgroup in order.
func (t *Tree) FindEntry(title string) *Entry {
	for _, e := range t.Root.Entries {
		if e.Title == title {
			return e
		}
	}
	for _, g := range t.Root.Groups {
		for _, e := range g.Entries {
			if e.Title == title {
				return e
			}
		}
	}
	return nil
}

// Group is a folder in the credential tree. A group has exactly one parent;
// the root group's Parent is nil.
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Parent  *Group   `json:"-"`
	Groups  []*Group `json:"groups,omitempty"`
	Entries []*Entry `json:"entries,omitempty"`
}

// NewGroup creates a group with a fresh id and attaches it under parent.
func NewGroup(name string, parent *Group) *Group {
	g := &Group{
		ID:     uuid.NewString(),
		Name:   name,
		Parent: parent,
	}
	parent.Groups = append(parent.Groups, g)
	return g
}

// AddEntry attaches an entry to the group. The group takes exclusive
// ownership; callers must not attach the same entry twice.
func (g *Group) AddEntry(e *Entry) {
	g.Entries = append(g.Entries, e)
}

// Entry is a single credential. Attributes keeps insertion order; keys are
// unique per entry (see SetAttribute).
type Entry struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Username   string         `json:"username,omitempty"`
	Password   string         `json:"password,omitempty"`
	URL        string         `json:"url,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	Tags       []string       `json:"tags,omitempty"`
	Attributes []Attribute    `json:"attributes,omitempty"`
	TOTP       *totp.Settings `json:"totp,omitempty"`
}

// Attribute is a named value on an entry. Protected attributes hold secret
// material and are treated like passwords by consumers.
type Attribute struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Protected bool   `json:"protected"`
}

// NewEntry creates an empty entry with a fresh id.
func NewEntry() *Entry {
	return &Entry{ID: uuid.NewString()}
}

// HasAttribute reports whether the entry already carries the key.
func (e *Entry) HasAttribute(key string) bool {
	for i := range e.Attributes {
		if e.Attributes[i].Key == key {
			return true
		}
	}
	return false
}

// Attribute returns the value for key, or "" when absent.
func (e *Entry) Attribute(key string) string {
	for i := range e.Attributes {
		if e.Attributes[i].Key == key {
			return e.Attributes[i].Value
		}
	}
	return ""
}

// SetAttribute appends a new attribute. Key uniqueness is the caller's
// contract; use UniqueAttributeKey first when the key may collide.
func (e *Entry) SetAttribute(key, value string, protected bool) {
	e.Attributes = append(e.Attributes, Attribute{Key: key, Value: value, Protected: protected})
}

// UniqueAttributeKey returns name unchanged when free, otherwise name with
// a short random suffix so the colliding value is preserved rather than
// overwritten.
func (e *Entry) UniqueAttributeKey(name string) string {
	if !e.HasAttribute(name) {
		return name
	}
	return name + "_" + uuid.NewString()[:5]
}

// AddTag appends tag unless the entry already carries it.
func (e *Entry) AddTag(tag string) {
	for _, t := range e.Tags {
		if t == tag {
			return
		}
	}
	e.Tags = append(e.Tags, tag)
}
