package domain

import (
	"strings"
	"testing"
)

func TestUniqueAttributeKey(t *testing.T) {
	e := NewEntry()
	if got := e.UniqueAttributeKey("note"); got != "note" {
		t.Errorf("Free key should pass through, got %q", got)
	}

	e.SetAttribute("note", "first", false)
	suffixed := e.UniqueAttributeKey("note")
	if suffixed == "note" || !strings.HasPrefix(suffixed, "note_") {
		t.Errorf("Colliding key should be suffixed, got %q", suffixed)
	}

	e.SetAttribute(suffixed, "second", false)
	third := e.UniqueAttributeKey("note")
	if third == "note" || third == suffixed {
		t.Errorf("Suffixes must stay unique, got %q", third)
	}
}

func TestAttributeOrder(t *testing.T) {
	e := NewEntry()
	e.SetAttribute("b", "1", false)
	e.SetAttribute("a", "2", true)
	if e.Attributes[0].Key != "b" || e.Attributes[1].Key != "a" {
		t.Error("Attributes must keep insertion order")
	}
	if e.Attribute("a") != "2" || e.Attribute("missing") != "" {
		t.Error("Attribute lookup mismatch")
	}
}

func TestAddTagDeduplicates(t *testing.T) {
	e := NewEntry()
	e.AddTag("Favorite")
	e.AddTag("Favorite")
	if len(e.Tags) != 1 {
		t.Errorf("Expected 1 tag, got %v", e.Tags)
	}
}

func TestTreeFindEntry(t *testing.T) {
	tree := NewTree("Root")
	group := NewGroup("Work", tree.Root)

	inRoot := NewEntry()
	inRoot.Title = "loose"
	tree.Root.AddEntry(inRoot)

	inGroup := NewEntry()
	inGroup.Title = "site"
	group.AddEntry(inGroup)

	if tree.FindEntry("site") != inGroup || tree.FindEntry("loose") != inRoot {
		t.Error("FindEntry should search root and subgroups")
	}
	if tree.FindEntry("absent") != nil {
		t.Error("Missing titles return nil")
	}
	if tree.EntryCount() != 2 {
		t.Errorf("Expected 2 entries, got %d", tree.EntryCount())
	}
	if group.Parent != tree.Root {
		t.Error("NewGroup should attach to the parent")
	}
}
