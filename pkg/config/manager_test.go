package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// noteSection is a minimal Section used where the test only cares about
// manager bookkeeping, not real settings.
type noteSection struct {
	id      string
	data    map[string]interface{}
	invalid bool
	resets  int
}

func (n *noteSection) ID() string                   { return n.id }
func (n *noteSection) Title() string                { return "Notes" }
func (n *noteSection) Description() string          { return "scratch settings for tests" }
func (n *noteSection) Data() map[string]interface{} { return n.data }
func (n *noteSection) SetData(data map[string]interface{}) error {
	n.data = data
	return nil
}
func (n *noteSection) Validate() error {
	if n.invalid {
		return fmt.Errorf("section %s is invalid", n.id)
	}
	return nil
}
func (n *noteSection) Reset() {
	n.data = map[string]interface{}{}
	n.resets++
}

// failStore fails Load and Save on demand; section access always works.
type failStore struct {
	loadErr error
	saveErr error
}

func (f *failStore) Load() error { return f.loadErr }
func (f *failStore) Save() error { return f.saveErr }
func (f *failStore) GetSection(string) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}
func (f *failStore) SetSection(string, map[string]interface{}) error { return nil }

func newTempManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return NewManager(store), path
}

func TestManager_RegisterSection(t *testing.T) {
	t.Run("registers and retrieves by id", func(t *testing.T) {
		m, _ := newTempManager(t)

		if err := m.RegisterSection(NewSearchSection()); err != nil {
			t.Fatalf("RegisterSection failed: %v", err)
		}

		section, ok := m.GetSection(SectionIDSearch)
		if !ok {
			t.Fatal("Expected the search section to be registered")
		}
		if section.ID() != SectionIDSearch {
			t.Errorf("Expected id %q, got %q", SectionIDSearch, section.ID())
		}
		if _, ok := m.GetSection("unknown"); ok {
			t.Error("Expected lookup miss for an unregistered id")
		}
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		m, _ := newTempManager(t)

		if err := m.RegisterSection(NewSearchSection()); err != nil {
			t.Fatalf("RegisterSection failed: %v", err)
		}
		err := m.RegisterSection(NewSearchSection())
		if err == nil {
			t.Fatal("Expected error for a duplicate section id")
		}
		if !strings.Contains(err.Error(), SectionIDSearch) {
			t.Errorf("Error should name the duplicate id, got %v", err)
		}
	})

	t.Run("preserves registration order", func(t *testing.T) {
		m, _ := newTempManager(t)

		m.RegisterSection(&noteSection{id: "zz_last_alphabetically"})
		m.RegisterSection(NewSearchSection())
		m.RegisterSection(&noteSection{id: "aa_first_alphabetically"})

		sections := m.GetSections()
		if len(sections) != 3 {
			t.Fatalf("Expected 3 sections, got %d", len(sections))
		}
		wantOrder := []string{"zz_last_alphabetically", SectionIDSearch, "aa_first_alphabetically"}
		for i, want := range wantOrder {
			if sections[i].ID() != want {
				t.Errorf("Position %d: expected %q, got %q", i, want, sections[i].ID())
			}
		}
	})
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("applies stored data to the search section", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		writeConfigFile(t, path, map[string]interface{}{
			"default_language":   "ja-JP",
			"headless":           false,
			"navigation_timeout": "45s",
		})

		store, err := NewFileStore(path)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		m := NewManager(store)
		search := NewSearchSection()
		m.RegisterSection(search)

		if err := m.LoadAll(); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}

		if search.GetDefaultLanguage() != "ja-JP" {
			t.Errorf("Expected ja-JP, got %q", search.GetDefaultLanguage())
		}
		if search.GetHeadless() {
			t.Error("Expected headless disabled")
		}
		nav, _, _, _, _ := search.GetTimeouts()
		if nav.Seconds() != 45 {
			t.Errorf("Expected 45s navigation timeout, got %v", nav)
		}
	})

	t.Run("leaves defaults when nothing is stored", func(t *testing.T) {
		m, _ := newTempManager(t)
		search := NewSearchSection()
		m.RegisterSection(search)

		if err := m.LoadAll(); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}
		if search.GetDefaultLanguage() != "zh-CN" {
			t.Errorf("Expected zh-CN default, got %q", search.GetDefaultLanguage())
		}
	})

	t.Run("propagates store load failure", func(t *testing.T) {
		m := NewManager(&failStore{loadErr: fmt.Errorf("disk gone")})
		m.RegisterSection(NewSearchSection())

		if err := m.LoadAll(); err == nil {
			t.Error("Expected LoadAll to surface the store error")
		}
	})
}

func TestManager_SaveAll(t *testing.T) {
	t.Run("persists modified sections", func(t *testing.T) {
		m, path := newTempManager(t)
		search := NewSearchSection()
		m.RegisterSection(search)

		search.SetDefaultLanguage("en-US")
		search.SetHeadless(false)
		if err := m.SaveAll(); err != nil {
			t.Fatalf("SaveAll failed: %v", err)
		}

		// A fresh manager on the same file sees the saved values.
		reopened, err := NewFileStore(path)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		m2 := NewManager(reopened)
		restored := NewSearchSection()
		m2.RegisterSection(restored)
		if err := m2.LoadAll(); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}

		if restored.GetDefaultLanguage() != "en-US" {
			t.Errorf("Expected en-US after reload, got %q", restored.GetDefaultLanguage())
		}
		if restored.GetHeadless() {
			t.Error("Expected headless disabled after reload")
		}
	})

	t.Run("invalid section blocks the whole save", func(t *testing.T) {
		m, path := newTempManager(t)
		search := NewSearchSection()
		m.RegisterSection(search)
		m.RegisterSection(&noteSection{id: "broken", invalid: true})

		err := m.SaveAll()
		if err == nil {
			t.Fatal("Expected SaveAll to fail validation")
		}
		if !strings.Contains(err.Error(), "broken") {
			t.Errorf("Error should name the invalid section, got %v", err)
		}
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Error("Nothing should be written when validation fails")
		}
	})

	t.Run("propagates store save failure", func(t *testing.T) {
		m := NewManager(&failStore{saveErr: fmt.Errorf("disk full")})
		m.RegisterSection(NewSearchSection())

		if err := m.SaveAll(); err == nil {
			t.Error("Expected SaveAll to surface the store error")
		}
	})
}

func TestManager_ResetAll(t *testing.T) {
	m, _ := newTempManager(t)
	search := NewSearchSection()
	note := &noteSection{id: "notes"}
	m.RegisterSection(search)
	m.RegisterSection(note)

	search.SetDefaultLanguage("fr-FR")
	search.SetHeadless(false)

	m.ResetAll()

	if search.GetDefaultLanguage() != "zh-CN" {
		t.Errorf("Expected zh-CN after reset, got %q", search.GetDefaultLanguage())
	}
	if !search.GetHeadless() {
		t.Error("Expected headless restored by reset")
	}
	if note.resets != 1 {
		t.Errorf("Expected every section reset exactly once, got %d", note.resets)
	}
}

func TestManager_Store(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	m := NewManager(store)

	if m.Store() != store {
		t.Error("Store should return the backing store")
	}
}
