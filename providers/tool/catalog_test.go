package tool

import (
	"context"
	"testing"

	"github.com/leofalp/agentgraph/providers/ai"
)

// staticTool is a minimal GenericTool for catalog tests.
type staticTool struct {
	name string
}

func (t *staticTool) ToolInfo() ai.ToolDescription {
	return ai.ToolDescription{Name: t.name}
}

func (t *staticTool) Call(_ context.Context, _ string) (string, error) {
	return `{}`, nil
}

func TestCatalogCaseInsensitiveLookup(t *testing.T) {
	catalog := NewCatalogWithTools(&staticTool{name: "Multiply"})

	for _, name := range []string{"multiply", "Multiply", "MULTIPLY"} {
		if _, exists := catalog.Get(name); !exists {
			t.Errorf("lookup %q failed", name)
		}
		if !catalog.Has(name) {
			t.Errorf("Has(%q) = false", name)
		}
	}

	if _, exists := catalog.Get("divide"); exists {
		t.Error("unexpected hit for unregistered tool")
	}
}

func TestCatalogSize(t *testing.T) {
	catalog := NewCatalog()
	if catalog.Size() != 0 {
		t.Errorf("expected empty catalog, got size %d", catalog.Size())
	}

	catalog.AddTools(&staticTool{name: "a"}, &staticTool{name: "b"})
	if catalog.Size() != 2 {
		t.Errorf("expected size 2, got %d", catalog.Size())
	}

	// Re-adding under the same name replaces, not duplicates.
	catalog.AddTools(&staticTool{name: "A"})
	if catalog.Size() != 2 {
		t.Errorf("expected size 2 after replacement, got %d", catalog.Size())
	}
}

func TestCatalogDescriptionsSorted(t *testing.T) {
	catalog := NewCatalogWithTools(
		&staticTool{name: "divide"},
		&staticTool{name: "add"},
		&staticTool{name: "multiply"},
	)

	descriptions := catalog.Descriptions()
	wantOrder := []string{"add", "divide", "multiply"}
	if len(descriptions) != len(wantOrder) {
		t.Fatalf("expected %d descriptions, got %d", len(wantOrder), len(descriptions))
	}
	for index, want := range wantOrder {
		if descriptions[index].Name != want {
			t.Errorf("description %d: expected %q, got %q", index, want, descriptions[index].Name)
		}
	}
}
