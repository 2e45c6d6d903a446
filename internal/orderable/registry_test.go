package orderable

import (
	"testing"

	"github.com/automindlabs/site-go/internal/store"
)

func TestSectionRegistryFailOpen(t *testing.T) {
	reg := NewSectionRegistry([]store.Section{
		{ID: 1, Name: "hero", Page: "home", IsVisible: true, Position: 0},
		{ID: 2, Name: "reviews", Page: "home", IsVisible: false, Position: 1},
	})

	if !reg.IsVisible("hero") {
		t.Error("hero should be visible")
	}
	if reg.IsVisible("reviews") {
		t.Error("reviews is hidden")
	}
	// Names with no registry row render; hiding requires an explicit row.
	if !reg.IsVisible("brand-new-section") {
		t.Error("unknown section should fail open to visible")
	}
}

func TestSectionRegistryPageOrder(t *testing.T) {
	reg := NewSectionRegistry([]store.Section{
		{ID: 1, Name: "faq", Page: "home", Position: 2},
		{ID: 2, Name: "hero", Page: "home", Position: 0},
		{ID: 3, Name: "services", Page: "home", Position: 1},
		{ID: 4, Name: "booking", Page: "booking", Position: 0},
	})

	home := reg.Page("home")
	if len(home) != 3 {
		t.Fatalf("got %d home sections, want 3", len(home))
	}
	want := []string{"hero", "services", "faq"}
	for i, w := range want {
		if home[i].Name != w {
			t.Errorf("home[%d] = %q, want %q", i, home[i].Name, w)
		}
	}
}
