// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package taxonomy

import "testing"

func TestVersion(t *testing.T) {
	if got := Version(); got != 1 {
		t.Errorf("Version: got %d, want 1", got)
	}
}

func TestDefault(t *testing.T) {
	cats := Default()
	if len(cats) != 4 {
		t.Fatalf("got %d categories, want 4", len(cats))
	}

	want := map[string]int{
		"AI PROMPTS": 4,
		"AI TOOLS":   5,
		"COURSES":    5,
		"APPS":       5,
	}
	for _, c := range cats {
		subs, ok := want[c.Name]
		if !ok {
			t.Errorf("unexpected category %q", c.Name)
			continue
		}
		if len(c.Subcategories) != subs {
			t.Errorf("%s: got %d subcategories, want %d", c.Name, len(c.Subcategories), subs)
		}
		if c.Icon == "" || c.Purpose == "" {
			t.Errorf("%s: missing icon or purpose", c.Name)
		}
		if len(c.Tags) == 0 {
			t.Errorf("%s: expected tags", c.Name)
		}
	}
}

func TestDefaultReturnsCopies(t *testing.T) {
	first := Default()
	first[0].Name = "mutated"
	first[0].Subcategories[0] = "mutated"

	second := Default()
	if second[0].Name == "mutated" {
		t.Error("category struct shared between calls")
	}
	if second[0].Subcategories[0] == "mutated" {
		t.Error("subcategory slice shared between calls")
	}
}
