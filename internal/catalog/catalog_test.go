package catalog

import "testing"

func testEvents() []Event {
	return []Event{
		{ID: 1, Name: "Midnight Mixer", Location: "Dubai", Date: "Feb 3", Price: "$75", DressCode: "Cocktail", AgeRestriction: true},
		{ID: 2, Name: "Sunset Yacht Party", Location: "Abu Dhabi", Date: "Feb 10", Price: "$120", DressCode: "All White", AgeRestriction: true},
		{ID: 3, Name: "Elite Singles Dinner", Location: "Dubai", Date: "Feb 16", Price: "$90", DressCode: "Formal"},
		{ID: 4, Name: "Wine & Conversations", Location: "Doha", Date: "Mar 5", Price: "$60", DressCode: "Smart Casual", AgeRestriction: true},
	}
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name   string
		events []Event
	}{
		{"empty", nil},
		{"non-positive id", []Event{{ID: 0, Name: "X"}}},
		{"empty name", []Event{{ID: 1, Name: "  "}}},
		{"duplicate id", []Event{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}}},
		{"duplicate name case-insensitive", []Event{{ID: 1, Name: "Mixer"}, {ID: 2, Name: "mixer"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.events); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestFind(t *testing.T) {
	c, err := New(testEvents())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		selector string
		wantID   int
	}{
		{"2", 2},
		{" 2 ", 2},
		{"midnight mixer", 1},
		{"MIDNIGHT MIXER", 1},
		{"Wine & Conversations", 4},
		{"", 0},
		{"5", 0},
		{"02", 0},       // not the exact digit spelling of any id
		{"2 please", 0}, // selector must be the bare id or full name
		{"Midnight", 0}, // partial names never resolve
	}
	for _, tc := range cases {
		t.Run(tc.selector, func(t *testing.T) {
			ev := c.Find(tc.selector)
			if tc.wantID == 0 {
				if ev != nil {
					t.Fatalf("Find(%q) = %v, want nil", tc.selector, ev.Name)
				}
				return
			}
			if ev == nil || ev.ID != tc.wantID {
				t.Fatalf("Find(%q) = %v, want id %d", tc.selector, ev, tc.wantID)
			}
		})
	}
}

func TestLookupIdentity(t *testing.T) {
	c, err := New(testEvents())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.ByID(1) != c.ByName("Midnight Mixer") {
		t.Fatal("ByID and ByName must return the same event pointer")
	}
	if c.ByID(1) != c.Find("1") {
		t.Fatal("Find must return the same event pointer as ByID")
	}
}

func TestListIsCopy(t *testing.T) {
	c, err := New(testEvents())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	list := c.List()
	if len(list) != c.Len() {
		t.Fatalf("List len = %d, want %d", len(list), c.Len())
	}
	list[0].Name = "mutated"
	if c.ByID(1).Name != "Midnight Mixer" {
		t.Fatal("mutating List() result must not affect the catalog")
	}
}
