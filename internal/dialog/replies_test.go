package dialog

import (
	"strings"
	"testing"

	"github.com/dateindesert/desertbot/internal/catalog"
)

func TestEventListHeaders(t *testing.T) {
	events := []catalog.Event{
		{ID: 1, Name: "Midnight Mixer", Date: "Feb 3"},
		{ID: 2, Name: "Sunset Yacht Party", Date: "Feb 10"},
	}

	first := EventList(events, true)
	if !strings.HasPrefix(first, "🎉 Here are our upcoming events, pick one to explore details:") {
		t.Fatalf("first listing header wrong:\n%s", first)
	}
	if !strings.HasSuffix(first, "Reply with the *event name* or *number* to see details.") {
		t.Fatalf("first listing footer wrong:\n%s", first)
	}

	again := EventList(events, false)
	if !strings.HasPrefix(again, "Here are our upcoming events, pick one:") {
		t.Fatalf("re-listing header wrong:\n%s", again)
	}
	if !strings.HasSuffix(again, "Reply with the event name or number.") {
		t.Fatalf("re-listing footer wrong:\n%s", again)
	}

	for _, listing := range []string{first, again} {
		if !strings.Contains(listing, "\n1. Midnight Mixer (Feb 3)") {
			t.Errorf("listing missing first entry:\n%s", listing)
		}
		if !strings.Contains(listing, "\n2. Sunset Yacht Party (Feb 10)") {
			t.Errorf("listing missing second entry:\n%s", listing)
		}
	}
}

func TestEventDetailsNote(t *testing.T) {
	restricted := &catalog.Event{
		ID: 1, Name: "Midnight Mixer", Location: "Dubai",
		Date: "Feb 3", Price: "$75", DressCode: "Cocktail",
		AgeRestriction: true,
	}
	card := EventDetails(restricted)
	for _, want := range []string{
		"(Event Details):",
		"Event: Midnight Mixer",
		"Location: Dubai",
		"Date: Feb 3",
		"Price: $75",
		"Dress Code: Cocktail",
		"Note: 21+ Wine & Social Evening",
		"1️⃣ Yes, Book",
		"2️⃣ Show another event",
		"3️⃣ Ask a question",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("detail card missing %q:\n%s", want, card)
		}
	}

	open := &catalog.Event{ID: 3, Name: "Elite Singles Dinner", Location: "Dubai", Date: "Feb 16", Price: "$90", DressCode: "Formal"}
	if strings.Contains(EventDetails(open), "Note:") {
		t.Error("unrestricted detail card must not carry a note line")
	}
}
