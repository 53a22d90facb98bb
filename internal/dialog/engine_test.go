package dialog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dateindesert/desertbot/internal/catalog"
	"github.com/dateindesert/desertbot/internal/leads"
	"github.com/dateindesert/desertbot/internal/session"
)

type captureRecorder struct {
	leads []*leads.Lead
	err   error
}

func (r *captureRecorder) Record(_ context.Context, lead *leads.Lead) error {
	if r.err != nil {
		return r.err
	}
	r.leads = append(r.leads, lead)
	return nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Event{
		{ID: 1, Name: "Midnight Mixer", Location: "Dubai", Date: "Feb 3", Price: "$75", DressCode: "Cocktail", AgeRestriction: true},
		{ID: 2, Name: "Sunset Yacht Party", Location: "Abu Dhabi", Date: "Feb 10", Price: "$120", DressCode: "All White", AgeRestriction: true},
		{ID: 3, Name: "Elite Singles Dinner", Location: "Dubai", Date: "Feb 16", Price: "$90", DressCode: "Formal"},
		{ID: 4, Name: "Wine & Conversations", Location: "Doha", Date: "Mar 5", Price: "$60", DressCode: "Smart Casual", AgeRestriction: true},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func newTestEngine(t *testing.T, rec leads.Recorder) *Engine {
	t.Helper()
	return New(testCatalog(t), session.NewStore(), rec)
}

const detailsMessage = "Lena\n+971501234567\nlena@gmail.com\nFemale"

// drive replays a message sequence and returns the replies to the last one.
func drive(t *testing.T, e *Engine, user string, messages ...string) []string {
	t.Helper()
	ctx := context.Background()
	var last []string
	for _, m := range messages {
		last = e.Handle(ctx, user, m)
	}
	return last
}

func TestFirstMessageGreets(t *testing.T) {
	e := newTestEngine(t, nil)
	replies := drive(t, e, "u1", "hi")
	if len(replies) != 1 || replies[0] != Welcome {
		t.Fatalf("replies = %v, want single welcome", replies)
	}
	// The greeting itself must not be consumed as a choice: a second
	// message is needed to advance.
	replies = drive(t, e, "u1", "1")
	if len(replies) != 1 || replies[0] != DetailsPrompt {
		t.Fatalf("replies = %v, want details prompt", replies)
	}
}

func TestGreetingBranches(t *testing.T) {
	t.Run("tell me more stays in greeting", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", "hi", "2")
		if len(replies) != 1 || replies[0] != About {
			t.Fatalf("replies = %v, want about text", replies)
		}
		// Still in greeting: yes now advances.
		replies = drive(t, e, "u1", "yes")
		if len(replies) != 1 || replies[0] != DetailsPrompt {
			t.Fatalf("replies = %v, want details prompt", replies)
		}
	})
	t.Run("unrecognized input is ignored", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", "hi", "what is this")
		if len(replies) != 0 {
			t.Fatalf("replies = %v, want none", replies)
		}
	})
}

func TestCollectAll(t *testing.T) {
	t.Run("too few lines", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", "hi", "1", "Lena\n+971501234567")
		if len(replies) != 1 || replies[0] != DetailsFormatReminder {
			t.Fatalf("replies = %v, want format reminder", replies)
		}
	})
	t.Run("non-gmail address rejected", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", "hi", "1", "Lena\n+971501234567\nlena@hotmail.com\nFemale")
		if len(replies) != 1 || replies[0] != GmailWarning {
			t.Fatalf("replies = %v, want gmail warning", replies)
		}
		// Correct details still accepted afterwards.
		replies = drive(t, e, "u1", detailsMessage)
		if len(replies) != 1 || !strings.Contains(replies[0], "upcoming events") {
			t.Fatalf("replies = %v, want event list", replies)
		}
	})
	t.Run("gmail accepted lists all events", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", "hi", "1", detailsMessage)
		if len(replies) != 1 {
			t.Fatalf("replies = %v, want one", replies)
		}
		list := replies[0]
		for _, want := range []string{
			"1. Midnight Mixer (Feb 3)",
			"2. Sunset Yacht Party (Feb 10)",
			"3. Elite Singles Dinner (Feb 16)",
			"4. Wine & Conversations (Mar 5)",
		} {
			if !strings.Contains(list, want) {
				t.Errorf("event list missing %q:\n%s", want, list)
			}
		}
	})
	t.Run("gmail suffix is case-insensitive", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", "hi", "1", "Lena\n+971501234567\nLena@Gmail.COM\nFemale")
		if len(replies) != 1 || !strings.Contains(replies[0], "upcoming events") {
			t.Fatalf("replies = %v, want event list", replies)
		}
	})
}

func TestShowEvents(t *testing.T) {
	t.Run("invalid selection", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", "hi", "1", detailsMessage, "7")
		if len(replies) != 1 || replies[0] != InvalidSelection {
			t.Fatalf("replies = %v, want invalid selection", replies)
		}
		// Re-selection still possible.
		replies = drive(t, e, "u1", "3")
		if len(replies) != 1 || !strings.Contains(replies[0], "Elite Singles Dinner") {
			t.Fatalf("replies = %v, want event details", replies)
		}
	})
	t.Run("unrestricted event shows details directly", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", "hi", "1", detailsMessage, "elite singles dinner")
		if len(replies) != 1 {
			t.Fatalf("replies = %v, want one", replies)
		}
		details := replies[0]
		if !strings.Contains(details, "Event: Elite Singles Dinner") {
			t.Fatalf("details missing event name:\n%s", details)
		}
		if strings.Contains(details, "Note:") {
			t.Fatalf("unrestricted event must not carry the 21+ note:\n%s", details)
		}
	})
	t.Run("restricted event asks for age", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", "hi", "1", detailsMessage, "1")
		if len(replies) != 1 || replies[0] != AgePrompt {
			t.Fatalf("replies = %v, want age prompt", replies)
		}
	})
}

func TestVerifyAge(t *testing.T) {
	start := []string{"hi", "1", detailsMessage, "1"}

	t.Run("underage number", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", append(start, "I am 19")...)
		if len(replies) != 1 || replies[0] != UnderageRejection {
			t.Fatalf("replies = %v, want underage rejection", replies)
		}
	})
	t.Run("eligible number", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", append(start, "i'm 22")...)
		if len(replies) != 2 || replies[0] != AgeVerified {
			t.Fatalf("replies = %v, want verification then details", replies)
		}
		if !strings.Contains(replies[1], "Event: Midnight Mixer") {
			t.Fatalf("second reply = %q, want midnight mixer details", replies[1])
		}
		if !strings.Contains(replies[1], "Note: 21+ Wine & Social Evening") {
			t.Fatalf("restricted details must carry the 21+ note:\n%s", replies[1])
		}
	})
	t.Run("a number governs over keywords", func(t *testing.T) {
		// "below 21" contains the number 21, which passes the check.
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", append(start, "I am below 21")...)
		if len(replies) != 2 || replies[0] != AgeVerified {
			t.Fatalf("replies = %v, want verification then details", replies)
		}
	})
	t.Run("keyword fallback without number", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", append(start, "i am under age")...)
		if len(replies) != 1 || replies[0] != UnderageRejection {
			t.Fatalf("replies = %v, want underage rejection", replies)
		}
	})
	t.Run("uninterpretable reply reprompts", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", append(start, "maybe")...)
		if len(replies) != 1 || replies[0] != AgeReprompt {
			t.Fatalf("replies = %v, want age reprompt", replies)
		}
		// Still in verification: a number now resolves it.
		replies = drive(t, e, "u1", "23")
		if len(replies) != 2 || replies[0] != AgeVerified {
			t.Fatalf("replies = %v, want verification then details", replies)
		}
	})
}

func TestUnderageFollowUp(t *testing.T) {
	start := []string{"hi", "1", detailsMessage, "1", "I am 19"}

	t.Run("explore other events", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", append(start, "1")...)
		if len(replies) != 1 || !strings.Contains(replies[0], "Here are our upcoming events, pick one:") {
			t.Fatalf("replies = %v, want short re-list", replies)
		}
		// The re-list uses the plain header, not the celebratory one.
		if strings.Contains(replies[0], "🎉") {
			t.Fatalf("re-list must use the short header:\n%s", replies[0])
		}
		// And the user can pick the unrestricted event next.
		replies = drive(t, e, "u1", "3")
		if len(replies) != 1 || !strings.Contains(replies[0], "Elite Singles Dinner") {
			t.Fatalf("replies = %v, want event details", replies)
		}
	})
	t.Run("pass ends the conversation", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", append(start, "2")...)
		if len(replies) != 1 || replies[0] != Farewell {
			t.Fatalf("replies = %v, want farewell", replies)
		}
		// Any further message restarts with a fresh greeting.
		replies = drive(t, e, "u1", "hello again")
		if len(replies) != 1 || replies[0] != Welcome {
			t.Fatalf("replies = %v, want welcome", replies)
		}
	})
	t.Run("unrecognized input is ignored", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", append(start, "hmm")...)
		if len(replies) != 0 {
			t.Fatalf("replies = %v, want none", replies)
		}
	})
}

func TestEventOptions(t *testing.T) {
	start := []string{"hi", "1", detailsMessage, "3"}

	t.Run("booking records a lead and ends", func(t *testing.T) {
		rec := &captureRecorder{}
		e := newTestEngine(t, rec)
		replies := drive(t, e, "u1", append(start, "1")...)
		if len(replies) != 1 || replies[0] != BookingReceived {
			t.Fatalf("replies = %v, want booking confirmation", replies)
		}
		if len(rec.leads) != 1 {
			t.Fatalf("recorded leads = %d, want 1", len(rec.leads))
		}
		lead := rec.leads[0]
		if lead.Kind != leads.KindBooking {
			t.Errorf("Kind = %q, want booking", lead.Kind)
		}
		if lead.Name != "Lena" || lead.Email != "lena@gmail.com" {
			t.Errorf("lead contact = %q/%q, want collected details", lead.Name, lead.Email)
		}
		if lead.EventID != 3 || lead.EventName != "Elite Singles Dinner" {
			t.Errorf("lead event = %d/%q, want selected event", lead.EventID, lead.EventName)
		}
		// Conversation restarts on next message.
		replies = drive(t, e, "u1", "hi")
		if len(replies) != 1 || replies[0] != Welcome {
			t.Fatalf("replies = %v, want welcome", replies)
		}
	})
	t.Run("show another re-lists", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", append(start, "2")...)
		if len(replies) != 1 || !strings.Contains(replies[0], "Here are our upcoming events, pick one:") {
			t.Fatalf("replies = %v, want short re-list", replies)
		}
	})
	t.Run("question records a lead and ends", func(t *testing.T) {
		rec := &captureRecorder{}
		e := newTestEngine(t, rec)
		replies := drive(t, e, "u1", append(start, "3")...)
		if len(replies) != 1 || replies[0] != QuestionReceived {
			t.Fatalf("replies = %v, want question follow-up", replies)
		}
		if len(rec.leads) != 1 || rec.leads[0].Kind != leads.KindQuestion {
			t.Fatalf("recorded leads = %v, want one question lead", rec.leads)
		}
	})
	t.Run("lead failure does not change the reply", func(t *testing.T) {
		rec := &captureRecorder{err: errors.New("db down")}
		e := newTestEngine(t, rec)
		replies := drive(t, e, "u1", append(start, "1")...)
		if len(replies) != 1 || replies[0] != BookingReceived {
			t.Fatalf("replies = %v, want booking confirmation despite failure", replies)
		}
	})
	t.Run("unrecognized input is ignored", func(t *testing.T) {
		e := newTestEngine(t, nil)
		replies := drive(t, e, "u1", append(start, "perhaps")...)
		if len(replies) != 0 {
			t.Fatalf("replies = %v, want none", replies)
		}
	})
}

func TestRestartKeepsNothing(t *testing.T) {
	e := newTestEngine(t, nil)
	drive(t, e, "u1", "hi", "1", detailsMessage, "3", "1") // full booking flow
	// After restart the old contact details are gone: the flow demands
	// them again before showing events.
	replies := drive(t, e, "u1", "hello", "1", "just my name")
	if len(replies) != 1 || replies[0] != DetailsFormatReminder {
		t.Fatalf("replies = %v, want format reminder", replies)
	}
}

func TestUsersAreIndependent(t *testing.T) {
	e := newTestEngine(t, nil)
	drive(t, e, "u1", "hi", "1", detailsMessage)
	// A brand new user still starts at the greeting.
	replies := drive(t, e, "u2", "hi")
	if len(replies) != 1 || replies[0] != Welcome {
		t.Fatalf("replies = %v, want welcome for new user", replies)
	}
	// u1 is unaffected and can still pick an event.
	replies = drive(t, e, "u1", "3")
	if len(replies) != 1 || !strings.Contains(replies[0], "Elite Singles Dinner") {
		t.Fatalf("replies = %v, want event details", replies)
	}
}
