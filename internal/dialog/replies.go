package dialog

import (
	"fmt"
	"strings"

	"github.com/dateindesert/desertbot/internal/catalog"
)

// All outbound text lives here; no other component formats event data into
// messages. The copy is plain text with literal emoji markers.

const (
	// Welcome greets every new conversation and prompts for a choice.
	Welcome = "👋 Hi there! Welcome to *Date in Desert*, where real connections start at real events.\n" +
		"Ready to book your spot?\n" +
		"1️⃣ Yes, let’s start\n" +
		"2️⃣ Tell me more"

	// About describes the business for the "tell me more" branch.
	About = "🌴 *Date in Desert* hosts premium social events across UAE and beyond — from mixers to yacht parties. Say *Yes* when you're ready to start!"

	// DetailsPrompt asks for the four contact details, one per line.
	DetailsPrompt = "Great! I’ll just need a few quick details to reserve your spot.\n" +
		"Please reply in this format:\n\n" +
		"1️⃣ Name: \n" +
		"2️⃣ Phone Number: \n" +
		"3️⃣ Email: \n" +
		"4️⃣ Gender: Male / Female"

	// DetailsFormatReminder is sent when fewer than four lines arrive.
	DetailsFormatReminder = "⚠️ Please reply with your details in this simple format (each line new):\n\n" +
		"Name\n" +
		"Phone Number\n" +
		"Email\n" +
		"Gender (Male / Female)"

	// GmailWarning rejects contact details whose email is not a Gmail address.
	GmailWarning = "⚠️ Please enter a valid Gmail address ending with *@gmail.com*."

	// InvalidSelection is sent when no event matches the user's reply.
	InvalidSelection = "⚠️ Please reply with a valid event number or name."

	// AgePrompt asks for age confirmation on restricted events.
	AgePrompt = "This event is strictly 21+. Please confirm your age:\n" +
		"• I am 21 or above\n" +
		"• I am below 21"

	// AgeReprompt is sent when the age reply cannot be interpreted.
	AgeReprompt = "⚠️ Please enter your age (e.g., 'I'm 22' or '21+')."

	// AgeVerified confirms eligibility before showing event details.
	AgeVerified = "✅ Age verified! You’re eligible to attend our events."

	// UnderageRejection turns away underage guests and offers alternatives.
	UnderageRejection = "❌ Sorry! Our events are for guests aged 21+ only.\n\n" +
		"Do you want to explore other events?\n" +
		"1. Yes\n" +
		"2. I’ll pass this one"

	// BookingReceived confirms a booking request.
	BookingReceived = "✅ Your booking request has been received! Our team will contact you soon 💬"

	// QuestionReceived promises a follow-up for open questions.
	QuestionReceived = "💬 Our team will be in touch soon to answer your questions!"

	// Farewell closes the conversation when the user passes.
	Farewell = "No problem. Let us know if you change your mind. 🌟"

	// restrictedNote is the fixed note shown on age-restricted detail cards.
	restrictedNote = "21+ Wine & Social Evening"
)

// EventList renders the catalog listing, one `id. name (date)` line per
// event in catalog order. The first listing after detail collection carries
// a celebratory header; re-listings use the shorter one.
func EventList(events []catalog.Event, first bool) string {
	var b strings.Builder
	if first {
		b.WriteString("🎉 Here are our upcoming events, pick one to explore details:\n")
	} else {
		b.WriteString("Here are our upcoming events, pick one:\n")
	}
	for _, ev := range events {
		fmt.Fprintf(&b, "\n%d. %s (%s)", ev.ID, ev.Name, ev.Date)
	}
	if first {
		b.WriteString("\n\nReply with the *event name* or *number* to see details.")
	} else {
		b.WriteString("\n\nReply with the event name or number.")
	}
	return b.String()
}

// EventDetails renders the full detail card for one event, followed by the
// three numbered options whose digits drive the next step.
func EventDetails(ev *catalog.Event) string {
	var b strings.Builder
	b.WriteString("(Event Details):\n")
	fmt.Fprintf(&b, "Event: %s\n", ev.Name)
	fmt.Fprintf(&b, "Location: %s\n", ev.Location)
	fmt.Fprintf(&b, "Date: %s\n", ev.Date)
	fmt.Fprintf(&b, "Price: %s\n", ev.Price)
	fmt.Fprintf(&b, "Dress Code: %s\n", ev.DressCode)
	if ev.AgeRestriction {
		fmt.Fprintf(&b, "Note: %s\n", restrictedNote)
	}
	b.WriteString("Would you like to book this event?\n")
	b.WriteString("Options:\n")
	b.WriteString("1️⃣ Yes, Book\n")
	b.WriteString("2️⃣ Show another event\n")
	b.WriteString("3️⃣ Ask a question")
	return b.String()
}
