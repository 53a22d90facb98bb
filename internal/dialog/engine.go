// Package dialog drives the booking conversation. The engine is a per-user
// state machine: each inbound message is classified, dispatched to the
// handler for the session's current state, and answered with zero or more
// replies in order.
package dialog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dateindesert/desertbot/core/logger"
	"github.com/dateindesert/desertbot/internal/catalog"
	"github.com/dateindesert/desertbot/internal/intent"
	"github.com/dateindesert/desertbot/internal/leads"
	"github.com/dateindesert/desertbot/internal/session"
)

type handlerFunc func(ctx context.Context, sess *session.Session, in intent.Intent) []string

// Engine binds the catalog, session store and lead recorder into one
// message-handling unit. It is safe for concurrent use; the session store
// serializes processing per user.
type Engine struct {
	catalog  *catalog.Catalog
	sessions *session.Store
	leads    leads.Recorder

	handlers map[session.State]handlerFunc
}

// New constructs the dialogue engine. A nil recorder is replaced with a
// discarding one.
func New(cat *catalog.Catalog, store *session.Store, rec leads.Recorder) *Engine {
	if rec == nil {
		rec = leads.Nop{}
	}
	e := &Engine{
		catalog:  cat,
		sessions: store,
		leads:    rec,
	}
	e.handlers = map[session.State]handlerFunc{
		session.StateGreeting:     e.onGreeting,
		session.StateCollectAll:   e.onCollectAll,
		session.StateShowEvents:   e.onShowEvents,
		session.StateVerifyAge:    e.onVerifyAge,
		session.StateUnderage:     e.onUnderage,
		session.StateEventOptions: e.onEventOptions,
	}
	return e
}

// Handle processes one inbound message for userID and returns the replies to
// send, in order. An empty slice means the message is deliberately ignored.
func (e *Engine) Handle(ctx context.Context, userID, text string) []string {
	sess, release := e.sessions.Acquire(userID)
	defer release()

	// A finished conversation restarts on any message: fresh session,
	// greeting sent immediately without waiting for a second message.
	if sess.State == session.StateEnd {
		sess = e.sessions.Reset(userID)
		e.logTransition(ctx, sess, session.StateEnd, "restart")
		return []string{Welcome}
	}

	// First contact ever: greet and wait for a choice.
	if !sess.Greeted {
		sess.Greeted = true
		e.logTransition(ctx, sess, session.StateGreeting, "greet")
		return []string{Welcome}
	}

	in := intent.Classify(text)
	handler, ok := e.handlers[sess.State]
	if !ok {
		logger.Error(ctx, "service.dialog", "dialog.unknown_state",
			slog.String("user_id", sess.UserID),
			slog.String("state", string(sess.State)),
		)
		sess.State = session.StateGreeting
		return []string{Welcome}
	}

	from := sess.State
	replies := handler(ctx, sess, in)
	if sess.State != from {
		e.logTransition(ctx, sess, from, "message")
	}
	return replies
}

func (e *Engine) logTransition(ctx context.Context, sess *session.Session, from session.State, cause string) {
	attrs := []slog.Attr{
		slog.String("user_id", sess.UserID),
		slog.String("from_state", string(from)),
		slog.String("to_state", string(sess.State)),
		slog.String("cause", cause),
	}
	if sess.SelectedEvent != nil {
		attrs = append(attrs,
			slog.Int("event_id", sess.SelectedEvent.ID),
			slog.String("event_name", sess.SelectedEvent.Name),
		)
	}
	logger.Info(ctx, "service.dialog", "dialog.transition", attrs...)
}

// onGreeting handles the yes/tell-me-more choice after the welcome message.
// Unrecognized input is ignored so stray stickers or typos do not spam the
// user with reprompts.
func (e *Engine) onGreeting(_ context.Context, sess *session.Session, in intent.Intent) []string {
	switch {
	case in.Has("1") || in.SaysYes():
		sess.State = session.StateCollectAll
		return []string{DetailsPrompt}
	case in.Has("2") || in.Has("tell me more"):
		return []string{About}
	}
	return nil
}

// onCollectAll parses the four-line contact details message. The email must
// be a Gmail address; on any validation failure no field is stored and the
// state does not advance.
func (e *Engine) onCollectAll(_ context.Context, sess *session.Session, in intent.Intent) []string {
	if len(in.Lines) < 4 {
		return []string{DetailsFormatReminder}
	}
	email := in.Lines[2]
	if !strings.HasSuffix(strings.ToLower(email), "@gmail.com") {
		return []string{GmailWarning}
	}
	sess.Name = in.Lines[0]
	sess.Phone = in.Lines[1]
	sess.Email = email
	sess.Gender = in.Lines[3]
	sess.State = session.StateShowEvents
	return []string{EventList(e.catalog.List(), true)}
}

// onShowEvents resolves an event selection. Restricted events detour through
// age verification before the detail card is shown.
func (e *Engine) onShowEvents(ctx context.Context, sess *session.Session, in intent.Intent) []string {
	ev := e.catalog.Find(in.Text)
	if ev == nil {
		logger.Debug(ctx, "service.catalog", "catalog.miss",
			slog.String("user_id", sess.UserID),
			slog.String("selector", logger.Sanitize(in.Text)),
		)
		return []string{InvalidSelection}
	}
	sess.SelectedEvent = ev
	if ev.AgeRestriction {
		sess.State = session.StateVerifyAge
		return []string{AgePrompt}
	}
	sess.State = session.StateEventOptions
	return []string{EventDetails(ev)}
}

// onVerifyAge interprets the age reply. A number anywhere in the message is
// authoritative; the below/under keywords only decide when no number is
// present. Anything else gets a reprompt without a state change.
func (e *Engine) onVerifyAge(_ context.Context, sess *session.Session, in intent.Intent) []string {
	if in.HasNumber {
		if in.Number < 21 {
			return e.rejectUnderage(sess)
		}
		sess.State = session.StateEventOptions
		return []string{AgeVerified, EventDetails(sess.SelectedEvent)}
	}
	switch {
	case in.Has("below") || in.Has("under"):
		return e.rejectUnderage(sess)
	case in.Has("21+") || in.Has("above 21"):
		sess.State = session.StateEventOptions
		return []string{AgeVerified, EventDetails(sess.SelectedEvent)}
	}
	return []string{AgeReprompt}
}

func (e *Engine) rejectUnderage(sess *session.Session) []string {
	sess.State = session.StateUnderage
	return []string{UnderageRejection}
}

// onUnderage handles the explore-other-events choice after an age rejection.
func (e *Engine) onUnderage(_ context.Context, sess *session.Session, in intent.Intent) []string {
	switch {
	case in.Has("1") || in.SaysYes():
		sess.SelectedEvent = nil
		sess.State = session.StateShowEvents
		return []string{EventList(e.catalog.List(), false)}
	case in.Has("2"):
		sess.State = session.StateEnd
		return []string{Farewell}
	}
	return nil
}

// onEventOptions handles the book / show another / ask-a-question choice on
// the detail card. Booking and questions both record a lead; recording
// failure is logged but never changes the reply.
func (e *Engine) onEventOptions(ctx context.Context, sess *session.Session, in intent.Intent) []string {
	switch {
	case in.Has("1") || in.SaysYes():
		sess.State = session.StateEnd
		e.recordLead(ctx, sess, leads.KindBooking)
		return []string{BookingReceived}
	case in.Has("2"):
		sess.SelectedEvent = nil
		sess.State = session.StateShowEvents
		return []string{EventList(e.catalog.List(), false)}
	case in.Has("3"):
		sess.State = session.StateEnd
		e.recordLead(ctx, sess, leads.KindQuestion)
		return []string{QuestionReceived}
	}
	return nil
}

func (e *Engine) recordLead(ctx context.Context, sess *session.Session, kind leads.Kind) {
	lead := &leads.Lead{
		UserID: sess.UserID,
		Name:   sess.Name,
		Phone:  sess.Phone,
		Email:  sess.Email,
		Gender: sess.Gender,
		Kind:   kind,
	}
	if sess.SelectedEvent != nil {
		lead.EventID = sess.SelectedEvent.ID
		lead.EventName = sess.SelectedEvent.Name
	}
	if err := e.leads.Record(ctx, lead); err != nil {
		logger.Error(ctx, "service.leads", "lead.record_failed",
			slog.String("user_id", sess.UserID),
			slog.String("lead_kind", string(kind)),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.Info(ctx, "service.leads", "lead.recorded",
		slog.String("user_id", sess.UserID),
		slog.String("lead_id", lead.ID),
		slog.String("lead_kind", string(kind)),
		slog.Int("event_id", lead.EventID),
	)
}
