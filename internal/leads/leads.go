// Package leads records finished booking requests and open questions so the
// events team can follow up. Leads are the only data this bot persists;
// conversation state itself stays in memory.
package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Kind distinguishes why a lead was created.
type Kind string

const (
	// KindBooking marks a confirmed booking request.
	KindBooking Kind = "booking"
	// KindQuestion marks a request for the team to reach out with answers.
	KindQuestion Kind = "question"
)

// Lead is one follow-up request captured at the end of a conversation.
type Lead struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	Email     string    `db:"email"`
	Gender    string    `db:"gender"`
	EventID   int       `db:"event_id"`
	EventName string    `db:"event_name"`
	Kind      Kind      `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
}

// Recorder persists leads. Implementations must be safe for concurrent use.
type Recorder interface {
	Record(ctx context.Context, lead *Lead) error
}

// Nop discards leads. Used when no database is configured.
type Nop struct{}

// Record implements Recorder by doing nothing.
func (Nop) Record(context.Context, *Lead) error { return nil }

// Repository stores leads in Postgres.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps an open database handle.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const insertLead = `
INSERT INTO leads (id, user_id, name, phone, email, gender, event_id, event_name, kind, created_at)
VALUES (:id, :user_id, :name, :phone, :email, :gender, :event_id, :event_name, :kind, :created_at)`

// Record inserts the lead, assigning an id and timestamp when unset.
func (r *Repository) Record(ctx context.Context, lead *Lead) error {
	if lead == nil {
		return fmt.Errorf("leads: nil lead")
	}
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, insertLead, lead); err != nil {
		return fmt.Errorf("leads: insert: %w", err)
	}
	return nil
}
