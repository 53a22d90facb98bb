// Package catalog holds the fixed list of bookable events offered by the bot.
// The catalog is built once at startup from configuration and is never
// mutated afterwards; lookups report absence instead of failing.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Event is a single bookable catalog entry. All fields are display values;
// Date and Price are intentionally kept as strings and never parsed.
type Event struct {
	ID             int
	Name           string
	Location       string
	Date           string
	Price          string
	DressCode      string
	AgeRestriction bool
}

// Catalog is an immutable, ordered collection of events.
type Catalog struct {
	events []Event
	byID   map[int]*Event
	byName map[string]*Event
}

// New validates the provided events and builds a catalog preserving their
// order. IDs must be positive and unique; names must be unique
// case-insensitively.
func New(events []Event) (*Catalog, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("catalog: no events provided")
	}
	c := &Catalog{
		events: make([]Event, len(events)),
		byID:   make(map[int]*Event, len(events)),
		byName: make(map[string]*Event, len(events)),
	}
	copy(c.events, events)
	for i := range c.events {
		ev := &c.events[i]
		if ev.ID <= 0 {
			return nil, fmt.Errorf("catalog: event %q has non-positive id %d", ev.Name, ev.ID)
		}
		if strings.TrimSpace(ev.Name) == "" {
			return nil, fmt.Errorf("catalog: event id %d has empty name", ev.ID)
		}
		if _, dup := c.byID[ev.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate event id %d", ev.ID)
		}
		key := strings.ToLower(ev.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("catalog: duplicate event name %q", ev.Name)
		}
		c.byID[ev.ID] = ev
		c.byName[key] = ev
	}
	return c, nil
}

// ByID returns the event with the given id, or nil when absent.
func (c *Catalog) ByID(id int) *Event {
	return c.byID[id]
}

// ByName returns the event whose name matches case-insensitively and
// exactly, or nil when absent.
func (c *Catalog) ByName(name string) *Event {
	return c.byName[strings.ToLower(strings.TrimSpace(name))]
}

// Find resolves a user-supplied selector: either the event id spelled out
// exactly as digits, or the full event name. Partial matches never resolve.
func (c *Catalog) Find(selector string) *Event {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil
	}
	if id, err := strconv.Atoi(selector); err == nil && strconv.Itoa(id) == selector {
		if ev := c.ByID(id); ev != nil {
			return ev
		}
	}
	return c.ByName(selector)
}

// List returns all events in catalog order. The returned slice is a copy;
// the events themselves are shared and must not be modified.
func (c *Catalog) List() []Event {
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Len reports the number of events in the catalog.
func (c *Catalog) Len() int {
	return len(c.events)
}
