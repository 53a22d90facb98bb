// Package intent classifies one raw inbound message into the structured
// signals the dialogue engine branches on. Classification is pure: no
// state, no side effects, deterministic for a given input.
package intent

import (
	"strconv"
	"strings"
)

// Intent is the structured view of a single message.
type Intent struct {
	// Text is the message with surrounding whitespace trimmed.
	Text string
	// Number is the value of the first maximal run of decimal digits
	// anywhere in the message; HasNumber reports whether one was found.
	Number    int
	HasNumber bool
	// Lines holds the non-empty trimmed lines of the message, used by the
	// detail-collection step.
	Lines []string

	lower string
}

// Classify derives an Intent from raw message text.
func Classify(raw string) Intent {
	text := strings.TrimSpace(raw)
	in := Intent{
		Text:  text,
		lower: strings.ToLower(text),
	}
	if run := firstDigitRun(text); run != "" {
		if n, err := strconv.Atoi(run); err == nil {
			in.Number = n
			in.HasNumber = true
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		in.Lines = append(in.Lines, line)
	}
	return in
}

// Has reports case-insensitive substring containment.
func (in Intent) Has(sub string) bool {
	return strings.Contains(in.lower, strings.ToLower(sub))
}

// SaysYes reports whether the message contains an affirmative token.
func (in Intent) SaysYes() bool {
	return in.Has("yes")
}

func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			return s[start:i]
		}
	}
	if start != -1 {
		return s[start:]
	}
	return ""
}
