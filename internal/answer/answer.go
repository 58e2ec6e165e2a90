// Package answer defines the closed set of answers the oracle can give.
package answer

import (
	"fmt"
	"strings"
)

// Answer is one of the fixed decision labels.
type Answer string

const (
	No    Answer = "NO"
	Yes   Answer = "YES"
	Maybe Answer = "MAYBE"
	Later Answer = "LATER"
	Soon  Answer = "SOON"
	Never Answer = "NEVER"
)

// Leaning groups answers by the direction they push the asker.
type Leaning string

const (
	LeaningAffirmative Leaning = "affirmative"
	LeaningNegative    Leaning = "negative"
	LeaningDeferral    Leaning = "deferral"
)

// values holds every answer in declaration order.
var values = []Answer{No, Yes, Maybe, Later, Soon, Never}

// glosses carries the per-answer display text.
var glosses = map[Answer]string{
	No:    "the oracle says no",
	Yes:   "the oracle says yes",
	Maybe: "it could go either way",
	Later: "not now, ask again later",
	Soon:  "the moment is near",
	Never: "do not ask again",
}

// Values returns all answers in declaration order.
func Values() []Answer {
	out := make([]Answer, len(values))
	copy(out, values)
	return out
}

// Parse resolves a name to an Answer, case-insensitively.
func Parse(s string) (Answer, error) {
	candidate := Answer(strings.ToUpper(strings.TrimSpace(s)))
	for _, a := range values {
		if a == candidate {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown answer %q", s)
}

// Valid reports whether a is a declared answer.
func Valid(a Answer) bool {
	for _, v := range values {
		if v == a {
			return true
		}
	}
	return false
}

// Ordinal returns the declaration index of a, or -1 for undeclared values.
func (a Answer) Ordinal() int {
	for i, v := range values {
		if v == a {
			return i
		}
	}
	return -1
}

// Gloss returns the one-line display text for a.
func (a Answer) Gloss() string {
	return glosses[a]
}

// Leaning classifies a by the direction it pushes the asker.
func (a Answer) Leaning() Leaning {
	switch a {
	case Yes, Soon:
		return LeaningAffirmative
	case No, Never:
		return LeaningNegative
	case Maybe, Later:
		return LeaningDeferral
	}
	return LeaningDeferral
}

// IsFinal reports whether a closes the question for good.
func (a Answer) IsFinal() bool {
	return a == Never
}

func (a Answer) String() string {
	return string(a)
}

// MarshalText implements encoding.TextMarshaler.
func (a Answer) MarshalText() ([]byte, error) {
	if !Valid(a) {
		return nil, fmt.Errorf("unknown answer %q", string(a))
	}
	return []byte(a), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Answer) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
