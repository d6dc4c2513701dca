// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package round

import (
	"errors"
	"fmt"
	"time"
)

// Phase is the stage a round is in. The set is closed.
type Phase string

const (
	PhaseSignups     Phase = "signups"
	PhaseVoting      Phase = "voting"
	PhaseCovering    Phase = "covering"
	PhaseCelebration Phase = "celebration"
)

// ErrDatesOutOfOrder is returned by Dates.Validate.
var ErrDatesOutOfOrder = errors.New("round dates are out of order")

var (
	fullSequence     = []Phase{PhaseSignups, PhaseVoting, PhaseCovering, PhaseCelebration}
	votelessSequence = []Phase{PhaseSignups, PhaseCovering, PhaseCelebration}
)

// Valid reports whether p is one of the four known phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseSignups, PhaseVoting, PhaseCovering, PhaseCelebration:
		return true
	}
	return false
}

// Index returns the position of p in the active sequence, or -1 when p is
// not part of it (voting with voting disabled).
func (p Phase) Index(votingEnabled bool) int {
	for i, candidate := range Sequence(votingEnabled) {
		if candidate == p {
			return i
		}
	}
	return -1
}

// AtOrAfter reports whether p is other or a later phase in the full
// four-phase order.
func (p Phase) AtOrAfter(other Phase) bool {
	return p.Index(true) >= other.Index(true)
}

// Dates are the five instants that bound a round. Callers guarantee they
// are non-decreasing; see Validate.
type Dates struct {
	SignupOpens    time.Time `json:"signup_opens"`
	VotingOpens    time.Time `json:"voting_opens"`
	CoveringBegins time.Time `json:"covering_begins"`
	CoversDue      time.Time `json:"covers_due"`
	ListeningParty time.Time `json:"listening_party"`
}

// Validate checks that each date is no later than the next one. The phase
// clock never calls it; it belongs at the point where dates are stored.
func (d Dates) Validate() error {
	ordered := []struct {
		name string
		at   time.Time
	}{
		{"signup_opens", d.SignupOpens},
		{"voting_opens", d.VotingOpens},
		{"covering_begins", d.CoveringBegins},
		{"covers_due", d.CoversDue},
		{"listening_party", d.ListeningParty},
	}
	for i := 1; i < len(ordered); i++ {
		prev, next := ordered[i-1], ordered[i]
		if next.at.Before(prev.at) {
			return fmt.Errorf("%w: %s is before %s", ErrDatesOutOfOrder, next.name, prev.name)
		}
	}
	return nil
}

// Window is a half-open interval [Opens, Closes).
type Window struct {
	Opens  time.Time `json:"opens"`
	Closes time.Time `json:"closes"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Opens) && t.Before(w.Closes)
}

// Sequence returns the ordered phases a round passes through. Without
// voting the round goes straight from signups to covering.
func Sequence(votingEnabled bool) []Phase {
	src := fullSequence
	if !votingEnabled {
		src = votelessSequence
	}
	out := make([]Phase, len(src))
	copy(out, src)
	return out
}

type segment struct {
	phase  Phase
	window Window
}

// segments is the single place the skip logic lives: every query walks
// this list.
func segments(d Dates, votingEnabled bool) []segment {
	signupsClose := d.VotingOpens
	if !votingEnabled {
		signupsClose = d.CoveringBegins
	}

	segs := make([]segment, 0, 4)
	segs = append(segs, segment{PhaseSignups, Window{Opens: d.SignupOpens, Closes: signupsClose}})
	if votingEnabled {
		segs = append(segs, segment{PhaseVoting, Window{Opens: d.VotingOpens, Closes: d.CoveringBegins}})
	}
	segs = append(segs,
		segment{PhaseCovering, Window{Opens: d.CoveringBegins, Closes: d.CoversDue}},
		segment{PhaseCelebration, Window{Opens: d.CoversDue, Closes: d.ListeningParty}},
	)
	return segs
}

// CurrentPhase derives the phase of a round at now. An instant equal to a
// boundary belongs to the phase that opens there. Instants before signups
// open count as signups; instants after the listening party stay in
// celebration.
func CurrentPhase(d Dates, votingEnabled bool, now time.Time) Phase {
	segs := segments(d, votingEnabled)
	for _, s := range segs[:len(segs)-1] {
		if now.Before(s.window.Closes) {
			return s.phase
		}
	}
	return segs[len(segs)-1].phase
}

// PhaseWindows returns the open/close instants of every phase in the
// active sequence. Phases outside the sequence are absent from the map.
func PhaseWindows(d Dates, votingEnabled bool) map[Phase]Window {
	segs := segments(d, votingEnabled)
	windows := make(map[Phase]Window, len(segs))
	for _, s := range segs {
		windows[s.phase] = s.window
	}
	return windows
}
