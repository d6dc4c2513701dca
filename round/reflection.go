// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package round

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
)

// ReflectionKind distinguishes the two write-ups a participant may author.
type ReflectionKind string

const (
	ReflectionInitial ReflectionKind = "initial"
	ReflectionCheckin ReflectionKind = "checkin"
)

func (k ReflectionKind) Valid() bool {
	return k == ReflectionInitial || k == ReflectionCheckin
}

// ReflectionWindow says which reflection, if any, may be written at a given
// instant. At most one of the two flags is ever set.
type ReflectionWindow struct {
	CanCreateInitial    bool       `json:"can_create_initial"`
	CanCreateCheckin    bool       `json:"can_create_checkin"`
	CurrentPhase        Phase      `json:"current_phase"`
	CheckinAvailableAt  *time.Time `json:"checkin_available_at,omitempty"`
	AvailabilityMessage string     `json:"availability_message"`
}

// Allows reports whether a reflection of the given kind may be created.
func (w ReflectionWindow) Allows(kind ReflectionKind) bool {
	switch kind {
	case ReflectionInitial:
		return w.CanCreateInitial
	case ReflectionCheckin:
		return w.CanCreateCheckin
	}
	return false
}

// CheckinMidpoint is the halfway instant of the covering phase.
func CheckinMidpoint(d Dates) time.Time {
	return d.CoveringBegins.Add(d.CoversDue.Sub(d.CoveringBegins) / 2)
}

// ScheduleReflection applies the reflection rules at now. The phase is
// always taken from the four-phase sequence: whether a project votes does
// not move the covering boundaries.
func ScheduleReflection(d Dates, hasInitialReflection bool, now time.Time) ReflectionWindow {
	phase := CurrentPhase(d, true, now)
	midpoint := CheckinMidpoint(d)
	checkinOpen := !now.Before(midpoint)

	w := ReflectionWindow{CurrentPhase: phase}

	switch phase {
	case PhaseSignups, PhaseVoting:
		w.CanCreateInitial = !hasInitialReflection
	case PhaseCovering:
		if checkinOpen {
			w.CanCreateCheckin = true
		} else {
			w.CanCreateInitial = !hasInitialReflection
		}
	case PhaseCelebration:
		w.CanCreateCheckin = true
	}

	if !checkinOpen {
		at := midpoint
		w.CheckinAvailableAt = &at
	}
	w.AvailabilityMessage = availabilityMessage(w, hasInitialReflection, now)

	return w
}

func availabilityMessage(w ReflectionWindow, hasInitial bool, now time.Time) string {
	if w.CanCreateCheckin {
		return "Check-in reflections are open."
	}

	var opens string
	if w.CheckinAvailableAt != nil {
		at := *w.CheckinAvailableAt
		opens = fmt.Sprintf("Check-ins open %s (%s).",
			strftime.Format("%a, %b %d at %H:%M UTC", at.UTC()),
			humanize.RelTime(at, now, "ago", "from now"))
	}

	switch {
	case w.CanCreateInitial:
		return "You can write your initial reflection now. " + opens
	case hasInitial:
		return "Your initial reflection is in. " + opens
	}
	return opens
}
