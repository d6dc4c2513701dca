// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package round is the lifecycle and participation engine for cover rounds.

Everything here is a pure function of facts loaded from storage and an
explicit instant. Nothing reads the clock, touches the database, or keeps
state between calls, so every function is safe to call from any number of
goroutines.

# Phases

A round is bounded by five dates and moves through four phases:

	signups → voting → covering → celebration

Projects that disable voting skip the voting phase:

	signups → covering → celebration

Intervals are half-open. At exactly VotingOpens the round is in voting:

	phase := round.CurrentPhase(dates, votingEnabled, now)
	windows := round.PhaseWindows(dates, votingEnabled)

Dates must be non-decreasing. The clock does not check; call
Dates.Validate where dates enter storage.

# Votes

Breakdown tallies scores (1-5) per song, in first-seen order:

	rows, err := round.Breakdown(votes)

OutstandingVoters is the set of signed-up users with no vote.

# Reflections

A participant may write an initial reflection before the covering
midpoint and check-ins from the midpoint on:

	w := round.ScheduleReflection(dates, hasInitial, now)
	if w.Allows(round.ReflectionCheckin) { ... }

# Snapshots

Assemble composes all of the above for one round and an optional viewer:

	snap, err := round.Assemble(facts, now, &round.Viewer{UserID: id})
*/
package round
