// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sort"

	"github.com/danielhkuo/cover-rounds/models"
	"github.com/danielhkuo/cover-rounds/round"
)

// RankSongs joins vote breakdowns with the round's proposals and ranks them.
// Songs nobody scored are listed with empty counts.
func RankSongs(breakdown []round.VoteBreakdown, signups []models.Signup) []models.SongResult {
	tallies := make(map[string]round.VoteBreakdown, len(breakdown))
	for _, b := range breakdown {
		tallies[b.SongID] = b
	}

	results := make([]models.SongResult, 0, len(signups))
	for _, s := range signups {
		res := models.SongResult{
			SongID:    s.ID,
			SongTitle: s.SongTitle,
			Artist:    s.Artist,
		}
		if b, ok := tallies[s.ID]; ok {
			res.Average = b.DisplayAverage()
			res.Counts = b.Counts
			res.Total = b.Total
		} else {
			res.Counts = round.NewScoreCounts()
		}
		results = append(results, res)
	}

	SortByAverage(results)

	// Competition ranking: ties share a rank, the next rank skips
	for i := range results {
		if i > 0 && sameStanding(results[i-1], results[i]) {
			results[i].Rank = results[i-1].Rank
		} else {
			results[i].Rank = i + 1
		}
	}

	return results
}

// SortByAverage orders results best first. Ties keep their input order,
// which is signup order.
func SortByAverage(results []models.SongResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		// 1. Higher average wins
		if a.Average != b.Average {
			return a.Average > b.Average
		}

		// 2. More votes wins
		return a.Total > b.Total
	})
}

func sameStanding(a, b models.SongResult) bool {
	return a.Average == b.Average && a.Total == b.Total
}
