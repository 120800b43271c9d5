// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import (
	"sort"

	"github.com/danielhkuo/easel/models"
)

// Standing is one submission with its vote count
type Standing struct {
	Artist  string
	Address string
	Votes   uint64
}

// Standings lists submissions ordered by votes descending. Equal counts
// keep submission order.
func Standings(comp models.Competition) []Standing {
	standings := make([]Standing, 0, len(comp.Artists))
	for _, a := range comp.Artists {
		standings = append(standings, Standing{
			Artist:  a.Name,
			Address: a.Address,
			Votes:   comp.Votes[a.Name],
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Votes > standings[j].Votes
	})

	return standings
}

// Rank assigns ranks 1..n to the standings. Rank 1 is the winner only when
// it received at least one vote.
func Rank(comp models.Competition) []models.ArtistRanking {
	standings := Standings(comp)
	rankings := make([]models.ArtistRanking, 0, len(standings))
	for i, s := range standings {
		rankings = append(rankings, models.ArtistRanking{
			Artist:   s.Artist,
			Votes:    s.Votes,
			Rank:     uint32(i + 1),
			IsWinner: i == 0 && s.Votes > 0,
		})
	}
	return rankings
}

// TieGroups partitions standings into runs of equal vote counts, stopping
// at the first group with zero votes.
func TieGroups(standings []Standing) [][]Standing {
	var groups [][]Standing
	for i := 0; i < len(standings); {
		if standings[i].Votes == 0 {
			break
		}
		j := i + 1
		for j < len(standings) && standings[j].Votes == standings[i].Votes {
			j++
		}
		groups = append(groups, standings[i:j])
		i = j
	}
	return groups
}

// winnerOf returns the winning artist name, or nil when nobody got a vote
func winnerOf(comp models.Competition) *string {
	standings := Standings(comp)
	if len(standings) == 0 || standings[0].Votes == 0 {
		return nil
	}
	name := standings[0].Artist
	return &name
}
