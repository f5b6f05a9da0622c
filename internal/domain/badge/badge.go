package badge

import "strings"

const (
	EliteKiller = "Elite Killer"
	EliteSlayer = "Elite Slayer"
	EliteMaster = "Elite Master"
	EliteLegend = "Elite Legend"
)

// Definition is the public catalog entry for one badge.
type Definition struct {
	ID          string
	Name        string
	Description string
	Requirement string
	Rarity      string
}

func Catalog() []Definition {
	return []Definition{
		{
			ID:          "elite-killer",
			Name:        EliteKiller,
			Description: "Defeated at least three different Elites",
			Requirement: "Win against 3+ different Elites",
			Rarity:      "common",
		},
		{
			ID:          "elite-slayer",
			Name:        EliteSlayer,
			Description: "Defeated 5+ times an Elite",
			Requirement: "Win 5+ times against an Elite",
			Rarity:      "rare",
		},
		{
			ID:          "elite-master",
			Name:        EliteMaster,
			Description: "Defeated 30+ times an Elite",
			Requirement: "Win 30+ times against an Elite",
			Rarity:      "epic",
		},
		{
			ID:          "elite-legend",
			Name:        EliteLegend,
			Description: "Defeated at least 15 different Elites",
			Requirement: "Win against at least 15 different Elites",
			Rarity:      "legendary",
		},
	}
}

// Compute derives the badge string for a hunter's cumulative win history.
// Thresholds are evaluated independently, so several badges can be held at
// once; the serialized form is the comma-joined list in catalog order.
func Compute(totalWins, uniqueElitesDefeated int) string {
	earned := make([]string, 0, 4)
	if uniqueElitesDefeated >= 3 {
		earned = append(earned, EliteKiller)
	}
	if totalWins >= 5 {
		earned = append(earned, EliteSlayer)
	}
	if totalWins >= 30 {
		earned = append(earned, EliteMaster)
	}
	if uniqueElitesDefeated >= 15 {
		earned = append(earned, EliteLegend)
	}
	return strings.Join(earned, ",")
}
