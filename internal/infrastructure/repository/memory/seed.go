package memory

import (
	"context"
	"fmt"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/elite"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/hunter"
)

// SeedElites returns the starter elite accounts for dev environments.
func SeedElites() []elite.Elite {
	return []elite.Elite{
		{
			Name:          "VIP862924621",
			Title:         "p-P5iW64kt0JfUKIR",
			PointsEarned:  25,
			PointsPerLoss: 1,
			Avatar:        "https://images.cdn.aurory.io/items/aurorian-default.png",
		},
		{
			Name:          "MontalesGOC",
			Title:         "p-SGWM9YZ1T19lHBj",
			PointsEarned:  25,
			PointsPerLoss: 1,
			Avatar:        "https://aurorians.cdn.aurory.io/aurorians-v2/current/images/full/1874-sky-of-prosperity.png",
		},
	}
}

func SeedHunters() []hunter.Hunter {
	return []hunter.Hunter{
		{
			Name:         "FAKE HUNTER",
			Title:        "fakefakefake",
			PointsEarned: 1,
			Avatar:       "https://aurorians.cdn.aurory.io/aurorians-v2/current/images/mini/9248.png",
		},
	}
}

// Seed loads the starter accounts into empty repositories.
func Seed(ctx context.Context, elites *EliteRepository, hunters *HunterRepository) error {
	for _, item := range SeedElites() {
		if err := elites.Create(ctx, item); err != nil {
			return fmt.Errorf("seed elite %s: %w", item.Name, err)
		}
	}
	for _, item := range SeedHunters() {
		if _, err := hunters.Create(ctx, item); err != nil {
			return fmt.Errorf("seed hunter %s: %w", item.Name, err)
		}
	}
	return nil
}
