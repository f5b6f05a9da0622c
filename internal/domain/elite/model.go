package elite

import "fmt"

// Elite is a pre-seeded, privileged competitor. Its losses fund opponents'
// points: each loss transfers the effective loss value to the victor.
type Elite struct {
	Name          string
	Title         string
	PointsEarned  int64
	PointsPerLoss int64
	Badge         string
	Avatar        string
}

func (e Elite) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("elite name is required")
	}
	if e.PointsPerLoss < 0 {
		return fmt.Errorf("elite points per loss cannot be negative")
	}
	return nil
}
