package hunter

import "fmt"

// Hunter is a non-elite competitor discovered lazily from match history:
// the first time one defeats a tracked elite, an account is created for it.
type Hunter struct {
	Name         string
	Title        string
	PointsEarned int64
	Badge        string
	Avatar       string
}

func (h Hunter) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("hunter name is required")
	}
	return nil
}
