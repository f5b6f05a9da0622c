package badge

import "testing"

func TestCompute(t *testing.T) {
	cases := []struct {
		name       string
		totalWins  int
		uniqueWins int
		want       string
	}{
		{"no wins", 0, 0, ""},
		{"few scattered wins", 2, 2, ""},
		{"three unique", 3, 3, EliteKiller},
		{"repeat wins below slayer", 4, 3, EliteKiller},
		{"five total", 5, 3, EliteKiller + "," + EliteSlayer},
		{"slayer without killer", 5, 1, EliteSlayer},
		{"thirty total", 30, 3, EliteKiller + "," + EliteSlayer + "," + EliteMaster},
		{"full set", 40, 15, EliteKiller + "," + EliteSlayer + "," + EliteMaster + "," + EliteLegend},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Compute(tc.totalWins, tc.uniqueWins); got != tc.want {
				t.Errorf("Compute(%d, %d) = %q, want %q", tc.totalWins, tc.uniqueWins, got, tc.want)
			}
		})
	}
}

func TestCatalogMatchesComputeOrder(t *testing.T) {
	catalog := Catalog()
	wantOrder := []string{EliteKiller, EliteSlayer, EliteMaster, EliteLegend}
	if len(catalog) != len(wantOrder) {
		t.Fatalf("catalog has %d entries, want %d", len(catalog), len(wantOrder))
	}
	for i, def := range catalog {
		if def.Name != wantOrder[i] {
			t.Errorf("catalog[%d] = %q, want %q", i, def.Name, wantOrder[i])
		}
	}
}
