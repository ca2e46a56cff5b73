package core

import "testing"

func TestPlayerLevels(t *testing.T) {
	tests := []struct {
		name    string
		levels  PlayerLevels
		total   int
		average float64
	}{
		{name: "empty party", levels: nil, total: 0, average: 0},
		{name: "single", levels: PlayerLevels{5}, total: 5, average: 5},
		{name: "uneven", levels: PlayerLevels{1, 2, 4}, total: 7, average: 7.0 / 3},
		{name: "four fives", levels: PlayerLevels{5, 5, 5, 5}, total: 20, average: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.levels.Total(); got != tt.total {
				t.Errorf("Total() = %d, want %d", got, tt.total)
			}
			if got := tt.levels.Average(); got != tt.average {
				t.Errorf("Average() = %v, want %v", got, tt.average)
			}
			if got := tt.levels.Len(); got != len(tt.levels) {
				t.Errorf("Len() = %d, want %d", got, len(tt.levels))
			}
		})
	}
}
