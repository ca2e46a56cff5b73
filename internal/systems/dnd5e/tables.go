package dnd5e

// xpByCR maps a numeric challenge rating to its experience value.
var xpByCR = map[float64]int{
	0:     10,
	0.125: 25,
	0.25:  50,
	0.5:   100,
	1:     200,
	2:     450,
	3:     700,
	4:     1100,
	5:     1800,
	6:     2300,
	7:     2900,
	8:     3900,
	9:     5000,
	10:    5900,
	11:    7200,
	12:    8400,
	13:    10000,
	14:    11500,
	15:    13000,
	16:    15000,
	17:    18000,
	18:    20000,
	19:    22000,
	20:    25000,
	21:    33000,
	22:    41000,
	23:    50000,
	24:    62000,
	25:    75000,
	26:    90000,
	27:    105000,
	28:    120000,
	29:    135000,
	30:    155000,
}

const (
	minLevel = 1
	maxLevel = 20
)

// levelBudgets holds the per-character Easy/Medium/Hard/Deadly XP budgets,
// indexed by character level. Index 0 is unused.
var levelBudgets = [maxLevel + 1][4]int{
	{0, 0, 0, 0},
	{25, 50, 75, 100},
	{50, 100, 150, 200},
	{75, 150, 225, 400},
	{125, 250, 375, 500},
	{250, 500, 750, 1100},
	{300, 600, 900, 1400},
	{350, 750, 1100, 1700},
	{450, 900, 1400, 2100},
	{550, 1100, 1600, 2400},
	{600, 1200, 1900, 2800},
	{800, 1600, 2400, 3600},
	{1000, 2000, 3000, 4500},
	{1100, 2200, 3400, 5100},
	{1250, 2500, 3800, 5700},
	{1400, 2800, 4300, 6400},
	{1600, 3200, 4800, 7200},
	{2000, 3900, 5900, 8800},
	{2100, 4200, 6300, 9500},
	{2400, 4900, 7300, 10900},
	{2800, 5700, 8500, 12700},
}

// multipliers are the encounter multiplier steps, smallest first.
var multipliers = []float64{0.5, 1, 1.5, 2, 2.5, 3, 4, 5}

// multiplierStep returns the index into multipliers for a monster count,
// before any party size adjustment.
func multiplierStep(monsters int) int {
	switch {
	case monsters <= 1:
		return 1
	case monsters == 2:
		return 2
	case monsters <= 6:
		return 3
	case monsters <= 10:
		return 4
	case monsters <= 14:
		return 5
	default:
		return 6
	}
}

// encounterMultiplier scales raw XP by the number of monsters, shifted one
// step up for small parties and one step down for large ones.
func encounterMultiplier(monsters, partySize int) float64 {
	step := multiplierStep(monsters)
	switch {
	case partySize == 0:
	case partySize < 3:
		step++
	case partySize >= 6:
		step--
	}
	return multipliers[step]
}
