package core

// PlayerLevels holds one character level per party member.
// Order does not matter; length does.
type PlayerLevels []int

// Len returns the party size.
func (p PlayerLevels) Len() int {
	return len(p)
}

// Total returns the sum of all levels.
func (p PlayerLevels) Total() int {
	total := 0
	for _, lv := range p {
		total += lv
	}
	return total
}

// Average returns the mean level, or 0 for an empty party.
func (p PlayerLevels) Average() float64 {
	if len(p) == 0 {
		return 0
	}
	return float64(p.Total()) / float64(len(p))
}
