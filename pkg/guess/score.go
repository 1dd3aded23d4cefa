package guess

import (
	"math"
	"sort"
)

// Result is a guess and its distance from the answer
type Result struct {
	Guess    Guess   `json:"guess"`
	Distance float64 `json:"distance"`
}

func distance(answer float64, g Guess) (float64, bool) {
	if math.IsNaN(answer) || math.IsNaN(g.Guess) {
		return 0, false
	}
	return math.Abs(g.Guess - answer), true
}

// Closest returns the guess nearest to answer. On ties the earlier guess wins.
func Closest(answer float64, guesses []Guess) (Result, bool) {
	var best Result
	found := false
	for _, g := range guesses {
		d, ok := distance(answer, g)
		if !ok {
			continue
		}
		if !found || d < best.Distance {
			best = Result{Guess: g, Distance: d}
			found = true
		}
	}
	return best, found
}

// Farthest returns the guess furthest from answer. On ties the earlier guess wins.
func Farthest(answer float64, guesses []Guess) (Result, bool) {
	var worst Result
	found := false
	for _, g := range guesses {
		d, ok := distance(answer, g)
		if !ok {
			continue
		}
		if !found || d > worst.Distance {
			worst = Result{Guess: g, Distance: d}
			found = true
		}
	}
	return worst, found
}

// Leaderboard ranks every valid guess by distance, then by name
func Leaderboard(answer float64, guesses []Guess) []Result {
	results := make([]Result, 0, len(guesses))
	for _, g := range guesses {
		if d, ok := distance(answer, g); ok {
			results = append(results, Result{Guess: g, Distance: d})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Guess.Name < results[j].Guess.Name
	})
	return results
}
