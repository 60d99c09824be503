package scheduler

import "gameoflife/src/generation"

//the last two generations are enough to spot still lifes and period-2 oscillators
const historySize = 2

// Stats keeps running numbers about the simulation.
type Stats struct {
	AveragePopulation float64
}

func (s *Stats) update(population int) {
	//simple moving average
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = s.AveragePopulation*0.9 + float64(population)*0.1
	}
}

//history remembers hashes of the last generations to detect still lifes and oscillators
type history struct {
	hashes []string
}

func (h *history) reset() {
	h.hashes = h.hashes[:0]
}

//push records g and returns the period of the repetition found, 0 if none
//1 means g equals the previous generation, 2 the one before it
func (h *history) push(g generation.Grid) int {
	hash := g.Hash()
	period := 0
	for i := len(h.hashes) - 1; i >= 0; i-- {
		if h.hashes[i] == hash {
			period = len(h.hashes) - i
			break
		}
	}
	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
	return period
}
