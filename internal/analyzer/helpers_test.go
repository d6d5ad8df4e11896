package analyzer

import "github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"

// sequenceSource replays fixed values, wrapping around when exhausted
type sequenceSource struct {
	values []int
	next   int
}

func (s *sequenceSource) IntN(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

func newTestEngine(values ...int) *Engine {
	return New(WithRandomSource(&sequenceSource{values: values}))
}

// landmarksFor lays out six points producing the given measurements
func landmarksFor(faceWidth, faceHeight, jawWidth, foreheadWidth float64) domain.Landmarks {
	return domain.Landmarks{
		{X: 0, Y: 0},
		{X: foreheadWidth, Y: 0},
		{X: 10, Y: faceHeight * 0.8},
		{X: 10 + jawWidth, Y: faceHeight * 0.8},
		{X: faceWidth, Y: faceHeight * 0.5},
		{X: faceWidth / 2, Y: faceHeight},
	}
}
