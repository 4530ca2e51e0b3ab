// Package sentiment scores message text with VADER.
package sentiment

import (
	"sync"

	"github.com/jonreiter/govader"
)

// Analyzer returns a compound polarity score in [-1,1].
type Analyzer interface {
	Compound(text string) float64
}

type Vader struct {
	mu       sync.Mutex
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Compound(text string) float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.analyzer.PolarityScores(text).Compound
}
