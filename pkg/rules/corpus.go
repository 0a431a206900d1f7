package rules

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/smellscope/pkg/alg/stats"
	"github.com/Sumatoshi-tech/smellscope/pkg/metrics"
)

// Sample is one class of a batch or corpus: its identifier and metric map.
type Sample struct {
	ID      string
	Metrics metrics.Values
}

// Corpus is an ordered set of samples.
type Corpus []Sample

// Values returns the value of kind for every sample, in corpus order.
func (c Corpus) Values(kind metrics.Kind) ([]float64, error) {
	out := make([]float64, 0, len(c))

	for _, s := range c {
		v, ok := s.Metrics.Get(kind)
		if !ok {
			return nil, missingMetric(kind, s.ID)
		}

		out = append(out, v)
	}

	return out, nil
}

// Threshold returns the corpus value of kind at percentile p: the values are
// sorted ascending and the element at floor(n*p/100) is taken, clamped to
// the last element.
func (c Corpus) Threshold(kind metrics.Kind, p float64) (float64, error) {
	if p < 0 || p > 100 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPercentile, formatNumber(p))
	}

	values, err := c.Values(kind)
	if err != nil {
		return 0, err
	}

	threshold, err := stats.RankPercentile(values, p)
	if errors.Is(err, stats.ErrEmpty) {
		return 0, fmt.Errorf("%w: threshold for %s", ErrEmptyCorpus, kind)
	}

	return threshold, err
}

func missingMetric(kind metrics.Kind, id string) error {
	return fmt.Errorf("%w: %s on %s", ErrMissingMetric, kind, id)
}
