package config

import (
	"errors"
	"fmt"
)

var (
	errThresholdOrder = errors.New("config: risk thresholds must be strictly increasing")
	errTrendFloor     = errors.New("config: trend floor must be below the baseline score")
)

// WeightSumError reports a weight group that does not sum to 1.0.
type WeightSumError struct {
	Group string
	Sum   float64
}

func (e *WeightSumError) Error() string {
	return fmt.Sprintf("config: %s weights sum to %.6f, want 1.0", e.Group, e.Sum)
}
