package analysis

// transferScore maps a raw signal onto [0,10] with three segments: a gentle
// slope up to normalMax (the healthy range scores at most normalScore), a
// steeper slope between normalMax and ceiling, and saturation at 10 beyond
// the ceiling. Linear scaling across the whole range would either
// under-penalize moderate overwork or swamp healthy variation near the
// baseline, so the knee at normalMax is load-bearing.
func transferScore(x, normalMax, ceiling, normalScore float64) float64 {
	if x <= 0 {
		return 0
	}
	if x <= normalMax {
		return normalScore * x / normalMax
	}
	if x <= ceiling {
		return normalScore + (10-normalScore)*(x-normalMax)/(ceiling-normalMax)
	}
	return 10
}

// bandScore rewards values inside [lo,hi] with a full 10 and decays linearly
// to 0 over falloff outside the band. Used for "good direction" factors where
// both too little and too much signal trouble.
func bandScore(x, lo, hi, falloff float64) float64 {
	if falloff <= 0 {
		falloff = 1
	}
	switch {
	case x < lo:
		return clamp(10*(1-(lo-x)/falloff), 0, 10)
	case x > hi:
		return clamp(10*(1-(x-hi)/falloff), 0, 10)
	default:
		return 10
	}
}
