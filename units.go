package mycobot

// The controller speaks fixed-point: angles travel as hundredths of a degree
// and coordinates as tenths of a millimeter, both as signed 16-bit integers.
// Narrowing goes through int64 so out-of-range inputs truncate toward zero
// and wrap like any integer conversion instead of hitting Go's
// implementation-defined float-to-int16 behavior.

func angleToInt(degrees float64) int16 {
	return int16(int64(degrees * 100))
}

func coordToInt(mm float64) int16 {
	return int16(int64(mm * 10))
}

func intToAngle(val int16) float64 {
	return float64(val) / 100
}

func intToCoord(val int16) float64 {
	return float64(val) / 10
}

// coordsToInts scales a pose vector for the wire: indices 0-2 are
// coordinates (x0.1mm), indices 3-5 are rotations (x0.01deg).
func coordsToInts(coords []float64) []int16 {
	vals := make([]int16, len(coords))
	for i, c := range coords {
		if i < 3 {
			vals[i] = coordToInt(c)
		} else {
			vals[i] = angleToInt(c)
		}
	}
	return vals
}

// intsToCoords is the exact inverse of coordsToInts under the same index
// rule.
func intsToCoords(vals []int16) []float64 {
	coords := make([]float64, len(vals))
	for i, v := range vals {
		if i < 3 {
			coords[i] = intToCoord(v)
		} else {
			coords[i] = intToAngle(v)
		}
	}
	return coords
}
