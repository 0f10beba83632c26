package service

// Sum adds two finite operands with IEEE-754 double semantics.
func Sum(a, b float64) float64 {
	return a + b
}
