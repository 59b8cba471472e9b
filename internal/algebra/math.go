package algebra

import "math"

// Sigmoid computes the logistic function 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// SigmoidPrime computes the derivative of the sigmoid: s(x) * (1 - s(x)).
func SigmoidPrime(x float64) float64 {
	s := Sigmoid(x)
	return s * (1.0 - s)
}

// Softmax returns a new vector with softmax applied, shifted by the maximum
// element for numerical stability.
func Softmax(v Vector) Vector {
	out := v.Clone()
	if len(out) == 0 {
		return out
	}
	max := out[out.ArgMax()]
	var sum float64
	for i := range out {
		out[i] = math.Exp(out[i] - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
