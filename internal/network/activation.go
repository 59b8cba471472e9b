package network

import (
	"fmt"
	"math"

	"github.com/synapse-ml/synapse/internal/algebra"
)

// Activation is a parameter-free pointwise nonlinearity. The set of
// supported functions is closed; each one is a variant of the same layer
// kind on the wire.
type Activation uint8

// Supported activation functions.
const (
	Sigmoid Activation = iota
	ReLU
	Tanh
)

// Forward applies the activation function to every element.
func (a Activation) Forward(input algebra.Vector) algebra.Vector {
	out := input.Clone()
	switch a {
	case Sigmoid:
		return out.Map(algebra.Sigmoid)
	case ReLU:
		return out.Map(func(x float64) float64 {
			if x > 0 {
				return x
			}
			return 0
		})
	case Tanh:
		return out.Map(math.Tanh)
	default:
		panic(fmt.Sprintf("network: unknown activation %d", a))
	}
}

// Backward computes the element-wise derivative at input, chained with the
// output gradient. Activations carry no parameters, so only the input
// gradient is populated.
func (a Activation) Backward(input algebra.Vector, outputGrad algebra.Vector) Gradient {
	var deriv algebra.Vector
	switch a {
	case Sigmoid:
		deriv = input.Clone().Map(algebra.SigmoidPrime)
	case ReLU:
		deriv = input.Clone().Map(func(x float64) float64 {
			if x > 0 {
				return 1
			}
			return 0
		})
	case Tanh:
		deriv = input.Clone().Map(func(x float64) float64 {
			th := math.Tanh(x)
			return 1 - th*th
		})
	default:
		panic(fmt.Sprintf("network: unknown activation %d", a))
	}
	return Gradient{Input: deriv.MulElem(outputGrad)}
}

// Update is a no-op: activations have no parameters.
func (a Activation) Update(Gradient, float64) {}

// Name returns the layer's kind tag.
func (a Activation) Name() string {
	return "Activation"
}

// Display returns the function name, e.g. "ReLU".
func (a Activation) Display() string {
	switch a {
	case Sigmoid:
		return "Sigmoid"
	case ReLU:
		return "ReLU"
	case Tanh:
		return "Tanh"
	default:
		return fmt.Sprintf("Activation(%d)", uint8(a))
	}
}
