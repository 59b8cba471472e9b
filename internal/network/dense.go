package network

import (
	"fmt"

	"github.com/synapse-ml/synapse/internal/algebra"
)

// Dense is a fully connected affine layer: y = W·x + b.
//
// Weights has one row per output neuron and one column per input neuron,
// so Weights.At(row, col) is the weight from input col to output row.
type Dense struct {
	Weights algebra.Matrix
	Biases  algebra.Vector
}

// NewDense creates a Dense layer with uniformly random weights and biases.
func NewDense(inputSize, outputSize int) *Dense {
	w := algebra.NewMatrix(outputSize, inputSize)
	w.Randomize()
	return &Dense{
		Weights: w,
		Biases:  algebra.NewVector(outputSize).Randomize(),
	}
}

// Forward computes W·input + b.
func (d *Dense) Forward(input algebra.Vector) algebra.Vector {
	return d.Weights.MulVec(input).Add(d.Biases)
}

// Backward computes the cost gradients for one input.
//
// outputGrad is dC/dZ for this layer's pre-activation output. Since
// Z = W·x + b:
//
//	dC/dB = dC/dZ
//	dC/dW[row,col] = x[col] * dC/dZ[row]
//	dC/dX[col] = Σ_row W[row,col] * dC/dZ[row]
func (d *Dense) Backward(input algebra.Vector, outputGrad algebra.Vector) Gradient {
	dz := outputGrad

	weights := algebra.NewMatrix(d.Weights.Rows(), d.Weights.Cols())
	for col := 0; col < weights.Cols(); col++ {
		x := input.At(col)
		for row := 0; row < weights.Rows(); row++ {
			weights.Set(row, col, x*dz.At(row))
		}
	}

	inputGrad := algebra.NewVector(input.Len())
	for col := 0; col < d.Weights.Cols(); col++ {
		var sum float64
		for row := 0; row < d.Weights.Rows(); row++ {
			sum += d.Weights.At(row, col) * dz.At(row)
		}
		inputGrad.Set(col, sum)
	}

	return Gradient{
		Weights: weights,
		Biases:  dz.Clone(),
		Input:   inputGrad,
	}
}

// Update applies gradient descent: W -= lr*dW, b -= lr*db.
func (d *Dense) Update(g Gradient, learningRate float64) {
	d.Weights.AddScaled(&g.Weights, -learningRate)
	d.Biases.AddScaled(g.Biases, -learningRate)
}

// Name returns the layer's kind tag.
func (d *Dense) Name() string {
	return "Dense"
}

// Display describes the layer as "Dense(in x out)".
func (d *Dense) Display() string {
	return fmt.Sprintf("Dense(%dx%d)", d.Weights.Cols(), d.Weights.Rows())
}

// InputSize returns the number of inputs the layer accepts.
func (d *Dense) InputSize() int {
	return d.Weights.Cols()
}

// OutputSize returns the number of outputs the layer produces.
func (d *Dense) OutputSize() int {
	return d.Weights.Rows()
}

// Equal reports whether both layers hold identical parameters.
func (d *Dense) Equal(other *Dense) bool {
	return d.Weights.Equal(&other.Weights) && d.Biases.Equal(other.Biases)
}
