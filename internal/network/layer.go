package network

import "github.com/synapse-ml/synapse/internal/algebra"

// Gradient holds the partial derivatives produced by one layer's backward
// pass: the cost gradient with respect to the layer's weights, its biases,
// and its input. Parameter-free layers leave Weights and Biases zero and
// only propagate Input.
type Gradient struct {
	Weights algebra.Matrix
	Biases  algebra.Vector
	Input   algebra.Vector
}

// Layer is one stage of the network's ordered processing pipeline.
//
// Layers differ in concrete shape (an affine transform carrying
// parameters, a parameter-free nonlinearity) but share this capability
// set. Name doubles as the layer's serialization tag; every Name value
// must have an entry in the layer registry (see serialize.go).
type Layer interface {
	// Forward computes the layer's output for the given input.
	Forward(input algebra.Vector) algebra.Vector

	// Backward computes the layer's gradient for the given input and the
	// cost gradient with respect to the layer's output.
	Backward(input algebra.Vector, outputGrad algebra.Vector) Gradient

	// Update applies a gradient scaled by the learning rate. A no-op for
	// parameter-free layers.
	Update(g Gradient, learningRate float64)

	// Name returns the layer's kind tag, e.g. "Dense".
	Name() string

	// Display returns a human-readable description, e.g. "Dense(784x16)".
	Display() string
}
