package network

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/synapse-ml/synapse/internal/algebra"
)

// Sample is one training example: an input vector and its expected output.
type Sample struct {
	Input  algebra.Vector
	Target algebra.Vector
}

// Network is an ordered pipeline of layers. Index 0 is nearest the input;
// evaluation feeds each layer's output to the next.
type Network struct {
	Layers []Layer
}

// New creates a network from the given layers in evaluation order.
func New(layers ...Layer) *Network {
	return &Network{Layers: layers}
}

// NewFeedForward builds a fully connected network from neuron counts,
// inserting the given activation after every Dense layer.
//
// NewFeedForward([]int{784, 16, 10}, Sigmoid) produces
// Dense(784x16) -> Sigmoid -> Dense(16x10) -> Sigmoid.
func NewFeedForward(sizes []int, act Activation) *Network {
	layers := make([]Layer, 0, 2*(len(sizes)-1))
	for i := 0; i+1 < len(sizes); i++ {
		layers = append(layers, NewDense(sizes[i], sizes[i+1]), act)
	}
	return New(layers...)
}

// FeedForward evaluates the network on one input.
func (n *Network) FeedForward(input algebra.Vector) algebra.Vector {
	out := input
	for _, layer := range n.Layers {
		out = layer.Forward(out)
	}
	return out
}

// BackPropagate runs one forward pass, then walks the layers in reverse
// propagating the cost gradient. Returns one Gradient per layer, in layer
// order.
func (n *Network) BackPropagate(input algebra.Vector, target algebra.Vector) []Gradient {
	inputs := make([]algebra.Vector, len(n.Layers))
	out := input
	for i, layer := range n.Layers {
		inputs[i] = out
		out = layer.Forward(out)
	}

	grads := make([]Gradient, len(n.Layers))
	grad := n.CostPrime(out, target)
	for i := len(n.Layers) - 1; i >= 0; i-- {
		grads[i] = n.Layers[i].Backward(inputs[i], grad)
		grad = grads[i].Input
	}
	return grads
}

// Train runs minibatch gradient descent over data: gradients are averaged
// across the batch and applied once per layer.
func (n *Network) Train(data []Sample, learningRate float64) {
	if len(data) == 0 {
		return
	}
	sums := n.gradientSums(data)
	n.apply(sums, learningRate/float64(len(data)))
}

// TrainParallel splits data into shards, computes per-shard gradient sums
// on a worker pool, and applies the merged average once. The resulting
// update equals Train's up to floating-point summation order.
func (n *Network) TrainParallel(data []Sample, learningRate float64, workers int) error {
	if len(data) == 0 {
		return nil
	}
	if workers <= 1 || len(data) < workers {
		n.Train(data, learningRate)
		return nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	shardSums := make([][]Gradient, workers)
	shardSize := (len(data) + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * shardSize
		end := min(start+shardSize, len(data))
		if start >= end {
			continue
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			shardSums[i] = n.gradientSums(data[start:end])
		}); err != nil {
			wg.Done()
			wg.Wait()
			return errors.Wrap(err, "submit gradient shard")
		}
	}
	wg.Wait()

	var sums []Gradient
	for _, shard := range shardSums {
		if shard == nil {
			continue
		}
		if sums == nil {
			sums = shard
			continue
		}
		accumulate(sums, shard)
	}
	n.apply(sums, learningRate/float64(len(data)))
	return nil
}

// gradientSums sums per-layer gradients over data. The receiver is only
// read, so disjoint shards may run concurrently.
func (n *Network) gradientSums(data []Sample) []Gradient {
	var sums []Gradient
	for _, sample := range data {
		grads := n.BackPropagate(sample.Input, sample.Target)
		if sums == nil {
			sums = grads
			continue
		}
		accumulate(sums, grads)
	}
	return sums
}

func (n *Network) apply(sums []Gradient, scale float64) {
	for i, layer := range n.Layers {
		layer.Update(sums[i], scale)
	}
}

// accumulate adds each layer's gradient in grads to the matching entry in
// sums. Parameter-free layers carry empty weight and bias gradients.
func accumulate(sums, grads []Gradient) {
	for i := range sums {
		if grads[i].Weights.Rows() > 0 {
			sums[i].Weights.Add(&grads[i].Weights)
		}
		if grads[i].Biases.Len() > 0 {
			sums[i].Biases.Add(grads[i].Biases)
		}
	}
}

// Cost computes the mean squared error between one output and its target.
func (n *Network) Cost(output, target algebra.Vector) float64 {
	var sum float64
	for i := 0; i < output.Len(); i++ {
		d := output.At(i) - target.At(i)
		sum += d * d
	}
	return sum / float64(output.Len())
}

// CostPrime computes the cost derivative with respect to each output:
// 2*(output - target)/n.
func (n *Network) CostPrime(output, target algebra.Vector) algebra.Vector {
	out := output.Clone()
	scale := 2.0 / float64(out.Len())
	for i := 0; i < out.Len(); i++ {
		out.Set(i, scale*(out.At(i)-target.At(i)))
	}
	return out
}

// Layout describes the network as "Dense(784x16) -> Sigmoid -> ...".
func (n *Network) Layout() string {
	parts := make([]string, len(n.Layers))
	for i, layer := range n.Layers {
		parts[i] = layer.Display()
	}
	return strings.Join(parts, " -> ")
}

// Equal reports whether both networks hold the same layers with identical
// parameters.
func (n *Network) Equal(other *Network) bool {
	if len(n.Layers) != len(other.Layers) {
		return false
	}
	for i, layer := range n.Layers {
		switch l := layer.(type) {
		case *Dense:
			o, ok := other.Layers[i].(*Dense)
			if !ok || !l.Equal(o) {
				return false
			}
		case Activation:
			if o, ok := other.Layers[i].(Activation); !ok || l != o {
				return false
			}
		default:
			return false
		}
	}
	return true
}
