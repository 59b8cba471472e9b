package network

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/synapse-ml/synapse/internal/codec"
)

// Wire format of a saved network:
//
//	[u64 layer_count]
//	layer_count × [u64 tag_len][tag bytes][layer payload]
//
// Dense payload:      [u64 rows][u64 cols][rows×cols f64, column-major]
//	                   [u64 bias_len][bias_len × f64]
// Activation payload: ["Activation::<Variant>" tag], no parameters.
//
// Layer records are dispatched through layerRegistry, a closed table built
// once from the statically enumerated kinds below. New kinds extend the
// table at compile time; there is no runtime registration.

var layerRegistry = codec.NewRegistry(map[string]codec.DecodeFunc[Layer]{
	"Dense":      decodeDenseLayer,
	"Activation": decodeActivationLayer,
})

// LayerTags returns the serializable layer kinds in sorted order.
func LayerTags() []string {
	return layerRegistry.Tags()
}

func appendDense(dst []byte, d *Dense) []byte {
	dst = codec.AppendMatrix(dst, &d.Weights)
	return codec.AppendVector(dst, d.Biases)
}

func decodeDenseLayer(data []byte, off int) (Layer, int, error) {
	weights, next, err := codec.ReadMatrix(data, off)
	if err != nil {
		return nil, off, err
	}
	biases, next, err := codec.ReadVector(data, next)
	if err != nil {
		return nil, off, err
	}
	return &Dense{Weights: weights, Biases: biases}, next, nil
}

func appendActivation(dst []byte, a Activation) []byte {
	return codec.AppendVariant(dst, "Activation::"+a.Display())
}

func decodeActivationLayer(data []byte, off int) (Layer, int, error) {
	var a Activation
	next, err := codec.ReadUnion(data, off, map[string]codec.Arm{
		"Activation::Sigmoid": codec.Variant(func() { a = Sigmoid }),
		"Activation::ReLU":    codec.Variant(func() { a = ReLU }),
		"Activation::Tanh":    codec.Variant(func() { a = Tanh }),
	})
	if err != nil {
		return nil, off, err
	}
	return a, next, nil
}

// Encode serializes the whole network to a flat byte buffer.
func (n *Network) Encode() []byte {
	dst := codec.AppendUint64(nil, uint64(len(n.Layers)))
	for _, layer := range n.Layers {
		switch l := layer.(type) {
		case *Dense:
			dst = codec.AppendTagged(dst, l.Name(), func(b []byte) []byte {
				return appendDense(b, l)
			})
		case Activation:
			dst = codec.AppendTagged(dst, l.Name(), func(b []byte) []byte {
				return appendActivation(b, l)
			})
		default:
			panic("network: layer kind " + layer.Name() + " is not serializable")
		}
	}
	return dst
}

// Decode reconstructs a network from data starting at offset 0 and returns
// it together with the number of bytes consumed. Trailing bytes beyond the
// consumed length are left untouched.
func Decode(data []byte) (*Network, int, error) {
	count, off, err := codec.ReadUint64(data, 0)
	if err != nil {
		return nil, 0, err
	}
	// Every layer record starts with an 8-byte tag length, so a count the
	// remaining input cannot possibly hold is truncated before anything is
	// allocated from it.
	if count > uint64(len(data)-off)/8 {
		return nil, 0, &codec.Error{
			Kind:   codec.KindTruncated,
			Offset: off,
			Detail: fmt.Sprintf("declared %d layers, %d bytes remain", count, len(data)-off),
		}
	}
	n := &Network{Layers: make([]Layer, 0, count)}
	for i := uint64(0); i < count; i++ {
		var layer Layer
		layer, off, err = layerRegistry.Decode(data, off)
		if err != nil {
			return nil, 0, err
		}
		n.Layers = append(n.Layers, layer)
	}
	return n, off, nil
}

// Save writes the network's full encoding to path in one call, truncating
// any existing file.
func Save(n *Network, path string) error {
	if err := os.WriteFile(path, n.Encode(), 0o644); err != nil {
		return errors.Wrapf(err, "save network to %s", path)
	}
	return nil
}

// Load reads the whole file at path into memory and decodes a network from
// offset 0. Trailing bytes beyond the outermost decode are ignored.
func Load(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load network from %s", path)
	}
	n, _, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode network from %s", path)
	}
	return n, nil
}
