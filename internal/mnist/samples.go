package mnist

import (
	"github.com/cockroachdb/errors"

	"github.com/synapse-ml/synapse/internal/algebra"
	"github.com/synapse-ml/synapse/internal/network"
)

// Classes is the number of output categories: the digits 0-9.
const Classes = 10

// Samples converts the dataset into training samples. Pixel values are
// scaled to [0, 1] and labels become one-hot target vectors where index
// n is set for digit n.
func (d *Dataset) Samples() ([]network.Sample, error) {
	samples := make([]network.Sample, len(d.Images))
	for i, img := range d.Images {
		label := d.Labels[i]
		if label >= Classes {
			return nil, errors.Newf("sample %d: label %d out of range", i, label)
		}

		input := algebra.NewVector(len(img))
		for p, px := range img {
			input.Set(p, float64(px)/255.0)
		}

		target := algebra.NewVector(Classes)
		target.Set(int(label), 1)

		samples[i] = network.Sample{Input: input, Target: target}
	}
	return samples, nil
}
