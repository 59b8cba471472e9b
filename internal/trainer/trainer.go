// Package trainer runs the SGD training loop: shuffled mini-batches,
// per-epoch evaluation on the test split, live terminal rendering and a
// checkpoint written after every epoch.
package trainer

import (
	"context"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/synapse-ml/synapse/internal/algebra"
	"github.com/synapse-ml/synapse/internal/display"
	"github.com/synapse-ml/synapse/internal/network"
)

// Options configure a Trainer.
type Options struct {
	LearningRate float64
	BatchSize    int
	Epochs       int
	Workers      int
	ModelPath    string // checkpoint destination; empty disables checkpoints
	ImageRows    int    // preview dimensions for the screen, 0 disables
	ImageCols    int
}

// Trainer owns a network and the data it learns from.
type Trainer struct {
	net    *network.Network
	train  []network.Sample
	test   []network.Sample
	opts   Options
	log    *zap.Logger
	screen *display.Screen
}

// New builds a trainer. screen may be nil to train headless.
func New(net *network.Network, train, test []network.Sample, opts Options, log *zap.Logger, screen *display.Screen) *Trainer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Trainer{net: net, train: train, test: test, opts: opts, log: log, screen: screen}
}

// Evaluation summarizes the network's behavior on a dataset.
type Evaluation struct {
	Cost       float64
	Accuracy   float64
	Confidence float64
	Worst      *network.Sample // least confident correct-class activation
	WorstOut   algebra.Vector  // its raw output
}

// Evaluate runs every sample through the network and aggregates cost,
// accuracy, mean winner confidence and the sample whose true class got
// the weakest activation.
func (t *Trainer) Evaluate(data []network.Sample) Evaluation {
	ev := Evaluation{}
	if len(data) == 0 {
		return ev
	}

	worstScore := 2.0 // activations are at most 1
	var correct int
	for i := range data {
		s := &data[i]
		out := t.net.FeedForward(s.Input)

		ev.Cost += t.net.Cost(out, s.Target)
		guess := out.ArgMax()
		want := s.Target.ArgMax()
		if guess == want {
			correct++
		}
		ev.Confidence += out.At(guess)

		if score := out.At(want); score < worstScore {
			worstScore = score
			ev.Worst = s
			ev.WorstOut = out
		}
	}

	n := float64(len(data))
	ev.Cost /= n
	ev.Accuracy = float64(correct) / n
	ev.Confidence /= n
	return ev
}

// Run executes the configured number of epochs. Each epoch shuffles the
// training set, steps through it in mini-batches, evaluates on the test
// split and checkpoints the model. ctx cancels between batches.
func (t *Trainer) Run(ctx context.Context) error {
	if t.screen != nil {
		t.screen.Init()
		defer t.screen.Close()
	}

	for epoch := 1; epoch <= t.opts.Epochs; epoch++ {
		shuffled := make([]network.Sample, len(t.train))
		copy(shuffled, t.train)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		for _, batch := range lo.Chunk(shuffled, t.opts.BatchSize) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := t.step(batch); err != nil {
				return errors.Wrapf(err, "epoch %d", epoch)
			}
		}

		ev := t.Evaluate(t.test)
		t.report(epoch, ev)

		if t.opts.ModelPath != "" {
			if err := network.Save(t.net, t.opts.ModelPath); err != nil {
				return errors.Wrapf(err, "checkpoint epoch %d", epoch)
			}
		}
	}
	return nil
}

func (t *Trainer) step(batch []network.Sample) error {
	if t.opts.Workers > 1 {
		return t.net.TrainParallel(batch, t.opts.LearningRate, t.opts.Workers)
	}
	t.net.Train(batch, t.opts.LearningRate)
	return nil
}

func (t *Trainer) report(epoch int, ev Evaluation) {
	t.log.Info("epoch complete",
		zap.Int("epoch", epoch),
		zap.Float64("cost", ev.Cost),
		zap.Float64("accuracy", ev.Accuracy),
		zap.Float64("confidence", ev.Confidence),
	)

	if t.screen == nil {
		return
	}

	st := display.Stats{
		Epoch:      epoch,
		Epochs:     t.opts.Epochs,
		Cost:       ev.Cost,
		Accuracy:   ev.Accuracy,
		Confidence: ev.Confidence,
	}
	var image algebra.Vector
	if ev.Worst != nil {
		st.WorstExpected = ev.Worst.Target.ArgMax()
		st.WorstActual = ev.WorstOut.ArgMax()
		image = ev.Worst.Input
	}
	t.screen.Render(st, image, t.opts.ImageRows, t.opts.ImageCols)
}
