// Command synapse trains, evaluates and inspects MNIST digit
// classifiers backed by the binary model format in internal/codec.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/synapse-ml/synapse/internal/config"
	"github.com/synapse-ml/synapse/internal/display"
	"github.com/synapse-ml/synapse/internal/mnist"
	"github.com/synapse-ml/synapse/internal/network"
	"github.com/synapse-ml/synapse/internal/trainer"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "synapse",
	Short: "Feed-forward neural networks for handwritten digit recognition",
	Long: `Synapse trains small feed-forward networks on the MNIST dataset and
persists them in a compact big-endian binary format.`,
	Version:       fmt.Sprintf("%s (built %s)", version, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	trainModel string
	trainData  string
	modelPath  string
	dataDir    string
	headless   bool
)

func init() {
	trainCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file (defaults apply when omitted)")
	trainCmd.Flags().StringVarP(&trainModel, "model", "m", "", "override the configured model path")
	trainCmd.Flags().StringVarP(&trainData, "data", "d", "", "override the configured data directory")
	trainCmd.Flags().BoolVar(&headless, "headless", false, "disable the live terminal display")

	evalCmd.Flags().StringVarP(&modelPath, "model", "m", "model.bin", "model file to evaluate")
	evalCmd.Flags().StringVarP(&dataDir, "data", "d", "data", "directory holding the MNIST files")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(inspectCmd)
}

func newLogger(quiet bool) (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a network on MNIST and checkpoint it every epoch",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if configPath != "" {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
		}
		if trainModel != "" {
			cfg.ModelPath = trainModel
		}
		if trainData != "" {
			cfg.DataDir = trainData
		}

		// The live display owns the terminal, so logs stay off unless
		// running headless.
		log, err := newLogger(!headless)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if cfg.Download {
			if err := mnist.NewDownloader().Fetch(cmd.Context(), cfg.DataDir); err != nil {
				return err
			}
		}

		train, test, err := mnist.LoadPair(cfg.DataDir)
		if err != nil {
			return err
		}
		trainSamples, err := train.Samples()
		if err != nil {
			return err
		}
		testSamples, err := test.Samples()
		if err != nil {
			return err
		}

		sizes := append([]int{train.Rows * train.Cols}, cfg.HiddenLayers...)
		sizes = append(sizes, mnist.Classes)
		net := network.NewFeedForward(sizes, network.Sigmoid)
		log.Info("network built", zap.String("layout", net.Layout()))

		var screen *display.Screen
		if !headless {
			screen = display.New(os.Stdout)
		}

		tr := trainer.New(net, trainSamples, testSamples, trainer.Options{
			LearningRate: cfg.LearningRate,
			BatchSize:    cfg.BatchSize,
			Epochs:       cfg.Epochs,
			Workers:      cfg.Workers,
			ModelPath:    cfg.ModelPath,
			ImageRows:    train.Rows,
			ImageCols:    train.Cols,
		}, log, screen)

		return tr.Run(cmd.Context())
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a saved model against the MNIST test split",
	RunE: func(cmd *cobra.Command, args []string) error {
		net, err := network.Load(modelPath)
		if err != nil {
			return err
		}

		_, test, err := mnist.LoadPair(dataDir)
		if err != nil {
			return err
		}
		samples, err := test.Samples()
		if err != nil {
			return err
		}

		tr := trainer.New(net, nil, samples, trainer.Options{}, nil, nil)
		ev := tr.Evaluate(samples)

		fmt.Printf("samples    %d\n", len(samples))
		fmt.Printf("cost       %.6f\n", ev.Cost)
		fmt.Printf("accuracy   %.2f%%\n", ev.Accuracy*100)
		fmt.Printf("confidence %.2f%%\n", ev.Confidence*100)
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <model>",
	Short: "Print the layer layout of a saved model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		net, err := network.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("layers  %d\n", len(net.Layers))
		fmt.Printf("layout  %s\n", net.Layout())
		fmt.Printf("kinds   %v\n", network.LayerTags())
		return nil
	},
}
