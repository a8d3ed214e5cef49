// Package main provides the mlp command line tool.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/mlp"
	"github.com/pkg/errors"
)

const version = "v0.1.0"

// xorMargin keeps generated XOR points this far from both axes.
const xorMargin = 0.05

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "mlp: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "mlp %s\n", version)
		return nil
	case "train":
		return train(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return errors.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "mlp - single hidden layer perceptron trainer")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train      Train on XOR points or MNIST IDX files")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'mlp train -h' for training flags.")
}

func train(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfgPath := fs.String("config", "", "Path to YAML config")
	data := fs.String("data", "", "Dataset: xor or mnist")
	mnistDir := fs.String("mnist-dir", "", "Directory holding MNIST IDX files")
	samples := fs.Int("samples", 0, "XOR points to generate, or MNIST examples to load (0 = all)")
	valid := fs.Int("valid", 0, "Examples held out for validation")
	workers := fs.Int("workers", 0, "Goroutines for row-wise kernels (0 = one per CPU)")
	hidden := fs.Int("hidden", 0, "Hidden units")
	l2 := fs.Float64("l2", 0, "L2 regularization strength")
	epochs := fs.Int("epochs", 0, "Training epochs")
	eta := fs.Float64("eta", 0, "Learning rate")
	shuffle := fs.Bool("shuffle", true, "Shuffle training data every epoch")
	minibatch := fs.Int("minibatch", 0, "Minibatch size")
	seed := fs.Int64("seed", 0, "PRNG seed")
	progress := fs.Bool("progress", false, "Draw a progress line instead of logging every epoch")
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var o overrides
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			o.Data = data
		case "mnist-dir":
			o.MNISTDir = mnistDir
		case "samples":
			o.Samples = samples
		case "valid":
			o.Valid = valid
		case "workers":
			o.Workers = workers
		case "hidden":
			o.Hidden = hidden
		case "l2":
			o.L2 = l2
		case "epochs":
			o.Epochs = epochs
		case "eta":
			o.Eta = eta
		case "shuffle":
			o.Shuffle = shuffle
		case "minibatch":
			o.MinibatchSize = minibatch
		case "seed":
			o.Seed = seed
		}
	})

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		return errors.WithMessage(err, "invalid config")
	}

	trainSet, validSet, err := loadData(cfg)
	if err != nil {
		return err
	}
	logger.Info("dataset loaded",
		"data", cfg.Data,
		"train", trainSet.Len(),
		"valid", validSet.Len(),
		"features", featureCount(trainSet))

	var reporter mlp.Reporter = mlp.NewLogReporter(logger)
	if *progress {
		reporter = mlp.NewWriterReporter(stderr)
	}
	opts := []mlp.Option{mlp.WithReporter(reporter)}
	if cfg.Workers > 0 {
		opts = append(opts, mlp.WithWorkers(cfg.Workers))
	}

	clf, err := mlp.New(cfg.classifierConfig(), opts...)
	if err != nil {
		return err
	}
	if dropped := clf.DroppedPerEpoch(trainSet.Len()); dropped > 0 {
		logger.Warn("trailing examples skipped every epoch",
			"dropped", dropped,
			"minibatch_size", cfg.MinibatchSize)
	}

	start := time.Now()
	if err := clf.Fit(trainSet.X, trainSet.Y, validSet.X, validSet.Y); err != nil {
		return errors.WithMessage(err, "training failed")
	}
	if *progress {
		fmt.Fprintln(stderr)
	}

	cost, trainAcc, validAcc, _ := clf.History().Last()
	logger.Info("training finished",
		"epochs", clf.History().Len(),
		"cost", cost,
		"train_acc", trainAcc,
		"valid_acc", validAcc,
		"elapsed", time.Since(start))

	fmt.Fprintf(stdout, "train accuracy: %.2f%%\n", trainAcc*100)
	fmt.Fprintf(stdout, "validation accuracy: %.2f%%\n", validAcc*100)

	if cfg.Data == dataMNIST {
		return scoreMNISTTest(clf, cfg, stdout, logger)
	}
	return nil
}

// loadData builds the train/validation split described by cfg.
func loadData(cfg *fileConfig) (trainSet, validSet dataset.Dataset, err error) {
	var all dataset.Dataset
	switch cfg.Data {
	case dataXOR:
		var s uint64 = 1
		if cfg.Seed != nil {
			s = uint64(*cfg.Seed)
		}
		all, err = dataset.XOR(rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)), cfg.Samples, xorMargin)
	case dataMNIST:
		all, err = dataset.LoadMNIST(cfg.MNISTDir, dataset.TrainImagesFile, dataset.TrainLabelsFile, cfg.Samples)
	default:
		err = errors.Errorf("unknown dataset %q", cfg.Data)
	}
	if err != nil {
		return dataset.Dataset{}, dataset.Dataset{}, errors.WithMessagef(err, "load %s data", cfg.Data)
	}
	return all.Split(all.Len() - cfg.Valid)
}

// scoreMNISTTest reports accuracy on the MNIST test files when they exist.
func scoreMNISTTest(clf *mlp.Classifier, cfg *fileConfig, stdout io.Writer, logger *slog.Logger) error {
	if _, err := os.Stat(filepath.Join(cfg.MNISTDir, dataset.TestImagesFile)); err != nil {
		logger.Debug("no test set found", "dir", cfg.MNISTDir)
		return nil
	}

	test, err := dataset.LoadMNIST(cfg.MNISTDir, dataset.TestImagesFile, dataset.TestLabelsFile, 0)
	if err != nil {
		return errors.WithMessage(err, "load mnist test data")
	}
	acc, err := clf.Score(test.X, test.Y)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "test accuracy: %.2f%%\n", acc*100)
	return nil
}

func featureCount(d dataset.Dataset) int {
	if d.X == nil {
		return 0
	}
	_, c := d.X.Dims()
	return c
}
