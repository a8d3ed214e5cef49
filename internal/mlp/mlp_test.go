package mlp

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/born-ml/mlp/internal/dataset"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func xorData(t *testing.T, seed uint64, n int) dataset.Dataset {
	t.Helper()
	d, err := dataset.XOR(rand.New(rand.NewPCG(seed, 1)), n, 0.1)
	require.NoError(t, err)
	return d
}

func xorConfig() Config {
	cfg := DefaultConfig()
	cfg.Hidden = 10
	cfg.Epochs = 300
	cfg.Eta = 0.1
	cfg.MinibatchSize = 5
	cfg.Seed = Seed(1)
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero hidden", func(c *Config) { c.Hidden = 0 }},
		{"negative l2", func(c *Config) { c.L2 = -0.1 }},
		{"zero epochs", func(c *Config) { c.Epochs = 0 }},
		{"zero eta", func(c *Config) { c.Eta = 0 }},
		{"negative eta", func(c *Config) { c.Eta = -1 }},
		{"nan eta", func(c *Config) { c.Eta = math.NaN() }},
		{"infinite eta", func(c *Config) { c.Eta = math.Inf(1) }},
		{"nan l2", func(c *Config) { c.L2 = math.NaN() }},
		{"infinite l2", func(c *Config) { c.L2 = math.Inf(1) }},
		{"zero minibatch", func(c *Config) { c.MinibatchSize = 0 }},
		{"negative features", func(c *Config) { c.Features = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)

			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30, cfg.Hidden)
	assert.Equal(t, 0.0, cfg.L2)
	assert.Equal(t, 100, cfg.Epochs)
	assert.Equal(t, 0.001, cfg.Eta)
	assert.True(t, cfg.Shuffle)
	assert.Equal(t, 1, cfg.MinibatchSize)
	assert.Nil(t, cfg.Seed)
}

func TestClassifier_XORConvergence(t *testing.T) {
	d := xorData(t, 42, 250)
	train, valid, err := d.Split(200)
	require.NoError(t, err)

	clf, err := New(xorConfig())
	require.NoError(t, err)
	require.NoError(t, clf.Fit(train.X, train.Y, valid.X, valid.Y))

	h := clf.History()
	require.Equal(t, 300, h.Len())
	_, trainAcc, validAcc, ok := h.Last()
	require.True(t, ok)
	assert.GreaterOrEqual(t, trainAcc, 0.95)
	assert.GreaterOrEqual(t, validAcc, 0.9)
	assert.Less(t, h.Cost[h.Len()-1], h.Cost[0])

	score, err := clf.Score(train.X, train.Y)
	require.NoError(t, err)
	assert.Equal(t, trainAcc, score)
	assert.Equal(t, 2, clf.Classes())
	assert.Equal(t, 2, clf.Features())
}

func TestClassifier_Deterministic(t *testing.T) {
	d := xorData(t, 7, 60)
	cfg := xorConfig()
	cfg.Epochs = 15

	fit := func() *Classifier {
		clf, err := New(cfg, WithWorkers(4))
		require.NoError(t, err)
		require.NoError(t, clf.Fit(d.X, d.Y, d.X, d.Y))
		return clf
	}
	a, b := fit(), fit()

	pa, err := a.Parameters()
	require.NoError(t, err)
	pb, err := b.Parameters()
	require.NoError(t, err)

	assert.True(t, mat.Equal(pa.WH, pb.WH))
	assert.True(t, mat.Equal(pa.WOut, pb.WOut))
	assert.Equal(t, pa.BH, pb.BH)
	assert.Equal(t, pa.BOut, pb.BOut)
	assert.Equal(t, a.History(), b.History())

	// A different seed gives a different model.
	cfg.Seed = Seed(2)
	c, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, c.Fit(d.X, d.Y, d.X, d.Y))
	pc, err := c.Parameters()
	require.NoError(t, err)
	assert.False(t, mat.Equal(pa.WH, pc.WH))
}

func TestClassifier_ParallelKernelsMatchSequential(t *testing.T) {
	d := xorData(t, 8, 80)
	cfg := xorConfig()
	cfg.Epochs = 10
	cfg.MinibatchSize = 20

	fit := func(par parallel.Config) *nn.Parameters {
		clf, err := New(cfg, WithParallel(par))
		require.NoError(t, err)
		require.NoError(t, clf.Fit(d.X, d.Y, d.X, d.Y))
		p, err := clf.Parameters()
		require.NoError(t, err)
		return p
	}

	fanned := fit(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
	serial := fit(parallel.Sequential())

	assert.True(t, mat.Equal(fanned.WH, serial.WH))
	assert.True(t, mat.Equal(fanned.WOut, serial.WOut))
	assert.Equal(t, fanned.BH, serial.BH)
	assert.Equal(t, fanned.BOut, serial.BOut)
}

// TestClassifier_MinibatchDropPolicy trains one unshuffled epoch on 10
// examples with minibatches of 3 and replays the 3 updates by hand.
func TestClassifier_MinibatchDropPolicy(t *testing.T) {
	d := xorData(t, 9, 10)
	// Make sure labels cover both classes in the first 9 rows too.
	d.Y[0], d.Y[1] = 0, 1

	cfg := DefaultConfig()
	cfg.Hidden = 3
	cfg.Epochs = 1
	cfg.Eta = 0.5
	cfg.L2 = 0.01
	cfg.Shuffle = false
	cfg.MinibatchSize = 3
	cfg.Seed = Seed(5)

	batches := minibatches(epochOrder(nil, 10, false), 3)
	require.Len(t, batches, 3)
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}, batches)

	clf, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, clf.DroppedPerEpoch(10))
	require.NoError(t, clf.Fit(d.X, d.Y, nil, nil))
	got, err := clf.Parameters()
	require.NoError(t, err)

	// Replay: same seed, same initialization, three manual steps.
	rng := rand.New(rand.NewPCG(5, pcgStream))
	want, err := nn.InitParameters(rng, 2, 3, 2, nn.InitScale)
	require.NoError(t, err)
	yEnc, err := nn.OneHot(d.Y, 2)
	require.NoError(t, err)
	sgd := optim.NewSGD(optim.SGDConfig{Eta: cfg.Eta, L2: cfg.L2})
	for _, batch := range batches {
		xb, err := tensor.GatherRows(d.X, batch)
		require.NoError(t, err)
		yb, err := tensor.GatherRows(yEnc, batch)
		require.NoError(t, err)
		cache, err := nn.Forward(xb, want)
		require.NoError(t, err)
		grads, err := nn.Backward(xb, yb, cache, want)
		require.NoError(t, err)
		require.NoError(t, sgd.Step(want, grads))
	}

	assert.True(t, mat.EqualApprox(want.WH, got.WH, 1e-12))
	assert.True(t, mat.EqualApprox(want.WOut, got.WOut, 1e-12))
	assert.InDeltaSlice(t, want.BH, got.BH, 1e-12)
	assert.InDeltaSlice(t, want.BOut, got.BOut, 1e-12)

	// The 10th example never reached a gradient step.
	moved := mat.DenseCopyOf(d.X)
	moved.Set(9, 0, 100)
	moved.Set(9, 1, -100)
	other, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, other.Fit(moved, d.Y, nil, nil))
	op, err := other.Parameters()
	require.NoError(t, err)
	assert.True(t, mat.Equal(got.WH, op.WH))
	assert.Equal(t, got.BOut, op.BOut)
}

func TestMinibatches(t *testing.T) {
	idx := []int{4, 2, 0, 1, 3}
	assert.Equal(t, [][]int{{4, 2}, {0, 1}}, minibatches(idx, 2))
	assert.Equal(t, [][]int{{4, 2, 0, 1, 3}}, minibatches(idx, 5))
	assert.Len(t, minibatches(idx, 1), 5)

	ten := epochOrder(nil, 10, false)
	batches := minibatches(ten, 3)
	require.Len(t, batches, 3)
	assert.Equal(t, []int{6, 7, 8}, batches[2], "row 9 is left out")

	rng := rand.New(rand.NewPCG(1, pcgStream))
	order := epochOrder(rng, 50, true)
	assert.ElementsMatch(t, epochOrder(nil, 50, false), order)
	assert.NotEqual(t, epochOrder(nil, 50, false), order)
}

func TestClassifier_PredictShapes(t *testing.T) {
	d := xorData(t, 3, 40)
	cfg := xorConfig()
	cfg.Epochs = 2

	clf, err := New(cfg)
	require.NoError(t, err)

	_, err = clf.Predict(d.X)
	assert.ErrorIs(t, err, ErrNotFitted)
	_, err = clf.Parameters()
	assert.ErrorIs(t, err, ErrNotFitted)
	assert.False(t, clf.Fitted())

	require.NoError(t, clf.Fit(d.X, d.Y, nil, nil))
	assert.True(t, clf.Fitted())

	for _, m := range []int{1, 7, 40} {
		x := mat.DenseCopyOf(d.X.Slice(0, m, 0, 2))
		pred, err := clf.Predict(x)
		require.NoError(t, err)
		require.Len(t, pred, m)
		for _, label := range pred {
			assert.Contains(t, []int{0, 1}, label)
		}
	}

	_, err = clf.Predict(mat.NewDense(3, 5, nil))
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = clf.Score(d.X, d.Y[:3])
	assert.ErrorIs(t, err, ErrShapeMismatch)

	// Empty validation set is allowed and reports 0.
	h := clf.History()
	assert.Equal(t, []float64{0, 0}, h.ValidAcc)
}

func TestClassifier_FitErrors(t *testing.T) {
	d := xorData(t, 11, 20)

	newClf := func(mutate func(*Config)) *Classifier {
		cfg := xorConfig()
		cfg.Epochs = 1
		if mutate != nil {
			mutate(&cfg)
		}
		clf, err := New(cfg)
		require.NoError(t, err)
		return clf
	}

	t.Run("rows vs labels", func(t *testing.T) {
		err := newClf(nil).Fit(d.X, d.Y[:19], nil, nil)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("empty training set", func(t *testing.T) {
		err := newClf(nil).Fit(nil, nil, nil, nil)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("configured features", func(t *testing.T) {
		err := newClf(func(c *Config) { c.Features = 3 }).Fit(d.X, d.Y, nil, nil)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("previous features", func(t *testing.T) {
		clf := newClf(nil)
		require.NoError(t, clf.Fit(d.X, d.Y, nil, nil))
		wide := mat.NewDense(20, 3, nil)
		err := clf.Fit(wide, d.Y, nil, nil)
		assert.ErrorIs(t, err, ErrShapeMismatch)
		assert.False(t, clf.Fitted())
	})

	t.Run("validation columns", func(t *testing.T) {
		err := newClf(nil).Fit(d.X, d.Y, mat.NewDense(2, 3, nil), []int{0, 1})
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("validation labels without rows", func(t *testing.T) {
		err := newClf(nil).Fit(d.X, d.Y, nil, []int{0})
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("minibatch larger than dataset", func(t *testing.T) {
		err := newClf(func(c *Config) { c.MinibatchSize = 21 }).Fit(d.X, d.Y, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("negative label", func(t *testing.T) {
		y := append([]int(nil), d.Y...)
		y[4] = -1
		err := newClf(nil).Fit(d.X, y, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidLabel)
	})

	t.Run("gap in classes", func(t *testing.T) {
		y := make([]int, len(d.Y))
		for i := range y {
			y[i] = 2 * (i % 2)
		}
		err := newClf(nil).Fit(d.X, y, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidLabel)
	})

	t.Run("huge label", func(t *testing.T) {
		y := append([]int(nil), d.Y...)
		y[7] = math.MaxInt
		err := newClf(nil).Fit(d.X, y, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidLabel)
	})

	t.Run("validation label out of range", func(t *testing.T) {
		err := newClf(nil).Fit(d.X, d.Y, d.X.Slice(0, 2, 0, 2).(*mat.Dense), []int{0, 5})
		assert.ErrorIs(t, err, ErrInvalidLabel)
	})

	t.Run("divergence", func(t *testing.T) {
		// eta·l2·W overflows on the first step.
		err := newClf(func(c *Config) {
			c.Eta = 1e308
			c.L2 = 1e308
		}).Fit(d.X, d.Y, nil, nil)
		assert.ErrorIs(t, err, ErrNumericInstability)
	})
}

func TestClassifier_RefitResets(t *testing.T) {
	d := xorData(t, 17, 30)
	cfg := xorConfig()
	cfg.Epochs = 4

	clf, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, clf.Fit(d.X, d.Y, nil, nil))
	require.Equal(t, 4, clf.History().Len())

	require.NoError(t, clf.Fit(d.X, d.Y, nil, nil))
	assert.Equal(t, 4, clf.History().Len())

	// A failed fit leaves the classifier unusable until refitted.
	require.Error(t, clf.Fit(d.X, d.Y[:3], nil, nil))
	_, err = clf.Predict(d.X)
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestClassifier_HistoryIsACopy(t *testing.T) {
	d := xorData(t, 19, 20)
	cfg := xorConfig()
	cfg.Epochs = 2

	clf, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, clf.Fit(d.X, d.Y, d.X, d.Y))

	h := clf.History()
	h.Cost[0] = -1
	assert.NotEqual(t, -1.0, clf.History().Cost[0])

	p, err := clf.Parameters()
	require.NoError(t, err)
	p.WH.Set(0, 0, 1e9)
	q, err := clf.Parameters()
	require.NoError(t, err)
	assert.NotEqual(t, 1e9, q.WH.At(0, 0))

	seed := clf.Config().Seed
	*seed = 99
	assert.Equal(t, int64(1), *clf.Config().Seed)
}

func TestReporters(t *testing.T) {
	d := xorData(t, 23, 20)
	cfg := xorConfig()
	cfg.Epochs = 3

	var reports []EpochReport
	clf, err := New(cfg, WithReporter(ReporterFunc(func(r EpochReport) {
		reports = append(reports, r)
	})))
	require.NoError(t, err)
	require.NoError(t, clf.Fit(d.X, d.Y, d.X, d.Y))

	require.Len(t, reports, 3)
	h := clf.History()
	for i, r := range reports {
		assert.Equal(t, i+1, r.Epoch)
		assert.Equal(t, 3, r.Epochs)
		assert.Equal(t, h.Cost[i], r.Cost)
		assert.Equal(t, h.TrainAcc[i], r.TrainAcc)
		assert.Equal(t, h.ValidAcc[i], r.ValidAcc)
	}
}

func TestWriterReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewWriterReporter(&buf)
	r.ReportEpoch(EpochReport{Epoch: 7, Epochs: 100, Cost: 1234.567, TrainAcc: 0.975, ValidAcc: 0.9612})

	assert.Equal(t, "\r007/100 | Cost: 1234.57 | Train/Valid Acc.: 97.50%/96.12% ", buf.String())
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	NewLogReporter(logger).ReportEpoch(EpochReport{Epoch: 2, Epochs: 5, Cost: 1.5, TrainAcc: 0.5, ValidAcc: 0.25})

	out := buf.String()
	for _, want := range []string{`msg="epoch finished"`, "epoch=2", "epochs=5", "cost=1.5", "train_acc=0.5", "valid_acc=0.25"} {
		assert.True(t, strings.Contains(out, want), "missing %q in %q", want, out)
	}

	NopReporter{}.ReportEpoch(EpochReport{})
}

func BenchmarkFitXOR(b *testing.B) {
	d, err := dataset.XOR(rand.New(rand.NewPCG(1, 1)), 200, 0.1)
	if err != nil {
		b.Fatal(err)
	}
	cfg := xorConfig()
	cfg.Epochs = 10

	for i := 0; i < b.N; i++ {
		clf, err := New(cfg)
		if err != nil {
			b.Fatal(err)
		}
		if err := clf.Fit(d.X, d.Y, nil, nil); err != nil {
			b.Fatal(err)
		}
	}
}
