// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mlp_test

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/born-ml/mlp/mlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// quadrants returns points labeled by the quadrant they fall in.
func quadrants(seed uint64, n int) (*mat.Dense, []int) {
	rng := rand.New(rand.NewPCG(seed, 7))
	x := mat.NewDense(n, 2, nil)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		a := rng.Float64()*1.8 + 0.2
		b := rng.Float64()*1.8 + 0.2
		class := i % 4
		if class&1 != 0 {
			a = -a
		}
		if class&2 != 0 {
			b = -b
		}
		x.Set(i, 0, a)
		x.Set(i, 1, b)
		y[i] = class
	}
	return x, y
}

func TestClassifier_PublicAPI(t *testing.T) {
	xTrain, yTrain := quadrants(1, 200)
	xValid, yValid := quadrants(2, 40)

	cfg := mlp.DefaultConfig()
	cfg.Hidden = 8
	cfg.Epochs = 100
	cfg.Eta = 0.05
	cfg.MinibatchSize = 10
	cfg.Seed = mlp.Seed(1)

	var buf bytes.Buffer
	clf, err := mlp.New(cfg, mlp.WithReporter(mlp.NewWriterReporter(&buf)), mlp.WithWorkers(2))
	require.NoError(t, err)

	_, err = clf.Predict(xValid)
	assert.True(t, errors.Is(err, mlp.ErrNotFitted))

	require.NoError(t, clf.Fit(xTrain, yTrain, xValid, yValid))
	assert.Equal(t, 4, clf.Classes())
	assert.Equal(t, 2, clf.Features())
	assert.Equal(t, cfg.Epochs, clf.History().Len())
	assert.Contains(t, buf.String(), "100/100 | Cost: ")

	acc, err := clf.Score(xValid, yValid)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, acc, 0.9)

	first := clf.History().Cost[0]
	last, _, _, ok := clf.History().Last()
	require.True(t, ok)
	assert.Less(t, last, first)
}

func TestClassifier_PublicErrors(t *testing.T) {
	cfg := mlp.DefaultConfig()
	cfg.Hidden = 0
	_, err := mlp.New(cfg)
	assert.ErrorIs(t, err, mlp.ErrInvalidConfiguration)

	clf, err := mlp.New(mlp.DefaultConfig(), mlp.WithReporter(mlp.NopReporter{}))
	require.NoError(t, err)

	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	err = clf.Fit(x, []int{0, 1, 0}, x, []int{0, 1})
	assert.ErrorIs(t, err, mlp.ErrShapeMismatch)

	err = clf.Fit(x, []int{0, 2}, x, []int{0, 2})
	assert.ErrorIs(t, err, mlp.ErrInvalidLabel)
}
