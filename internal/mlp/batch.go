package mlp

import "math/rand/v2"

// epochOrder returns the example indices for one epoch, permuted with rng
// when shuffle is set.
func epochOrder(rng *rand.Rand, n int, shuffle bool) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if shuffle {
		rng.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}
	return indices
}

// minibatches splits indices into contiguous batches of exactly size
// elements. A trailing remainder shorter than size is dropped.
func minibatches(indices []int, size int) [][]int {
	var batches [][]int
	for start := 0; start+size <= len(indices); start += size {
		batches = append(batches, indices[start:start+size])
	}
	return batches
}

// DroppedPerEpoch returns how many of n training examples are left out of
// gradient updates each epoch because they do not fill a whole minibatch.
func (c *Classifier) DroppedPerEpoch(n int) int {
	if n <= 0 {
		return 0
	}
	return n % c.cfg.MinibatchSize
}
