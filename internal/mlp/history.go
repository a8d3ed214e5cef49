package mlp

// History records per-epoch training metrics, one entry per epoch in order.
type History struct {
	Cost     []float64
	TrainAcc []float64
	ValidAcc []float64
}

// Len returns the number of recorded epochs.
func (h History) Len() int {
	return len(h.Cost)
}

// Last returns the metrics of the final epoch. ok is false when empty.
func (h History) Last() (cost, trainAcc, validAcc float64, ok bool) {
	n := h.Len()
	if n == 0 {
		return 0, 0, 0, false
	}
	return h.Cost[n-1], h.TrainAcc[n-1], h.ValidAcc[n-1], true
}

// Clone returns a copy that shares no memory with h.
func (h History) Clone() History {
	return History{
		Cost:     append([]float64(nil), h.Cost...),
		TrainAcc: append([]float64(nil), h.TrainAcc...),
		ValidAcc: append([]float64(nil), h.ValidAcc...),
	}
}

func (h *History) append(cost, trainAcc, validAcc float64) {
	h.Cost = append(h.Cost, cost)
	h.TrainAcc = append(h.TrainAcc, trainAcc)
	h.ValidAcc = append(h.ValidAcc, validAcc)
}
