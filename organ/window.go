package organ

// MovingWindow is a fixed-capacity ring buffer with a running sum, used for
// the smoothed equilibrium trackers in the senescence engine. Pushing past
// capacity evicts the oldest value; Average never re-sums the window.
type MovingWindow struct {
	values     []float64
	writeIndex int
	count      int
	sum        float64
}

// NewMovingWindow creates a window holding at most capacity values.
func NewMovingWindow(capacity int) *MovingWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &MovingWindow{values: make([]float64, capacity)}
}

// Push appends a value, evicting the oldest if the window is full.
func (w *MovingWindow) Push(v float64) {
	if w.count == len(w.values) {
		w.sum -= w.values[w.writeIndex]
	} else {
		w.count++
	}
	w.values[w.writeIndex] = v
	w.sum += v
	w.writeIndex = (w.writeIndex + 1) % len(w.values)
}

// Average returns the mean of the stored values, or 0 for an empty window.
func (w *MovingWindow) Average() float64 {
	if w.count == 0 {
		return 0
	}
	return w.sum / float64(w.count)
}

// Len returns the number of stored values.
func (w *MovingWindow) Len() int {
	return w.count
}

// Cap returns the window capacity.
func (w *MovingWindow) Cap() int {
	return len(w.values)
}

// Reset empties the window without reallocating.
func (w *MovingWindow) Reset() {
	for i := range w.values {
		w.values[i] = 0
	}
	w.writeIndex = 0
	w.count = 0
	w.sum = 0
}
