package playground

import "time"

// Stopwatch counts seconds while running. It feeds the time uniform so the
// wind can be frozen without losing its phase.
type Stopwatch struct {
	now     func() time.Time
	start   time.Time
	elapsed time.Duration
	paused  bool
}

func NewStopwatch() *Stopwatch {
	return newStopwatch(time.Now)
}

func newStopwatch(now func() time.Time) *Stopwatch {
	return &Stopwatch{now: now, start: now()}
}

func (w *Stopwatch) Seconds() float32 {
	d := w.elapsed
	if !w.paused {
		d += w.now().Sub(w.start)
	}
	return float32(d.Seconds())
}

// Toggle pauses or resumes and reports whether it is now paused.
func (w *Stopwatch) Toggle() bool {
	if w.paused {
		w.start = w.now()
	} else {
		w.elapsed += w.now().Sub(w.start)
	}
	w.paused = !w.paused
	return w.paused
}

func (w *Stopwatch) Paused() bool { return w.paused }
