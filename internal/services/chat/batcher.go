package chat

import "strings"

// Flush thresholds, in whitespace-delimited words.
const (
	// chatFlushWordCount batches response-stage deltas.
	chatFlushWordCount = 6
	// reasoningFlushWordCount batches reasoning-stage deltas.
	reasoningFlushWordCount = 15
)

// Batcher coalesces a raw delta stream into coarser flush events so
// observers are not notified on every token. Deltas accumulate in a
// candidate buffer; once the candidate reaches the word threshold it is
// appended to the accumulated output and the full accumulated output is
// emitted. Flush emits whatever remains, so the final emission always
// reflects all received content.
//
// The callback must tolerate being invoked with the same full-so-far
// string; deduplication is the observer's job.
type Batcher struct {
	threshold   int
	onUpdate    func(accumulated string)
	accumulated strings.Builder
	candidate   strings.Builder
}

// NewBatcher creates a batcher that emits to onUpdate whenever the candidate
// buffer holds at least threshold words. A nil onUpdate is allowed.
func NewBatcher(threshold int, onUpdate func(string)) *Batcher {
	return &Batcher{
		threshold: threshold,
		onUpdate:  onUpdate,
	}
}

// Write appends a delta to the candidate buffer, emitting if the threshold
// is reached.
func (b *Batcher) Write(delta string) {
	b.candidate.WriteString(delta)

	if len(strings.Fields(b.candidate.String())) >= b.threshold {
		b.accumulated.WriteString(b.candidate.String())
		b.candidate.Reset()
		b.emit()
	}
}

// Flush drains the candidate buffer and emits the final accumulated output.
// Called exactly once at stream end; the emission happens even when the
// candidate never reached the threshold.
func (b *Batcher) Flush() string {
	b.accumulated.WriteString(b.candidate.String())
	b.candidate.Reset()
	b.emit()
	return b.accumulated.String()
}

// String returns the accumulated output emitted so far.
func (b *Batcher) String() string {
	return b.accumulated.String()
}

func (b *Batcher) emit() {
	if b.onUpdate != nil {
		b.onUpdate(b.accumulated.String())
	}
}
