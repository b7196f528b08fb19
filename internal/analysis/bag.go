package analysis

import (
	"math"

	"fortio.org/safecast"
)

// Diagnostic records one artifact file that was skipped during loading
// and why.
type Diagnostic struct {
	File string
	Err  error
}

// Bag collects load diagnostics, bounded by a limit so a pathological
// output directory cannot grow the batch report without end.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	m, err := safecast.Conv[uint16](max)
	if err != nil {
		m = math.MaxUint16
	}
	return &Bag{max: m}
}

// Add appends a diagnostic, honoring the limit.
// Returns false if the diagnostic was not added.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the collected diagnostics.
// Do not modify the returned slice: it aliases the Bag's storage.
func (b *Bag) Items() []Diagnostic {
	return b.items
}
