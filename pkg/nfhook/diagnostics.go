package nfhook

import (
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// dropRecord is one entry in the optional drop-diagnostic ring (spec §9).
// The ring is a single mutex-guarded buffer per namespace, not a per-CPU
// lock-free ring. CBOR struct tags keep the encoded form compact, mirroring
// the teacher's CBOR-tagged wire structs (cmd/guest-fused).
type dropRecord struct {
	ID     string    `cbor:"id"`
	Family Family    `cbor:"family"`
	Hook   HookNum   `cbor:"hook"`
	Errno  int       `cbor:"errno"`
	At     time.Time `cbor:"at"`
}

// dropRing is a fixed-capacity ring buffer of recent drop diagnostics.
// Writes are serialized by a mutex: the diagnostic ring is explicitly
// out of the hot-path core (spec §1, §9), so it does not need to be
// wait-free the way chain traversal does; it exists purely for
// after-the-fact debugging via Dump.
type dropRing struct {
	mu       sync.Mutex
	buf      []dropRecord
	next     int
	filled   bool
}

func newDropRing(capacity int) *dropRing {
	if capacity <= 0 {
		capacity = 256
	}
	return &dropRing{buf: make([]dropRecord, capacity)}
}

func (r *dropRing) record(family Family, hook HookNum, errno int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.buf[r.next] = dropRecord{
		ID:     uuid.NewString(),
		Family: family,
		Hook:   hook,
		Errno:  errno,
		At:     time.Now().UTC(),
	}
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.filled = true
	}
	r.mu.Unlock()
}

// Dump returns the ring's contents in chronological order, CBOR-encoded
// as a single array of records — matching the compact wire shape the
// teacher uses for its own CBOR structures.
func (r *dropRing) Dump() ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	r.mu.Lock()
	var ordered []dropRecord
	if r.filled {
		ordered = append(ordered, r.buf[r.next:]...)
	}
	ordered = append(ordered, r.buf[:r.next]...)
	r.mu.Unlock()

	enc, err := cbor.Marshal(ordered)
	if err != nil {
		return nil, err
	}
	return enc, nil
}
