// Package memory implements the bump-style region allocator that accounts
// for the byte cost of values constructed during one interpreter run.
package memory

import "fmt"

// DefaultSize is an Arena's byte capacity when none is given to NewArena.
const DefaultSize = 1 << 20 // 1 MiB, matching the reference implementation's page size.

// Arena is a bump-allocation byte budget: Alloc advances a used-bytes
// cursor against a fixed capacity. It never frees individual allocations; the whole arena is reclaimed in one
// shot when the owning interpreter tears down.
//
// Arena does not itself hold Go values — value.go types live on the normal
// Go heap and are reference-counted by the garbage collector, as is
// idiomatic in Go. Arena instead tracks the abstract byte cost of those
// allocations, so the interpreter can honour a byte budget and report
// out-of-memory the same way the original region allocator did.
type Arena struct {
	size  int
	used  int
	grow  bool
	count int
}

// NewArena returns an arena with the given backing size. A size <= 0 uses
// DefaultSize.
func NewArena(size int) *Arena {
	if size <= 0 {
		size = DefaultSize
	}
	return &Arena{size: size}
}

// Alloc reserves n bytes from the arena, returning an error that wraps
// ErrOutOfMemory if the arena cannot satisfy the request and is not
// configured to grow.
func (a *Arena) Alloc(n int) error {
	if n < 0 {
		n = 0
	}
	if a.used+n > a.size {
		if !a.grow {
			return fmt.Errorf("%w: requested %d bytes, %d of %d already used", ErrOutOfMemory, n, a.used, a.size)
		}
		a.size = a.used + n
	}
	a.used += n
	a.count++
	return nil
}

// AllowGrowth lets the arena expand past its initial size instead of
// failing allocations. Individual frees still remain no-ops: the arena is
// released wholesale.
func (a *Arena) AllowGrowth(allow bool) { a.grow = allow }

// Free is a no-op: the region allocator never reclaims individual
// allocations, only the arena as a whole.
func (a *Arena) Free(int) {}

// Used reports the number of bytes currently considered allocated.
func (a *Arena) Used() int { return a.used }

// Size reports the arena's current backing capacity (may have grown past
// its initial NewArena size if AllowGrowth was set).
func (a *Arena) Size() int { return a.size }

// Count reports the number of allocations made so far.
func (a *Arena) Count() int { return a.count }

// Reset releases the whole arena at once, as happens when the owning
// interpreter's execute method returns.
func (a *Arena) Reset() {
	a.used = 0
	a.count = 0
}

// ErrOutOfMemory is wrapped by the error Alloc returns when the arena is
// exhausted and not configured to grow.
var ErrOutOfMemory = fmt.Errorf("out of memory")
