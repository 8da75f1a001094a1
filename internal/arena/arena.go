// Package arena implements the bump allocator the parser uses for its
// output tree: parse-tree nodes are allocated from a
// linked list of fixed-size chunks and released as a single unit, never
// individually freed.
package arena

import "unsafe"

// DefaultChunkSize is the size, in bytes, of each arena chunk: roughly
// 240 KiB, matching the fixed-chunk variant the parser's design settled on
// over a parameterized-chunk scheme.
const DefaultChunkSize = 240 * 1024

const pointerSize = unsafe.Sizeof(uintptr(0))

// Allocator supplies raw memory for arena chunks. New, and NewWithAllocator
// given a nil Allocator, use mallocAllocator, which calls make([]byte, n);
// callers that want to plug in a custom allocator (the Go analogue of the
// spec's allocator/deallocator/userdata triple) pass one to NewWithAllocator.
type Allocator interface {
	// Alloc returns a zeroed byte slice of length n, or ok=false if the
	// allocator cannot satisfy the request.
	Alloc(n int) (buf []byte, ok bool)
}

type mallocAllocator struct{}

func (mallocAllocator) Alloc(n int) ([]byte, bool) {
	defer func() { recover() }() //nolint:errcheck // convert a make() OOM panic into ok=false
	return make([]byte, n), true
}

type chunk struct {
	buf  []byte
	used int
}

// Arena is a bump allocator organized as a singly linked list of fixed-size
// chunks. Individual allocations are never freed; Destroy releases
// everything at once.
type Arena struct {
	alloc     Allocator
	chunkSize int

	chunks  []*chunk // all chunks ever allocated, in allocation order
	current *chunk   // the chunk bump-allocation currently targets

	// OutOfMemory is set once the underlying Allocator fails to satisfy a
	// request. The arena stays usable (Bytes/Alloc return nil/zero values)
	// so a partially built tree can still be inspected and destroyed.
	OutOfMemory bool

	destroyed bool
}

// New creates an Arena with the default chunk size and allocator.
func New() *Arena {
	return NewWithAllocator(DefaultChunkSize, nil)
}

// NewWithAllocator creates an Arena using chunkSize-byte chunks (falling
// back to DefaultChunkSize if chunkSize <= 0) and alloc (falling back to
// the system allocator if alloc is nil).
func NewWithAllocator(chunkSize int, alloc Allocator) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if alloc == nil {
		alloc = mallocAllocator{}
	}
	return &Arena{alloc: alloc, chunkSize: chunkSize}
}

// Bytes returns a zeroed, pointer-aligned byte slice of length n, backed by
// the arena. It is the byte-oriented primitive every typed allocation in
// this package is built from.
func (a *Arena) Bytes(n int) []byte {
	if a.OutOfMemory || a.destroyed {
		return nil
	}
	aligned := alignUp(n, int(pointerSize))

	if a.current != nil && a.current.used+aligned <= len(a.current.buf) {
		buf := a.current.buf[a.current.used : a.current.used+aligned : a.current.used+aligned]
		a.current.used += aligned
		return buf[:n]
	}

	if aligned > a.chunkSize {
		// Oversize request: give it its own dedicated block, linked into
		// the chunk list, without disturbing the current bump chunk.
		buf, ok := a.alloc.Alloc(aligned)
		if !ok {
			a.OutOfMemory = true
			return nil
		}
		oversize := &chunk{buf: buf, used: aligned}
		a.chunks = append(a.chunks, oversize)
		return buf[:n]
	}

	buf, ok := a.alloc.Alloc(a.chunkSize)
	if !ok {
		a.OutOfMemory = true
		return nil
	}
	next := &chunk{buf: buf}
	a.chunks = append(a.chunks, next)
	a.current = next
	next.used = aligned
	return next.buf[:aligned][:n]
}

// Alloc allocates and zero-value-initializes a single T from the arena,
// returning a pointer to it. It is a thin generic convenience over Bytes;
// callers needing a slice of T should call Bytes and a reinterpret helper
// instead (none is provided here because the DOM allocator only ever needs
// single values, one per node).
func Alloc[T any](a *Arena) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	buf := a.Bytes(size)
	if buf == nil {
		return new(T) // keeps callers panic-free under OOM; see Arena.OutOfMemory
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(buf)))
}

// Destroy releases every chunk. It is idempotent: calling it more than once
// is a no-op. Because Go is garbage collected, "release" means dropping the
// arena's own references so the chunks become collectible; the contract
// being modeled is "one release point for the whole tree", not manual free.
func (a *Arena) Destroy() {
	if a.destroyed {
		return
	}
	a.chunks = nil
	a.current = nil
	a.destroyed = true
}

// ChunkCount reports how many chunks (including oversize blocks) the arena
// has allocated so far. Exposed for tests verifying the allocation
// strategy; not part of the parser's public surface.
func (a *Arena) ChunkCount() int {
	return len(a.chunks)
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}
