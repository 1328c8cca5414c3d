// Package bufpool provides the reference-counted packet buffer pool
// shared across all listeners (spec §5: "the packet-buffer pool is
// shared across all listeners and is reference-counted; handlers must
// not retain references past their return").
package bufpool

import "sync"

// Buffer is a pool-owned byte slice. Callers must call Release exactly
// once per Get and once per Retain, and must not retain Bytes() past
// the final Release.
type Buffer struct {
	data []byte
	pool *Pool
	refs int32
}

// Bytes returns the buffer's backing slice, sized to its capacity. The
// caller is responsible for tracking how many bytes are actually in
// use (mirrors a gnrc_pktsnip's size field).
func (b *Buffer) Bytes() []byte { return b.data }

// Retain increments the reference count so more than one goroutine can
// hold the buffer before it is released (spec §5 "reference-counted").
func (b *Buffer) Retain() {
	b.pool.mu.Lock()
	b.refs++
	b.pool.mu.Unlock()
}

// Release decrements the reference count, returning the buffer to the
// pool's free list once it drops to zero.
func (b *Buffer) Release() {
	b.pool.mu.Lock()
	b.refs--
	done := b.refs <= 0
	b.pool.mu.Unlock()
	if done {
		b.pool.put(b)
	}
}

// Pool is a fixed-capacity set of fixed-size buffers. It never grows:
// exhaustion is reported to the caller rather than allocating more
// (spec §5: "out-of-buffer returns a send failed to the caller rather
// than waiting").
type Pool struct {
	mu       sync.Mutex
	free     []*Buffer
	bufSize  int
	capacity int
}

// New creates a pool of capacity buffers, each bufSize bytes.
func New(capacity, bufSize int) *Pool {
	p := &Pool{bufSize: bufSize, capacity: capacity}
	p.free = make([]*Buffer, 0, capacity)
	for i := 0; i < capacity; i++ {
		p.free = append(p.free, &Buffer{data: make([]byte, bufSize), pool: p})
	}
	return p
}

// Get removes one buffer from the free list, or reports ok=false if
// the pool is exhausted.
func (p *Pool) Get() (buf *Buffer, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.free)
	if n == 0 {
		return nil, false
	}
	buf = p.free[n-1]
	p.free = p.free[:n-1]
	buf.refs = 1
	return buf, true
}

func (p *Pool) put(buf *Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, buf)
}

// Available returns the current count of free buffers, useful for
// metrics and tests.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
