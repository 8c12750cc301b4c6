package sn

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing bounds.
const (
	MinPoolSize = 1

	// MaxPoolSize caps concurrent browsers, each of which costs ~200MB.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome's own helper processes.
	cpuDivisor = 2
)

// ConverterPool hands out Converters to parallel workers. Each Converter owns
// its browser, so n converters print n PDFs at once. Converters are created
// on first demand with the pool's options.
type ConverterPool struct {
	size       int
	opts       []Option
	create     func(...Option) (*Converter, error)
	converters []*Converter
	idle       chan *Converter
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewConverterPool returns a pool of up to n converters built with opts.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &ConverterPool{
		size:       n,
		opts:       opts,
		create:     NewConverter,
		converters: make([]*Converter, 0, n),
		idle:       make(chan *Converter, n),
	}
}

// Acquire returns an idle converter, creates one while under capacity, or
// blocks until one is released. A creation failure frees the slot again.
// After Close it returns errPoolClosed, and a converter whose creation
// outlived Close is shut down instead of returned.
func (p *ConverterPool) Acquire() (*Converter, error) {
	select {
	case c, ok := <-p.idle:
		if !ok {
			return nil, errPoolClosed
		}
		return c, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, errPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		c, err := p.create(p.opts...)

		p.mu.Lock()
		if err != nil {
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		if p.closed {
			p.mu.Unlock()
			_ = c.Close()
			return nil, errPoolClosed
		}
		p.converters = append(p.converters, c)
		p.mu.Unlock()
		return c, nil
	}
	p.mu.Unlock()

	c, ok := <-p.idle
	if !ok {
		return nil, errPoolClosed
	}
	return c, nil
}

var errPoolClosed = errors.New("converter pool closed")

// Release returns c to the pool. Releasing after Close is a no-op.
// idle has room for every converter, so the send under the lock never blocks.
func (p *ConverterPool) Release(c *Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.idle <- c
}

// Close shuts down every converter the pool created.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.idle)
	converters := p.converters
	p.mu.Unlock()

	var errs []error
	for _, c := range converters {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize returns workers when positive, otherwise half of
// GOMAXPROCS clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	return min(max(n, MinPoolSize), MaxPoolSize)
}
