package preview

import (
	"log/slog"
	"sync/atomic"

	"github.com/svglens/svglens/internal/raster"
)

// Result is one completed render, tagged with the generation of the
// submission that produced it.
type Result struct {
	Gen uint64
	Img *raster.Image
	Err error
}

// Pipeline runs renders on background goroutines and hands results back to
// the owning loop over a channel. Each Submit supersedes the previous one:
// a result whose generation is no longer current must be discarded by the
// consumer. There is no explicit cancellation; a superseded render runs to
// completion and its output is dropped.
type Pipeline struct {
	renderer raster.Renderer
	results  chan Result
	done     chan struct{}
	gen      atomic.Uint64
	log      *slog.Logger
}

// NewPipeline returns a pipeline that renders with r.
func NewPipeline(r raster.Renderer, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		renderer: r,
		results:  make(chan Result, 8),
		done:     make(chan struct{}),
		log:      log,
	}
}

// Submit starts an asynchronous render of src at scale and returns its
// generation. Any earlier in-flight render is superseded.
func (p *Pipeline) Submit(src []byte, scale float32) uint64 {
	gen := p.gen.Add(1)
	go func() {
		img, err := p.renderer.Render(src, scale)
		// Block until the pump takes the result or the pipeline shuts
		// down. A full buffer only means the consumer is momentarily
		// behind; dropping here could lose the current generation and
		// leave the view stale with no retry.
		select {
		case p.results <- Result{Gen: gen, Img: img, Err: err}:
		case <-p.done:
			if img != nil {
				if rerr := img.Release(); rerr != nil {
					p.log.Warn("release dropped render", "err", rerr)
				}
			}
			p.log.Debug("dropped render result", "gen", gen)
		}
	}()
	return gen
}

// Results is the channel completed renders arrive on.
func (p *Pipeline) Results() <-chan Result { return p.results }

// Done is closed when the pipeline shuts down, releasing any goroutine
// blocked on Results.
func (p *Pipeline) Done() <-chan struct{} { return p.done }

// Generation returns the most recently submitted generation.
func (p *Pipeline) Generation() uint64 { return p.gen.Load() }

// Invalidate supersedes any in-flight render without submitting a new one.
func (p *Pipeline) Invalidate() { p.gen.Add(1) }

// Close supersedes in-flight work and wakes result pumps. Must be called
// at most once, by the owning session.
func (p *Pipeline) Close() {
	p.Invalidate()
	close(p.done)
}
