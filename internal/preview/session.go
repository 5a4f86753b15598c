// Package preview holds the document-binding, follow, render and
// pan/zoom state for one preview panel.
package preview

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/svglens/svglens/internal/document"
	"github.com/svglens/svglens/internal/raster"
)

// Mode selects how a session picks its document.
type Mode int

const (
	// ModeDefault pins the session to the document it was created with.
	ModeDefault Mode = iota
	// ModeFollow retargets the session to whatever eligible document is
	// active in the host.
	ModeFollow
)

// Scale bounds for the wheel zoom.
const (
	MinScale = 0.25
	MaxScale = 20.0
)

// Point is a 2D offset in pane coordinates.
type Point struct {
	X, Y float32
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Session owns one preview panel's state: the bound document and its
// subscription, the last rendered image or error, and the view transform.
// All methods must be called from the owning loop; only the render itself
// runs elsewhere.
type Session struct {
	mode     Mode
	pipeline *Pipeline
	log      *slog.Logger

	doc document.Document
	sub *document.Subscription

	img     *raster.Image
	errText string

	scale      float32
	pan        Point
	dragAnchor Point
	dragBase   Point
	dragging   bool

	closed bool
}

// NewSession creates a session bound to doc (which may be nil for the
// "no document selected" state) and submits the initial render.
func NewSession(mode Mode, doc document.Document, pipeline *Pipeline, scale float32, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if scale < MinScale || scale > MaxScale {
		scale = 1.0
	}
	s := &Session{
		mode:     mode,
		pipeline: pipeline,
		log:      log,
		scale:    scale,
	}
	s.Bind(doc)
	return s
}

// Mode returns the session's follow mode.
func (s *Session) Mode() Mode { return s.mode }

// Doc returns the bound document, or nil.
func (s *Session) Doc() document.Document { return s.doc }

// Image returns the last successfully rendered image, or nil.
func (s *Session) Image() *raster.Image { return s.img }

// ErrText returns the last render error's description, or "".
func (s *Session) ErrText() string { return s.errText }

// Scale returns the current zoom factor.
func (s *Session) Scale() float32 { return s.scale }

// Pan returns the accumulated pan offset.
func (s *Session) Pan() Point { return s.pan }

// Results exposes the pipeline's completion channel for the owning loop
// to pump.
func (s *Session) Results() <-chan Result { return s.pipeline.Results() }

// Done is closed once the session is closed and no further results will
// be applied.
func (s *Session) Done() <-chan struct{} { return s.pipeline.Done() }

// Title returns the tab title: "Preview <filename>" when bound,
// "SVG Preview" otherwise.
func (s *Session) Title() string {
	if s.doc != nil && s.doc.Path() != "" {
		return fmt.Sprintf("Preview %s", filepath.Base(s.doc.Path()))
	}
	return "SVG Preview"
}

// Bind points the session at doc, releasing any previous binding first,
// and submits a render. A nil doc leaves the session unbound.
func (s *Session) Bind(doc document.Document) {
	s.sub.Release()
	s.sub = nil
	s.doc = doc
	if doc == nil {
		return
	}
	if buf, ok := doc.(*document.Buffer); ok {
		s.sub = buf.Subscribe(func(document.ChangeKind) {
			s.submit()
		})
	}
	s.submit()
}

// Retarget applies the follow rules to a newly active document: ineligible
// documents are ignored, the currently bound document is kept, anything
// else is bound in place of it.
func (s *Session) Retarget(doc document.Document) {
	if s.closed || !Eligible(doc) {
		return
	}
	if s.doc != nil && s.doc.ID() == doc.ID() {
		return
	}
	s.Bind(doc)
}

// Apply folds a completed render into the session. Results from superseded
// submissions are discarded and their image released. Reports whether the
// session state changed.
func (s *Session) Apply(res Result) bool {
	if s.closed || res.Gen != s.pipeline.Generation() {
		if res.Img != nil {
			if err := res.Img.Release(); err != nil {
				s.log.Warn("release superseded image", "err", err)
			}
		}
		s.log.Debug("discarded superseded render", "gen", res.Gen)
		return false
	}
	if res.Err != nil {
		// A renderer may hand back a partial image with its error; only
		// the error is kept.
		if res.Img != nil {
			if err := res.Img.Release(); err != nil {
				s.log.Warn("release failed render image", "err", err)
			}
		}
		// Keep the stale image visible; a transient parse error
		// should not blank the view.
		s.errText = res.Err.Error()
		return true
	}
	if s.img != nil {
		if err := s.img.Release(); err != nil {
			s.log.Warn("release replaced image", "err", err)
		}
	}
	s.img = res.Img
	s.errText = ""
	return true
}

// StartDrag begins a pan gesture at the given pointer position.
func (s *Session) StartDrag(pos Point) {
	s.dragging = true
	s.dragAnchor = pos
	s.dragBase = s.pan
}

// Drag updates the pan offset for a pointer move. origin is the preview
// pane's top-left corner. A move outside an active gesture is ignored.
func (s *Session) Drag(pos, origin Point) {
	if !s.dragging {
		return
	}
	s.pan = s.dragBase.Add(pos).Sub(origin).Sub(s.dragAnchor)
}

// EndDrag finishes the pan gesture.
func (s *Session) EndDrag() {
	s.dragging = false
}

// Wheel folds one wheel tick into the scale factor, clamped to
// [MinScale, MaxScale]. Reports whether the scale changed, in which case a
// render has been submitted. A zero delta is a no-op.
func (s *Session) Wheel(delta float32) bool {
	if delta == 0 {
		return false
	}
	next := clamp(s.scale+delta, MinScale, MaxScale)
	if next == s.scale {
		return false
	}
	s.scale = next
	s.submit()
	return true
}

// ResetView restores the neutral transform: zero pan and unit scale.
// A scale change resubmits the render.
func (s *Session) ResetView() {
	s.pan = Point{}
	if s.scale != 1.0 {
		s.scale = 1.0
		s.submit()
	}
}

// Close releases the subscription and image and supersedes any in-flight
// render. Further results for this session are discarded by Apply.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.sub.Release()
	s.sub = nil
	s.doc = nil
	if s.img != nil {
		if err := s.img.Release(); err != nil {
			s.log.Warn("release image on close", "err", err)
		}
		s.img = nil
	}
	s.pipeline.Close()
}

func (s *Session) submit() {
	if s.closed || s.doc == nil {
		return
	}
	s.pipeline.Submit([]byte(s.doc.Text()), s.scale)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
