package ui

import (
	"image"
	"log/slog"
	"testing"
	"time"

	"github.com/svglens/svglens/internal/document"
	"github.com/svglens/svglens/internal/preview"
	"github.com/svglens/svglens/internal/raster"
	"github.com/svglens/svglens/internal/workspace"
)

// fixedRenderer always returns the same image handle, so the test can
// observe its release.
type fixedRenderer struct {
	img *raster.Image
}

func (r fixedRenderer) Render(src []byte, scale float32) (*raster.Image, error) {
	return r.img, nil
}

func TestWaitForRenderCleansUpClosedSession(t *testing.T) {
	img := raster.NewImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	buf := document.NewBuffer("icon.svg", "<svg/>")
	sess := preview.NewSession(preview.ModeDefault, buf,
		preview.NewPipeline(fixedRenderer{img: img}, nil), 1.0, nil)
	item := &workspace.Preview{Session: sess}

	// Let the initial render queue, then close before pumping it.
	deadline := time.Now().Add(2 * time.Second)
	for len(sess.Results()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the render")
		}
		time.Sleep(time.Millisecond)
	}
	sess.Close()

	// Pump like Update does until the session winds down. The queued
	// result must be released along the way, never applied.
	log := slog.New(slog.DiscardHandler)
	for i := 0; i < 10; i++ {
		msg := waitForRender(item, log)()
		if msg == nil {
			break
		}
		rm, ok := msg.(renderMsg)
		if !ok {
			t.Fatalf("pump returned %T, want renderMsg", msg)
		}
		if rm.item.Session.Apply(rm.res) {
			t.Fatal("closed session applied a result")
		}
	}
	if img.RGBA() != nil {
		t.Fatal("queued image not released after close")
	}
}
