// Package config carries the runtime options parsed in main.
package config

import (
	"fmt"

	"github.com/svglens/svglens/internal/preview"
)

// Options are the command line options for a svglens run.
type Options struct {
	// Paths are the documents opened as editor tabs, in order.
	Paths []string
	// Follow opens a following preview for the first eligible document
	// at startup.
	Follow bool
	// Scale is the initial zoom factor for new previews.
	Scale float64
	// LogFile receives structured logs; empty disables logging.
	LogFile string
	// Fit starts the preview pane in fit-to-pane display mode.
	Fit bool
}

// Validate checks option ranges before anything is wired up.
func (o Options) Validate() error {
	if o.Scale < preview.MinScale || o.Scale > preview.MaxScale {
		return fmt.Errorf("scale %.2f out of range [%.2f, %.2f]", o.Scale, preview.MinScale, preview.MaxScale)
	}
	if len(o.Paths) == 0 {
		return fmt.Errorf("no documents given")
	}
	return nil
}
