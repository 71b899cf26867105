package pagelens

import (
	"sync"
	"time"
)

// CopiedDuration is how long the copy confirmation stays visible.
const CopiedDuration = 2 * time.Second

// Copy button labels.
const (
	CopyLabel   = "Copy Analysis"
	CopiedLabel = "Copied!"
)

// Clipboard receives text copied by the user.
type Clipboard interface {
	WriteText(text string) error
}

// Copier copies an analysis to a Clipboard as Markdown and reports a
// confirmation for CopiedDuration afterwards.
type Copier struct {
	Clipboard Clipboard

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu       sync.Mutex
	copiedAt time.Time
}

// NewCopier returns a Copier writing to cb.
func NewCopier(cb Clipboard) *Copier {
	return &Copier{Clipboard: cb, Now: time.Now}
}

// Copy serializes r to Markdown and writes it to the clipboard.
// The confirmation is only shown after a successful write.
func (c *Copier) Copy(r *AnalysisResult) error {
	if err := c.Clipboard.WriteText(ToMarkdown(r)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.copiedAt = c.now()
	return nil
}

// Copied reports whether a copy happened within the last CopiedDuration.
func (c *Copier) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.copiedAt.IsZero() && c.now().Sub(c.copiedAt) < CopiedDuration
}

// Label returns the copy button label for the current state.
func (c *Copier) Label() string {
	if c.Copied() {
		return CopiedLabel
	}
	return CopyLabel
}

func (c *Copier) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
