package mock

import "github.com/fwojciec/pagelens"

var _ pagelens.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of pagelens.Clipboard.
type Clipboard struct {
	WriteTextFn func(text string) error
}

func (c *Clipboard) WriteText(text string) error {
	return c.WriteTextFn(text)
}
