package main

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/fwojciec/pagelens"
)

var _ pagelens.Clipboard = (*OSC52Clipboard)(nil)

// OSC52Clipboard sets the terminal clipboard with an OSC 52 escape
// sequence. Most terminal emulators honor it, including over SSH.
type OSC52Clipboard struct {
	w io.Writer
}

// NewOSC52Clipboard returns a clipboard writing escape sequences to w,
// which should be attached to the terminal.
func NewOSC52Clipboard(w io.Writer) *OSC52Clipboard {
	return &OSC52Clipboard{w: w}
}

// WriteText replaces the clipboard contents with text.
func (c *OSC52Clipboard) WriteText(text string) error {
	_, err := fmt.Fprintf(c.w, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
	return err
}
