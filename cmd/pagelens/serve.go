package main

import (
	plgin "github.com/fwojciec/pagelens/gin"
	"github.com/fwojciec/pagelens/session"
)

// Run executes the serve command. It blocks until the context is done.
func (c *ServeCmd) Run(deps *Dependencies) error {
	sess := session.New(deps.Extractor, deps.Analyzer)
	sess.Logger = deps.Logger

	return plgin.NewServer(sess, plgin.WithLogger(deps.Logger)).ListenAndServe(deps.Ctx, c.Addr)
}
