package main

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/bevec/v1/metrics"
	"github.com/Aleph-Alpha/bevec/v1/tracer"
)

// session holds what a command run sets up next to the client and has to
// tear down after it.
type session struct {
	tracer  *tracer.Tracer
	metrics *metrics.Metrics
}

type sessionKey struct{}

func withSession(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionKey{}, &session{})
}

// sessionFrom never returns nil, so code running outside withSessions still
// works.
func sessionFrom(ctx context.Context) *session {
	if ctx != nil {
		if s, ok := ctx.Value(sessionKey{}).(*session); ok {
			return s
		}
	}
	return &session{}
}

// finish flushes pending spans and, with stats set, writes the operation
// counts to w.
func (s *session) finish(ctx context.Context, w io.Writer, stats bool) error {
	var err error
	if stats && s.metrics != nil {
		err = s.metrics.WriteSummary(w)
	}
	return errors.Join(err, s.tracer.Shutdown(ctx))
}

// withSessions gives every runnable command below cmd its own session and
// finishes it however the command ends. Cobra skips post-run hooks after a
// failed RunE, so the teardown wraps RunE itself.
func withSessions(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		withSessions(sub)
	}
	if cmd.RunE == nil {
		return
	}
	run := cmd.RunE
	cmd.RunE = func(c *cobra.Command, args []string) (err error) {
		c.SetContext(withSession(c.Context()))
		defer func() {
			stats, _ := c.Flags().GetBool("stats")
			// the command's own context may already be canceled
			if ferr := sessionFrom(c.Context()).finish(context.WithoutCancel(c.Context()), c.ErrOrStderr(), stats); ferr != nil {
				err = errors.Join(err, ferr)
			}
		}()
		return run(c, args)
	}
}
