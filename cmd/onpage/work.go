package main

import (
	"fmt"

	"github.com/hricks/onpage/batch"
)

// Run executes the work command. It polls the queue until the context is
// canceled, typically by Ctrl+C.
func (c *WorkCmd) Run(deps *Dependencies) error {
	worker := &batch.Worker{
		Jobs:     deps.Jobs,
		Runner:   deps.Runner,
		Interval: c.Interval,
		Logger:   deps.Logger,
	}

	fmt.Fprintln(deps.Stdout, "Worker started. Press Ctrl+C to stop.")

	return worker.Run(deps.Ctx)
}
