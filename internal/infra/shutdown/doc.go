// Package shutdown ties process termination signals to a context.
//
// The first SIGINT or SIGTERM cancels the context so in-flight requests
// and downloads stop; a second one forces the process out.
//
//	ctx, stop := shutdown.NewHandler().Context(context.Background())
//	defer stop()
package shutdown
