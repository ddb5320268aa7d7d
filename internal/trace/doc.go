// Package trace records what the compiler is doing as a stream of span events.
//
// Tracing is enabled from the command line:
//
//	narratr build --trace=- --trace-level=phase cave.ntr
//
// A Tracer travels through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePhase, "parse")
//	defer span.End("")
//
// Levels filter by scope: phase shows the driver and the compiler phases,
// detail adds one span per source unit, debug shows everything.
package trace
