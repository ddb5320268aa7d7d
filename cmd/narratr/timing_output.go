package main

import (
	"io"
	"time"

	"narratr/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings, elapsed time.Duration) {
	for _, stage := range []buildpipeline.Stage{buildpipeline.StageParse, buildpipeline.StageGenerate, buildpipeline.StageWrite} {
		if timings.Has(stage) {
			printf(out, "%-9s %8.2f ms\n", stage, toMillis(timings.Duration(stage)))
		}
	}
	printf(out, "%-9s %8.2f ms\n", "wall", toMillis(elapsed))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
