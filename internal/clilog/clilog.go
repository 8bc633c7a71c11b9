// Package clilog sets up the structured logger shared by the CLI's
// pipeline stages (SPEC_FULL.md §11). Every log line in a run carries a
// run_id field so concurrent or piped invocations can be told apart in
// aggregated log output; the id is generated once per process and never
// touches the compiled artifact, so it has no influence on the
// deterministic IR text the emitter produces (spec.md Property 6).
package clilog

import (
	"os"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// New builds a logger for one compiler invocation, tagged with a fresh
// run id. Output goes to stderr so stdout stays free for the compiler's
// own output (spec.md §6.1 mirrors the original's separation of
// diagnostics from generated code).
func New() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	runID, err := uuid.NewV4()
	if err != nil {
		// Extremely unlikely (would mean the system RNG is broken); fall
		// back to the nil UUID rather than fail the run over logging.
		runID = uuid.Nil
	}

	return log.WithField("run_id", runID.String())
}

// Stage logs an Info-level message marking the start of a pipeline
// stage (preprocess, lex, parse, analyze, emit), per SPEC_FULL.md §11.
func Stage(log *logrus.Entry, name string) *logrus.Entry {
	entry := log.WithField("stage", name)
	entry.Info("stage started")
	return entry
}
