// Package setup runs the pre-flight sequence for the market-basket
// analysis exercise: interpreter version check, package ensure via pip,
// output directory creation, dataset presence check, requirements
// manifest write, and an import smoke-test, finishing with a printed
// summary. Every step is isolated: failures are recorded and reported
// at the end, nothing aborts the remaining steps.
//
// Two surfaces exist. Run performs the full side-effecting sequence.
// Diagnose performs read-only checks (no pip, no mkdir, no manifest)
// for the check subcommand.
package setup
