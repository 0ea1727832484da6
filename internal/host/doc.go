// Package host defines the collaborators the composition engine consumes
// but does not own: the machine a configuration targets, the interpreter
// build under test, and a diagnostic message sink.
//
// Only the boundary is specified here. Process execution, remote transport
// and build discovery live with the orchestrator; this package ships the
// minimal local implementations the CLI needs.
package host
