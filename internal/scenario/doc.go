// Package scenario composes the facets of a test execution environment.
//
// A Capability is one orthogonal facet: how the interpreter is driven
// (sapi), where test files live (filesystem), how sockets are carried,
// which code cache is active, what path style is exercised, and optional
// integrations. A Set holds at most one Capability per Category.
//
// # Lifecycle
//
// The orchestrator builds or parses a Set, calls CompleteWithDefaults,
// checks it against the target host, and publishes it:
//
//	set, err := scenario.LoadSetFile("sets/opcache.yaml")
//	if err != nil {
//	    return err
//	}
//	cfg, err := scenario.Compose(env, set, nil, scenario.UUIDv7Generator{})
//	if err != nil {
//	    return err
//	}
//	handles, err := cfg.Set.Setup(ctx, env, scenario.LayerFunctionalCore)
//	defer scenario.Release(handles)
//
// Compose never runs setup. Setup acquires external resources (ports,
// directories) and every handle it returns must be released, including on
// failure paths.
//
// # Kinds
//
// Capabilities are a closed set. Each has a Kind, the tag used when the
// capability is serialized, and New resolves a tag back to a fresh value.
// An unknown tag is always an error.
//
// # Serialization
//
// Sets are stored as XML tagged records (see package codec) or as YAML:
//
//	scenarios:
//	  - kind: BuiltinWebServer
//	  - kind: Opcache
//	    fields:
//	      memory_consumption: "256"
//
// YAML documents are checked against a CUE schema before decoding.
package scenario
