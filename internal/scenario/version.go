package scenario

import (
	"log/slog"

	"github.com/Masterminds/semver/v3"

	"github.com/roach88/envcompose/internal/host"
)

// Interpreter version ranges of version-bound capabilities. The -0 suffix
// admits pre-release builds.
var (
	opcacheVersions  = mustConstraint(">= 5.5.0-0")
	wincacheVersions = mustConstraint("< 8.0.0-0")
)

func mustConstraint(c string) *semver.Constraints {
	constraints, err := semver.NewConstraint(c)
	if err != nil {
		panic("scenario: invalid version constraint " + c + ": " + err.Error())
	}
	return constraints
}

// buildSatisfies reports whether b's version satisfies c. Builds without a
// known or parseable version satisfy every constraint.
func buildSatisfies(b host.Build, c *semver.Constraints) bool {
	vb, ok := b.(host.VersionedBuild)
	if !ok || vb.Version() == "" {
		return true
	}
	v, err := semver.NewVersion(vb.Version())
	if err != nil {
		slog.Debug("ignoring unparseable build version", "version", vb.Version(), "error", err)
		return true
	}
	return c.Check(v)
}
