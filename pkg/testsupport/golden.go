package testsupport

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is where AssertGolden looks for fixtures, relative to the package
// under test.
const GoldenDir = "testdata/golden"

// AssertGolden compares data with testdata/golden/<name>.golden. Run the test
// with -update to rewrite the fixture.
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
