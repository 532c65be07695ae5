// Package testutil provides shared test utilities for pyenv.
//
// # Fixtures
//
// The fixtures.go file provides sample script sources:
//
//   - SampleHelloWorld, SampleImports, SampleStderr - string constants
//   - SampleSources() - a map of named sources with their expected imports
//
// # Environment Helpers
//
// The env.go file provides test environment setup:
//
//   - RequirePython(t) - returns an interpreter path, skips if unavailable
//   - RequirePip(t, python) - skips unless the interpreter has pip
//   - FakeSitePackages(t, names...) - creates a package dir with fake packages
//   - WriteTestFile(t, base, path, content) - writes a file in test dir
//
// # Assertions
//
// The assertions.go file provides custom test assertions:
//
//   - AssertLines(t, expected, c) - compares collected sink lines
//   - AssertNoLines(t, c) - checks a collector saw nothing
//   - AssertDirExists(t, path), AssertDirGone(t, path) - root lifecycle checks
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    python := testutil.RequirePython(t)
//	    ctx, cancel := testutil.ContextWithTestDeadline(t, time.Minute)
//	    defer cancel()
//	    // ... run test ...
//	}
package testutil
