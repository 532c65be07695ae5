package testutil

// SampleHelloWorld prints one line to stdout and nothing to stderr.
const SampleHelloWorld = "print('hello world')"

// SampleImports imports one standard library module and two third-party ones.
const SampleImports = `import os
import faker; print(faker.Faker().name())
from requests import get
`

// SampleStderr writes to both channels and exits non-zero.
const SampleStderr = `import sys
print('to stdout')
print('to stderr', file=sys.stderr)
sys.exit(3)
`

// SampleSource is a script with the imports a scan should report for it.
type SampleSource struct {
	Source  string
	Imports []string
}

// SampleSources returns named scripts with their expected scan results.
// Returns a new map each time to prevent test interference.
func SampleSources() map[string]SampleSource {
	return map[string]SampleSource{
		"hello":   {Source: SampleHelloWorld},
		"imports": {Source: SampleImports, Imports: []string{"os", "faker", "requests"}},
		"stderr":  {Source: SampleStderr, Imports: []string{"sys"}},
		"dotted":  {Source: "import xml.etree.ElementTree as ET\nfrom numpy.linalg import norm", Imports: []string{"xml", "numpy"}},
	}
}
