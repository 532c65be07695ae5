package state

import "time"

// ManifestVersion is written into every manifest so older files can be
// detected if the format changes.
const ManifestVersion = 1

// Manifest records what has been done to an environment. It lives in
// <root>/.pyenv/manifest.json and is removed together with the root.
type Manifest struct {
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	Installs  []InstallRecord `json:"installs,omitempty"`
	Runs      []RunRecord     `json:"runs,omitempty"`
}

// InstallRecord is one installer invocation.
type InstallRecord struct {
	Packages []string  `json:"packages"`
	At       time.Time `json:"at"`
	Success  bool      `json:"success"`
	ExitCode int       `json:"exit_code"`
}

// RunRecord is one script execution.
type RunRecord struct {
	At       time.Time `json:"at"`
	Success  bool      `json:"success"`
	ExitCode int       `json:"exit_code"`
	// Missing lists modules that were still absent when the script started.
	Missing []string `json:"missing,omitempty"`
}

// InstalledPackages returns the package specifiers of successful installs, in
// the order they were first installed.
func (m *Manifest) InstalledPackages() []string {
	var out []string
	seen := make(map[string]bool)
	for _, rec := range m.Installs {
		if !rec.Success {
			continue
		}
		for _, p := range rec.Packages {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
