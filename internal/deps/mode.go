package deps

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects what an environment does when a script imports modules that
// are not installed.
type Mode string

// Dependency modes.
const (
	// ModePrompt lists the missing modules and asks for packages to install.
	// Without an interactive input it behaves like ModeWarn.
	ModePrompt Mode = "prompt"
	// ModeInstall installs the missing module names without asking.
	ModeInstall Mode = "install"
	// ModeFail refuses to run the script and returns a *MissingError.
	ModeFail Mode = "fail"
	// ModeWarn lists the missing modules and runs the script anyway.
	ModeWarn Mode = "warn"
	// ModeIgnore skips the dependency check entirely.
	ModeIgnore Mode = "ignore"
)

// Modes lists every valid Mode.
var Modes = []Mode{ModePrompt, ModeInstall, ModeFail, ModeWarn, ModeIgnore}

// ParseMode converts a config or flag value to a Mode.
// An empty string selects ModePrompt.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModePrompt, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown dependency mode %q (want one of %s)", s, modeList())
}

func modeList() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// MissingError is returned in ModeFail when the script imports modules that
// are not installed.
type MissingError struct {
	Modules []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("dependencies not installed: %s", strings.Join(e.Modules, ", "))
}

// IsMissingError checks if an error is a MissingError.
func IsMissingError(err error) bool {
	var me *MissingError
	return errors.As(err, &me)
}
