// Package pyenv manages ephemeral interpreter environments.
//
// An Env owns a root directory whose site-packages subdirectory acts as a
// private module search path. Packages are installed into it with the
// interpreter's package installer, and source text is run with the search
// path pointed at it. Output from both steps is delivered line by line to the
// Env's sinks. Closing a non-persistent Env removes the root directory.
//
// Two Envs must not share a root at the same time; nothing here locks the
// directory.
package pyenv

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/thruflo/pyenv/internal/config"
	"github.com/thruflo/pyenv/internal/deps"
	"github.com/thruflo/pyenv/internal/linestream"
	"github.com/thruflo/pyenv/internal/logging"
	"github.com/thruflo/pyenv/internal/process"
	"github.com/thruflo/pyenv/internal/state"
)

// PackageDirName is the name of the package directory under the root.
const PackageDirName = "site-packages"

// Env is one isolated environment.
type Env struct {
	root       string
	packageDir string

	out  linestream.Sink
	err  linestream.Sink
	info linestream.Sink

	interpreter   string
	installerArgs []string
	mode          deps.Mode
	ignore        map[string]bool
	prompter      deps.Prompter
	runner        process.Runner
	extraEnv      map[string]string
	stdin         io.Reader
	timeout       time.Duration
	logger        *logging.Logger
	store         *state.Store

	mu         sync.Mutex
	persistent bool
	closed     bool
	closeOnce  sync.Once
}

// Option configures an Env.
type Option func(*Env)

// WithInterpreter sets the interpreter executable. The default is
// config.DefaultInterpreter().
func WithInterpreter(path string) Option {
	return func(e *Env) { e.interpreter = path }
}

// WithInstallerArgs appends extra arguments to every install command.
func WithInstallerArgs(args ...string) Option {
	return func(e *Env) { e.installerArgs = append(e.installerArgs, args...) }
}

// WithDepsMode selects how Execute handles missing imports.
func WithDepsMode(mode deps.Mode) Option {
	return func(e *Env) { e.mode = mode }
}

// WithIgnore sets module names that are never reported as missing. It
// replaces the default set, deps.StdlibModules.
func WithIgnore(ignore map[string]bool) Option {
	return func(e *Env) { e.ignore = ignore }
}

// WithPrompter replaces the terminal prompter used in deps.ModePrompt.
func WithPrompter(p deps.Prompter) Option {
	return func(e *Env) { e.prompter = p }
}

// WithRunner replaces the process runner.
func WithRunner(r process.Runner) Option {
	return func(e *Env) { e.runner = r }
}

// WithEnv sets extra environment variables for executed scripts. They
// override values from the root's .env file.
func WithEnv(env map[string]string) Option {
	return func(e *Env) {
		if e.extraEnv == nil {
			e.extraEnv = make(map[string]string, len(env))
		}
		for k, v := range env {
			e.extraEnv[k] = v
		}
	}
}

// WithStdin connects executed scripts to r. By default scripts get no input.
func WithStdin(r io.Reader) Option {
	return func(e *Env) { e.stdin = r }
}

// WithTimeout bounds each install and execute call. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Env) { e.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Env) { e.logger = l }
}

// WithInfoSink sets where dependency warnings and prompts are written.
// Defaults to the error sink.
func WithInfoSink(s linestream.Sink) Option {
	return func(e *Env) { e.info = s }
}

// WithPersistent sets the initial persistence flag.
func WithPersistent(persistent bool) Option {
	return func(e *Env) { e.persistent = persistent }
}

// New binds an environment to the root path with explicit output sinks.
// A nil sink writes to the corresponding inherited stream. The root is
// created lazily and, by default, survives Close.
func New(path string, out, errSink linestream.Sink, opts ...Option) (*Env, error) {
	root, err := resolveRoot(path)
	if err != nil {
		return nil, err
	}

	if out == nil {
		out = linestream.NewWriterSink(os.Stdout)
	}
	if errSink == nil {
		errSink = linestream.NewWriterSink(os.Stderr)
	}

	e := &Env{
		root:        root,
		packageDir:  filepath.Join(root, PackageDirName),
		out:         out,
		err:         errSink,
		interpreter: config.DefaultInterpreter(),
		mode:        deps.ModePrompt,
		ignore:      deps.IgnoreSet(deps.StdlibModules),
		runner:      process.NewExecRunner(),
		store:       state.NewStore(root),
		persistent:  true,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.info == nil {
		e.info = e.err
	}
	if e.prompter == nil {
		e.prompter = deps.NewTerminalPrompter(os.Stdin, e.info)
	}
	if e.logger == nil {
		e.logger = logging.Default()
	}
	e.logger = e.logger.With("root", e.root)

	return e, nil
}

// At creates an environment whose sinks print to the inherited stdout and
// stderr.
func At(path string, opts ...Option) (*Env, error) {
	return New(path, nil, nil, opts...)
}

// NewTemp creates a non-persistent environment in a fresh directory named
// pyenv-<uuid> under baseDir (os.TempDir() if empty). WithPersistent in opts
// overrides the default.
func NewTemp(baseDir string, out, errSink linestream.Sink, opts ...Option) (*Env, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	path := filepath.Join(baseDir, "pyenv-"+uuid.NewString())
	return New(path, out, errSink, append([]Option{WithPersistent(false)}, opts...)...)
}

// resolveRoot validates path and makes it absolute so it stays correct as a
// --target argument regardless of the child's working directory.
func resolveRoot(path string) (string, error) {
	switch {
	case path == "":
		return "", &PathError{Path: path, Reason: "path is empty"}
	case strings.IndexByte(path, 0) >= 0:
		return "", &PathError{Path: path, Reason: "path contains a NUL byte"}
	case !utf8.ValidString(path):
		return "", &PathError{Path: path, Reason: "path is not valid UTF-8"}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &PathError{Path: path, Reason: "cannot make path absolute", Err: err}
	}
	return abs, nil
}

// Root returns the absolute root directory.
func (e *Env) Root() string {
	return e.root
}

// PackageDir returns the directory packages are installed into.
func (e *Env) PackageDir() string {
	return e.packageDir
}

// SetPersistent sets whether Close keeps the root directory. Only the value
// at Close time matters.
func (e *Env) SetPersistent(persistent bool) *Env {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.persistent = persistent
	return e
}

// Persistent reports the current persistence flag.
func (e *Env) Persistent() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.persistent
}

// Manifest returns the recorded install and run history.
func (e *Env) Manifest() (*state.Manifest, error) {
	return e.store.Load()
}

// Packages lists the top-level package directories installed in the
// environment, sorted by name. Installer metadata directories are skipped.
func (e *Env) Packages() ([]string, error) {
	entries, err := os.ReadDir(e.packageDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &IoError{Op: "list packages", Err: err}
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || isMetadataDir(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func isMetadataDir(name string) bool {
	return strings.HasSuffix(name, ".dist-info") ||
		strings.HasSuffix(name, ".egg-info") ||
		strings.HasPrefix(name, "__") ||
		name == "bin"
}

// Close disposes of the environment exactly once. A non-persistent root is
// removed; failure to remove it is reported to the error sink and logged,
// never returned. Close always returns nil.
func (e *Env) Close() error {
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		persistent := e.persistent
		e.mu.Unlock()

		if persistent {
			return
		}
		if err := e.removeRoot(); err != nil {
			e.err.Line(fmt.Sprintf("Error deleting environment at %s, cause: %v", e.root, err))
			e.logger.Error("failed to remove environment", "err", err)
			return
		}
		e.logger.Debug("removed environment")
	})
	return nil
}

func (e *Env) removeRoot() error {
	if filepath.Dir(e.root) == e.root {
		return fmt.Errorf("refusing to remove filesystem root")
	}
	return os.RemoveAll(e.root)
}

func (e *Env) checkOpen() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return nil
}

// ensureDirs creates the root and package directory on first use.
func (e *Env) ensureDirs() error {
	if err := os.MkdirAll(e.packageDir, 0o755); err != nil {
		return &IoError{Op: "create package directory", Err: err}
	}
	return nil
}
