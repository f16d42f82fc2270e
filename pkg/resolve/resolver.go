package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pydepviz/pydepviz/pkg/errors"
)

// DefaultTimeout bounds the pipdeptree subprocess. Expiry is treated as a
// resolution failure and falls back to bundled data.
const DefaultTimeout = 30 * time.Second

// Source identifies where a dependency mapping came from.
type Source string

// Mapping sources.
const (
	SourceTool     Source = "pipdeptree"
	SourceFallback Source = "fallback"
	SourceStatic   Source = "static"
)

// Outcome is the result of a resolution attempt. Resolution is total:
// Mapping is always usable. Err is non-nil when the mapping was
// substituted from fallback data and records why.
type Outcome struct {
	Mapping map[string][]string
	Source  Source
	Err     error
}

// Resolver produces a dependency mapping for the analyzed environment.
type Resolver interface {
	Resolve(ctx context.Context) Outcome
}

// Pipdeptree resolves dependencies by invoking `python -m pipdeptree --json`.
type Pipdeptree struct {
	// Python is the interpreter used to run the tool. Defaults to "python3".
	Python string

	// Timeout bounds the subprocess. Defaults to [DefaultTimeout].
	Timeout time.Duration

	// Dir is the project directory checked for requirements.txt. When the
	// file is missing, pipreqs is invoked (best effort) to generate it.
	// Empty disables the check.
	Dir string

	fallback Provider
	logger   *log.Logger
}

// NewPipdeptree creates a resolver that falls back to the given provider's
// data when the tool is unavailable.
func NewPipdeptree(fallback Provider, logger *log.Logger) *Pipdeptree {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Pipdeptree{
		Python:   "python3",
		Timeout:  DefaultTimeout,
		fallback: fallback,
		logger:   logger,
	}
}

// pipdeptree --json entry shape.
type treeEntry struct {
	Package struct {
		Key string `json:"key"`
	} `json:"package"`
	Dependencies []struct {
		Key string `json:"key"`
	} `json:"dependencies"`
}

// Resolve runs pipdeptree and converts its JSON output into a
// parent→children mapping. On any failure the bundled fallback mapping is
// returned instead, with the cause recorded in [Outcome.Err].
func (r *Pipdeptree) Resolve(ctx context.Context) Outcome {
	r.ensureRequirements(ctx)

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	python := r.Python
	if python == "" {
		python = "python3"
	}

	var out, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, python, "-m", "pipdeptree", "--json")
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	// Without a wait delay, Wait blocks until the stdout pipe closes; a
	// killed interpreter can leave children holding it open well past the
	// deadline. The delay lets Wait abandon the copy once the context ends.
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return r.fallbackOutcome(errors.Wrap(errors.ErrCodeResolutionFailed, ctx.Err(),
				"pipdeptree timed out after %s", timeout))
		}
		return r.fallbackOutcome(errors.Wrap(errors.ErrCodeResolutionFailed, err,
			"pipdeptree failed: %s", bytes.TrimSpace(errBuf.Bytes())))
	}

	var entries []treeEntry
	if err := json.Unmarshal(out.Bytes(), &entries); err != nil {
		return r.fallbackOutcome(errors.Wrap(errors.ErrCodeResolutionFailed, err,
			"malformed pipdeptree output"))
	}

	mapping := make(map[string][]string, len(entries))
	for _, e := range entries {
		if e.Package.Key == "" {
			continue
		}
		deps := make([]string, 0, len(e.Dependencies))
		for _, d := range e.Dependencies {
			if d.Key != "" {
				deps = append(deps, d.Key)
			}
		}
		mapping[e.Package.Key] = deps
	}

	r.logger.Debug("resolved dependencies", "source", SourceTool, "packages", len(mapping))
	return Outcome{Mapping: mapping, Source: SourceTool}
}

// ensureRequirements generates requirements.txt via pipreqs when the
// project directory lacks one. Failures are logged and ignored; pipdeptree
// reads the environment, not the file, so this is purely informational
// for the operator.
func (r *Pipdeptree) ensureRequirements(ctx context.Context) {
	if r.Dir == "" {
		return
	}
	path := filepath.Join(r.Dir, "requirements.txt")
	if _, err := os.Stat(path); err == nil {
		return
	}

	python := r.Python
	if python == "" {
		python = "python3"
	}
	r.logger.Info("requirements.txt not found, generating with pipreqs", "dir", r.Dir)
	cmd := exec.CommandContext(ctx, python, "-m", "pipreqs", r.Dir, "--force")
	cmd.WaitDelay = time.Second
	if err := cmd.Run(); err != nil {
		r.logger.Warn("pipreqs failed, continuing without requirements.txt", "err", err)
	}
}

func (r *Pipdeptree) fallbackOutcome(cause error) Outcome {
	r.logger.Debug("resolution failed, substituting fallback data", "err", cause)
	return Outcome{
		Mapping: r.fallback.Mapping(),
		Source:  SourceFallback,
		Err:     cause,
	}
}

// Static is a Resolver that returns a fixed mapping. Useful for tests and
// for driving the pipeline from pre-resolved data. A non-nil Err is
// surfaced in the outcome as a recoverable resolution warning.
type Static struct {
	Data map[string][]string
	Err  error
}

// Resolve returns the static mapping.
func (s Static) Resolve(context.Context) Outcome {
	return Outcome{Mapping: s.Data, Source: SourceStatic, Err: s.Err}
}
