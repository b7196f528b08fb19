// Package build drives a single external compiler invocation and ingests
// the save-analysis artifacts it leaves behind. The Builder spawns the
// configured build command with machine-readable diagnostics requested,
// captures its output verbatim and, when analysis is enabled, loads
// whatever artifacts the compiler wrote under the output root.
package build

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"cargolens/internal/analysis"
)

// rustflagsEnv carries the compiler flags into every rustc the build
// command transitively invokes.
const rustflagsEnv = "RUSTFLAGS"

const (
	// diagnosticFlags request the fixed machine-readable diagnostic
	// format. Always set.
	diagnosticFlags = "-Zunstable-options --error-format json"
	// saveAnalysisFlag additionally requests analysis artifacts on disk.
	// Set only when analysis is enabled.
	saveAnalysisFlag = " -Zsave-analysis"
)

// Config is the immutable configuration a Builder is constructed with.
type Config struct {
	// BuildCommand is the program plus arguments, whitespace-separated.
	BuildCommand string
	// SaveAnalysis toggles artifact emission and loading.
	SaveAnalysis bool
	// OutputRoot anchors the candidate artifact directories. Empty means
	// the working directory at build time.
	OutputRoot string
	// Jobs bounds artifact decode parallelism; below 2 means sequential.
	Jobs int
	// CacheDir, when non-empty, enables the decoded-artifact disk cache.
	CacheDir string
}

// Builder runs builds for one immutable Config. It keeps no state across
// calls: every Build invocation is independent.
type Builder struct {
	cfg  Config
	sink ProgressSink
}

// BuildResult is the outcome of one build: captured process output plus
// however many artifacts decoded cleanly. Status is nil when the process
// was terminated abnormally. Immutable once returned.
type BuildResult struct {
	Status   *int
	Stdout   string
	Stderr   string
	Analysis []analysis.Analysis
	// Skipped lists artifact files dropped with a diagnostic.
	Skipped []analysis.Diagnostic
}

// NewBuilder creates a Builder. A nil sink discards progress events.
func NewBuilder(cfg Config, sink ProgressSink) *Builder {
	if sink == nil {
		sink = nopSink{}
	}
	return &Builder{cfg: cfg, sink: sink}
}

// Build runs the configured build command to completion, captures its
// exit status and output, and loads analysis artifacts if enabled. The
// call blocks until the process exits and every discoverable artifact
// has been read. No retries; a non-zero exit is reported as-is.
func (b *Builder) Build(ctx context.Context) (BuildResult, error) {
	var result BuildResult

	argv := strings.Fields(b.cfg.BuildCommand)
	if len(argv) == 0 {
		return result, ErrNoCommand
	}

	flags := diagnosticFlags
	if b.cfg.SaveAnalysis {
		flags += saveAnalysisFlag
	}

	// Full argument list passes through; the command string carries no
	// quoting, so whitespace splitting is the whole grammar.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), rustflagsEnv+"="+flags)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	emit(b.sink, StageBuild, StatusWorking, nil)
	status, err := runAndWait(cmd)
	if err != nil {
		spawnErr := &SpawnError{Command: b.cfg.BuildCommand, Err: err}
		emit(b.sink, StageBuild, StatusError, spawnErr)
		return result, spawnErr
	}
	emit(b.sink, StageBuild, StatusDone, nil)

	if !utf8.Valid(stdout.Bytes()) {
		return result, &NonTextOutputError{Stream: "stdout"}
	}
	if !utf8.Valid(stderr.Bytes()) {
		return result, &NonTextOutputError{Stream: "stderr"}
	}

	result.Status = status
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	result.Analysis, result.Skipped = b.readAnalysis(ctx)
	return result, nil
}

// runAndWait executes cmd synchronously. It returns the exit code (nil
// when the process was killed by a signal) or the spawn failure.
func runAndWait(cmd *exec.Cmd) (*int, error) {
	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		code := 0
		return &code, nil
	case errors.As(err, &exitErr):
		// Process started; a non-zero exit is the caller's to judge.
		code := exitErr.ExitCode()
		if code < 0 {
			return nil, nil
		}
		return &code, nil
	default:
		return nil, err
	}
}

func (b *Builder) readAnalysis(ctx context.Context) ([]analysis.Analysis, []analysis.Diagnostic) {
	if !b.cfg.SaveAnalysis {
		return nil, nil
	}

	root := b.cfg.OutputRoot
	if root == "" {
		root = "."
	}

	loader := analysis.Loader{Jobs: b.cfg.Jobs}
	if b.cfg.CacheDir != "" {
		// Cache open failures degrade to uncached loading.
		if cache, err := analysis.OpenDiskCache(b.cfg.CacheDir); err == nil {
			loader.Cache = cache
		}
	}

	emit(b.sink, StageAnalysis, StatusWorking, nil)
	records, bag := loader.Load(ctx, analysis.Locate(root))
	emit(b.sink, StageAnalysis, StatusDone, nil)
	return records, bag.Items()
}
