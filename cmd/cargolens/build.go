package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cargolens/internal/build"
	"cargolens/internal/config"
)

const noManifestMessage = "no cargolens.toml found\nrun `cargolens init` in the project root, or pass the project path explicitly, e.g.:\n  cargolens build path/to/project"

// cacheDirName lives under target/ so `cargo clean` sweeps it too.
const cacheDirName = ".cargolens-cache"

var (
	statusColor = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed, color.Bold)
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Run the configured build and ingest analysis artifacts",
	Long:  "Run the build command from cargolens.toml, capture compiler diagnostics, and decode save-analysis artifacts into the analysis model.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

var buildJobs int

func init() {
	buildCmd.Flags().IntVar(&buildJobs, "jobs", 0, "artifact decode parallelism (0 = use manifest setting)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	configureColor(cmd)
	quiet := quietMode(cmd)

	startDir := "."
	if len(args) > 0 && args[0] != "" {
		startDir = args[0]
	}

	manifest, ok, err := config.LoadManifest(startDir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s", noManifestMessage)
	}

	jobs := manifest.Config.Build.Jobs
	if buildJobs > 0 {
		jobs = buildJobs
	}

	cfg := build.Config{
		BuildCommand: manifest.Config.Build.Command,
		SaveAnalysis: manifest.Config.Build.SaveAnalysis,
		OutputRoot:   manifest.Root,
		Jobs:         jobs,
	}
	if manifest.Config.Build.Cache {
		cfg.CacheDir = filepath.Join(manifest.Root, "target", cacheDirName)
	}

	var sink build.ProgressSink
	if !quiet {
		sink = stderrSink{}
	}

	result, err := build.NewBuilder(cfg, sink).Build(cmd.Context())
	if err != nil {
		return err
	}

	// Captured streams pass through verbatim; the summary goes to stderr
	// so downstream tools can still consume stdout.
	if _, err := fmt.Fprint(os.Stdout, result.Stdout); err != nil {
		return err
	}
	if _, err := fmt.Fprint(os.Stderr, result.Stderr); err != nil {
		return err
	}

	for _, d := range result.Skipped {
		warnColor.Fprintf(os.Stderr, "warning: skipped artifact %s: %v\n", d.File, d.Err)
	}
	if !quiet {
		renderSummary(result)
	}

	if result.Status == nil {
		return fmt.Errorf("build terminated abnormally")
	}
	if *result.Status != 0 {
		return fmt.Errorf("build exited with status %d", *result.Status)
	}
	return nil
}

func renderSummary(result build.BuildResult) {
	switch {
	case result.Status == nil:
		errorColor.Fprintln(os.Stderr, "build terminated abnormally")
	case *result.Status == 0:
		statusColor.Fprintf(os.Stderr, "build finished: %d analysis artifact(s), %d skipped\n",
			len(result.Analysis), len(result.Skipped))
	default:
		errorColor.Fprintf(os.Stderr, "build failed with status %d\n", *result.Status)
	}
}

// stderrSink prints stage transitions, standing in for the editor
// backend that would normally consume progress events.
type stderrSink struct{}

func (stderrSink) OnEvent(evt build.Event) {
	switch {
	case evt.Status == build.StatusWorking && evt.Stage == build.StageBuild:
		fmt.Fprintln(os.Stderr, "building...")
	case evt.Status == build.StatusWorking && evt.Stage == build.StageAnalysis:
		fmt.Fprintln(os.Stderr, "reading analysis...")
	case evt.Status == build.StatusError:
		errorColor.Fprintf(os.Stderr, "%s failed: %v\n", evt.Stage, evt.Err)
	}
}
