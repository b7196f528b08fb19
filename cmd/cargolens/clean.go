package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cargolens/internal/config"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove the cargolens artifact cache",
	Long:  "Remove the decoded-artifact cache under the project's target directory. The compiler's own outputs are left alone.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func runClean(_ *cobra.Command, args []string) error {
	baseDir := "."
	if len(args) > 0 && args[0] != "" {
		baseDir = args[0]
	}
	baseDir, err := resolveCleanBase(baseDir)
	if err != nil {
		return err
	}
	cacheDir := filepath.Join(baseDir, "target", cacheDirName)
	info, err := os.Stat(cacheDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintf(os.Stdout, "artifact cache not found\n")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", cacheDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", cacheDir)
	}
	if err := os.RemoveAll(cacheDir); err != nil {
		return fmt.Errorf("failed to remove %q: %w", cacheDir, err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", cacheDir)
	return nil
}

func resolveCleanBase(base string) (string, error) {
	info, err := os.Stat(base)
	if err != nil {
		return "", fmt.Errorf("failed to stat %q: %w", base, err)
	}
	if !info.IsDir() {
		base = filepath.Dir(base)
	}
	manifest, ok, err := config.LoadManifest(base)
	if err != nil {
		return "", err
	}
	if ok {
		return manifest.Root, nil
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return base, nil
	}
	return abs, nil
}
