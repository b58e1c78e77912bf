// Package app wires the documentation extraction pipeline: guard the pinned
// Doxygen install, synthesize a Doxyfile from run options, execute the tool,
// and verify the structured output it was asked to produce.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/godoxygen/internal/doxyfile"
	"github.com/hyperifyio/godoxygen/internal/fsutil"
	"github.com/hyperifyio/godoxygen/internal/install"
	"github.com/hyperifyio/godoxygen/internal/runner"
	"github.com/hyperifyio/godoxygen/internal/verify"
	"github.com/hyperifyio/godoxygen/internal/warnings"
)

type App struct {
	cfg       Config
	installer *install.Installer
	runner    *runner.Runner
	logger    zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *App {
	inst := &install.Installer{
		Dir:       cfg.InstallDir,
		MirrorURL: cfg.MirrorURL,
		Logger:    logger,
	}
	return &App{
		cfg:       cfg,
		installer: inst,
		runner: &runner.Runner{
			Binaries: inst,
			Debug:    cfg.Debug,
			Logger:   logger,
		},
		logger: logger,
	}
}

// Installer exposes the version guard, for callers that only need install
// side effects (version listing, pre-warming).
func (a *App) Installer() *install.Installer { return a.installer }

// Run executes one extraction end to end and returns the documentation
// diagnostics the tool emitted. Diagnostics are data, never an error. The
// returned error is one of the fatal kinds: installation failure, a missing
// native dependency, or an empty structured output directory. The caller
// owns the decision to terminate on those.
func (a *App) Run(ctx context.Context) ([]warnings.Diagnostic, error) {
	if err := a.installer.EnsureVersion(ctx, a.cfg.ToolVersion); err != nil {
		return nil, fmt.Errorf("ensure doxygen %s: %w", a.cfg.ToolVersion, err)
	}

	doxy := doxyfile.Build(doxyfile.Settings{
		SourceDir:      a.cfg.SourceDir,
		XMLOutput:      a.cfg.XMLOutput,
		XMLDir:         a.cfg.XMLDir,
		FileExtensions: a.cfg.FileExtensions,
		ExcludePattern: a.cfg.ExcludePattern,
		Access:         doxyfile.Access(a.cfg.Access),
		Debug:          a.cfg.Debug,
	})
	if err := a.prepareDirectories(); err != nil {
		return nil, err
	}
	if err := doxy.WriteFile(a.cfg.DoxyfilePath); err != nil {
		return nil, fmt.Errorf("write doxyfile: %w", err)
	}
	a.logger.Info().
		Str("doxyfile", a.cfg.DoxyfilePath).
		Str("source", a.cfg.SourceDir).
		Msg("configuration synthesized")

	diags, err := a.runner.Execute(ctx, a.cfg.DoxyfilePath, a.cfg.ToolVersion)
	if err != nil {
		return nil, err
	}

	if a.cfg.XMLOutput {
		if err := verify.StructuredOutput(a.cfg.XMLDir, a.cfg.Debug, a.logger); err != nil {
			return diags, err
		}
		a.logger.Info().Str("dir", a.cfg.XMLDir).Msg("structured output verified")
	}
	return diags, nil
}

// prepareDirectories sets up artifact locations for a fresh run. The XML
// directory is destructively cleared before execution so stale artifacts
// from a previous run never leak into downstream rendering.
func (a *App) prepareDirectories() error {
	dirs := []string{filepath.Dir(a.cfg.DoxyfilePath)}
	if a.cfg.XMLOutput {
		if err := fsutil.CleanDirectory(a.cfg.XMLDir); err != nil {
			return fmt.Errorf("clean structured output dir: %w", err)
		}
		dirs = append(dirs, a.cfg.XMLDir)
	}
	if err := fsutil.CreateDirectories(dirs...); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}
	return nil
}
