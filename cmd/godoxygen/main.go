package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/godoxygen/internal/app"
	"github.com/hyperifyio/godoxygen/internal/install"
	"github.com/hyperifyio/godoxygen/internal/runner"
	"github.com/hyperifyio/godoxygen/internal/verify"
	"github.com/hyperifyio/godoxygen/internal/warnings"
)

// Exit code policy. Fatal kinds surface as distinct statuses so callers can
// script against them; documentation diagnostics are reported and exit zero.
const (
	exitFailure        = 1 // configuration or installation failure
	exitEmptyOutput    = 2
	exitMissingLibrary = 3
)

func main() {
	_ = godotenv.Load()

	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		sourceDir    string
		toolVersion  string
		xmlOutput    bool
		xmlDir       string
		extensions   string
		exclude      string
		access       string
		debug        bool
		doxyfilePath string
		installDir   string
		mirrorURL    string
		configPath   string
		listVersions bool
		verbose      bool
		showVersion  bool
	)

	flag.StringVar(&sourceDir, "source", app.DefaultSourceDir, "Directory containing the annotated sources to document")
	flag.StringVar(&toolVersion, "tool.version", install.DefaultVersion, "Doxygen version to pin and run")
	flag.BoolVar(&xmlOutput, "xml", false, "Generate machine-readable XML output")
	flag.StringVar(&xmlDir, "xml.dir", app.DefaultXMLDir, "Directory for XML output (cleared before each run)")
	flag.StringVar(&extensions, "ext", app.DefaultExtension, "Comma-separated file extensions to document, e.g. '.h,.hpp'")
	flag.StringVar(&exclude, "exclude", "", "Exclusion pattern applied to the source tree")
	flag.StringVar(&access, "access", app.DefaultAccess, "Member visibility to document: public or private")
	flag.BoolVar(&debug, "debug", false, "Run the tool unquieted and log discarded tool output")
	flag.StringVar(&doxyfilePath, "doxyfile", app.DefaultDoxyfilePath, "Path for the generated Doxyfile")
	flag.StringVar(&installDir, "install.dir", install.DefaultDir, "Directory holding pinned tool installs")
	flag.StringVar(&mirrorURL, "mirror", install.DefaultMirrorURL, "Doxygen release download mirror")
	flag.StringVar(&configPath, "config", "", "Optional YAML/JSON config file")
	flag.BoolVar(&listVersions, "list-versions", false, "List Doxygen versions published on the mirror and exit")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print build version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("godoxygen %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return
	}

	if verbose || debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		SourceDir:      sourceDir,
		FileExtensions: app.SplitExtensions(extensions),
		ExcludePattern: exclude,
		Access:         access,
		ToolVersion:    toolVersion,
		InstallDir:     installDir,
		MirrorURL:      mirrorURL,
		DoxyfilePath:   doxyfilePath,
		XMLOutput:      xmlOutput,
		XMLDir:         xmlDir,
		Debug:          debug,
	}
	// Precedence: flags > env > config file.
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("load config file")
			os.Exit(exitFailure)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(exitFailure)
	}

	a := app.New(cfg, log.Logger)

	if listVersions {
		versions, err := a.Installer().ListAvailable(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("list versions")
			os.Exit(exitFailure)
		}
		for _, v := range versions {
			fmt.Println(v)
		}
		return
	}

	diags, err := a.Run(context.Background())
	reportDiagnostics(diags)
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

// reportDiagnostics surfaces each documentation warning to the operator.
// Diagnostics never affect the exit status.
func reportDiagnostics(diags []warnings.Diagnostic) {
	for _, d := range diags {
		log.Warn().Str("location", d.Location).Msg(d.Text)
	}
	if len(diags) > 0 {
		log.Info().Int("count", len(diags)).Msg("documentation diagnostics reported")
	}
}

// exitCode maps fatal error kinds onto the exit status table above. This is
// the only place that decides how the process ends.
func exitCode(err error) int {
	var mle *runner.MissingLibraryError
	switch {
	case errors.As(err, &mle):
		return exitMissingLibrary
	case errors.Is(err, verify.ErrEmptyOutput):
		return exitEmptyOutput
	default:
		return exitFailure
	}
}
