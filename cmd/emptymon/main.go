package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phyten/emptymon/internal/config"
	"github.com/phyten/emptymon/internal/engine"
	engineopts "github.com/phyten/emptymon/internal/engine/opts"
	"github.com/phyten/emptymon/internal/logger"
	"github.com/phyten/emptymon/internal/output"
	"github.com/phyten/emptymon/internal/progress"
	"github.com/phyten/emptymon/internal/termcolor"
)

const (
	exitOK       = 0
	exitError    = 1
	exitFindings = 3
)

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Environ())
	stop()
	os.Exit(code)
}

// settings は全レイヤーをマージした最終設定。
type settings struct {
	opts          engine.Options
	output        config.OutputSettings
	fields        output.FieldSelection
	configPath    string
	configSource  string
	forceProgress bool
	noProgress    bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, environ []string) int {
	env := termcolor.EnvMap(environ)
	getenv := func(key string) string { return env[key] }
	errLog := log.New(stderr, "", 0)

	cli, err := parseScanArgs(args, langFromEnv(getenv))
	if err != nil {
		errLog.Printf("emptymon: %v", err)
		errLog.Print("run 'emptymon -h' for usage")
		return exitError
	}
	if cli.showHelp {
		printHelp(stdout, cli.helpLang)
		return exitOK
	}

	s, err := resolveSettings(cli, getenv)
	if err != nil {
		errLog.Printf("emptymon: %v", err)
		return exitError
	}

	lg := logger.New(stderr, s.output.LogLevel)
	if s.configPath != "" {
		lg.Debugf("config: %s (%s)", s.configPath, s.configSource)
	}
	s.opts.Logger = lg
	if progress.ShouldShow(s.forceProgress, s.noProgress) {
		s.opts.ProgressObserver = progress.NewObserver(stderr)
	}

	res, err := engine.Run(ctx, s.opts)
	if err != nil {
		var fe *engine.FileError
		if errors.As(err, &fe) {
			errLog.Printf("emptymon: %v (use --skip-unreadable to continue past unreadable files)", err)
		} else {
			errLog.Printf("emptymon: %v", err)
		}
		return exitError
	}

	if err := render(stdout, res, s, env); err != nil {
		errLog.Printf("emptymon: write output: %v", err)
		return exitError
	}
	reportProblems(lg, res)
	if res.Cancelled() {
		lg.Warnf("scan cancelled after %d/%d files; results are partial", res.FilesScanned, res.FilesTotal)
		return exitOK
	}
	lg.Debugf("%d finding(s) in %d file(s), %dms", res.Total, res.FilesScanned, res.ElapsedMS)
	if s.output.FailOnFindings && res.Total > 0 {
		return exitFindings
	}
	return exitOK
}

// resolveSettings merges defaults < config file < environment < flags.
func resolveSettings(cli cliConfig, getenv func(string) string) (settings, error) {
	var s settings
	envCfg, err := config.FromEnv(getenv)
	if err != nil {
		return s, err
	}

	searchRoot := "."
	if envCfg.Scan.Root != nil {
		searchRoot = *envCfg.Scan.Root
	}
	if cli.flags.Scan.Root != nil {
		searchRoot = *cli.flags.Scan.Root
	}
	explicit := cli.configPath
	if explicit == "" {
		explicit = getenv("EMPTYMON_CONFIG")
	}
	path, where, err := config.Find(searchRoot, explicit, getenv("XDG_CONFIG_HOME"), getenv("HOME"))
	if err != nil {
		return s, fmt.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return s, fmt.Errorf("config: %w", err)
	}

	defaults := engineopts.Defaults(".")
	scan := config.MergeScan(config.ScanSettingsFromOptions(defaults), fileCfg.Scan, envCfg.Scan, cli.flags.Scan)
	s.opts = defaults
	scan.ApplyToOptions(&s.opts)
	if err := engineopts.NormalizeAndValidate(&s.opts); err != nil {
		return s, err
	}

	out := config.MergeOutput(config.DefaultOutputSettings(), fileCfg.Output, envCfg.Output, cli.flags.Output)
	if s.output, err = config.NormalizeOutput(out); err != nil {
		return s, err
	}
	if s.fields, err = output.ResolveFields(s.output.Fields); err != nil {
		return s, err
	}

	s.configPath = path
	s.configSource = where
	s.forceProgress = cli.forceProgress
	s.noProgress = cli.noProgress
	return s, nil
}

func render(w io.Writer, res *engine.Result, s settings, env map[string]string) error {
	switch s.output.Format {
	case "json":
		return output.WriteJSON(w, res)
	case "ndjson":
		return output.WriteNDJSON(w, res.Findings)
	case "csv":
		return output.WriteCSV(w, res.Findings, s.fields)
	case "tsv":
		return output.WriteTSV(w, res.Findings, s.fields)
	case "markdown":
		return output.WriteMarkdownTable(w, res.Findings, s.fields)
	default:
		return output.WriteTable(w, res.Findings, s.fields, tableStyle(w, s.output.Color, env))
	}
}

func tableStyle(w io.Writer, rawMode string, env map[string]string) output.TableStyle {
	mode, err := termcolor.ParseMode(rawMode)
	if err != nil {
		mode = termcolor.ModeAuto
	}
	return output.TableStyle{
		Enabled: termcolor.Resolve(mode, w, env),
		Scheme:  termcolor.DetectScheme(env),
		Profile: termcolor.DetectProfile(env),
	}
}

// reportProblems は件数だけをまとめる。個々のファイルはエンジン側でログ済み。
func reportProblems(lg *logger.ConsoleLogger, res *engine.Result) {
	if len(res.Skipped) > 0 {
		lg.Infof("%d file(s) skipped", len(res.Skipped))
	}
	if res.ErrorCount > 0 {
		lg.Warnf("%d file(s) could not be read", res.ErrorCount)
	}
}
