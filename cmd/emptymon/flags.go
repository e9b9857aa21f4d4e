package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/phyten/emptymon/internal/config"
	engineopts "github.com/phyten/emptymon/internal/engine/opts"
)

// cliConfig はコマンドライン層の設定。flags には明示されたフラグだけが入る。
type cliConfig struct {
	flags         config.Config
	configPath    string
	forceProgress bool
	noProgress    bool
	showHelp      bool
	helpLang      string
}

// multiValue は繰り返し指定とカンマ区切りの両方を受け付ける。
type multiValue []string

func (m *multiValue) String() string {
	if m == nil {
		return ""
	}
	return strings.Join(*m, ",")
}

func (m *multiValue) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// helpValue は -h / --help[=ja|en] を表す。
type helpValue struct {
	set  bool
	lang string
}

func (h *helpValue) String() string { return h.lang }

func (h *helpValue) Set(v string) error {
	h.set = true
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "true", "1":
	case "ja", "jp":
		h.lang = "ja"
	case "en":
		h.lang = "en"
	default:
		return fmt.Errorf("unknown help language: %s", v)
	}
	return nil
}

func (h *helpValue) IsBoolFlag() bool { return true }

func parseScanArgs(args []string, defaultLang string) (cliConfig, error) {
	fs := flag.NewFlagSet("emptymon", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		methods        multiValue
		exts           multiValue
		excludes       multiValue
		root           string
		sourceRoot     string
		jobs           int
		maxFileBytes   int
		skipUnreadable bool
		format         string
		fields         string
		colorMode      string
		logLevel       string
		failOnFindings bool
		lang           string
		help           helpValue
		helpJa         bool
		cfg            cliConfig
	)

	fs.Var(&methods, "methods", "")
	fs.Var(&methods, "m", "")
	fs.StringVar(&root, "root", ".", "")
	fs.StringVar(&root, "r", ".", "")
	fs.StringVar(&sourceRoot, "source-root", "", "")
	fs.Var(&exts, "ext", "")
	fs.Var(&excludes, "exclude", "")
	fs.Var(&excludes, "x", "")
	fs.IntVar(&jobs, "jobs", 1, "")
	fs.IntVar(&jobs, "j", 1, "")
	fs.IntVar(&maxFileBytes, "max-file-bytes", 0, "")
	fs.BoolVar(&skipUnreadable, "skip-unreadable", false, "")
	fs.StringVar(&format, "output", "table", "")
	fs.StringVar(&format, "o", "table", "")
	fs.StringVar(&fields, "fields", "", "")
	fs.StringVar(&colorMode, "color", "auto", "")
	fs.StringVar(&logLevel, "log-level", "info", "")
	fs.BoolVar(&failOnFindings, "fail-on-findings", false, "")
	fs.StringVar(&cfg.configPath, "config", "", "")
	fs.BoolVar(&cfg.forceProgress, "progress", false, "")
	fs.BoolVar(&cfg.noProgress, "no-progress", false, "")
	fs.StringVar(&lang, "lang", "", "")
	fs.Var(&help, "help", "")
	fs.Var(&help, "h", "")
	fs.BoolVar(&helpJa, "help-ja", false, "")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.helpLang = resolveLang(lang, defaultLang)
	if help.set || helpJa {
		cfg.showHelp = true
		switch {
		case helpJa:
			cfg.helpLang = "ja"
		case help.lang != "":
			cfg.helpLang = help.lang
		case fs.NArg() > 0:
			// "emptymon -h ja" の形
			cfg.helpLang = resolveLang(fs.Arg(0), cfg.helpLang)
		}
		return cfg, nil
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	either := func(names ...string) bool {
		for _, n := range names {
			if set[n] {
				return true
			}
		}
		return false
	}

	scan := &cfg.flags.Scan
	if either("methods", "m") {
		list := engineopts.SplitMulti(methods)
		scan.Methods = &list
	}
	if either("root", "r") {
		scan.Root = &root
	}
	if either("source-root") {
		scan.SourceRoot = &sourceRoot
	}
	if either("ext") {
		list := engineopts.SplitMulti(exts)
		scan.Extensions = &list
	}
	if either("exclude", "x") {
		list := engineopts.SplitMulti(excludes)
		scan.Excludes = &list
	}
	if either("jobs", "j") {
		scan.Jobs = &jobs
	}
	if either("max-file-bytes") {
		scan.MaxFileBytes = &maxFileBytes
	}
	if either("skip-unreadable") {
		scan.SkipUnreadable = &skipUnreadable
	}

	out := &cfg.flags.Output
	if either("output", "o") {
		out.Format = &format
	}
	if either("fields") {
		out.Fields = &fields
	}
	if either("color") {
		out.Color = &colorMode
	}
	if either("log-level") {
		out.LogLevel = &logLevel
	}
	if either("fail-on-findings") {
		out.FailOnFindings = &failOnFindings
	}
	return cfg, nil
}

func resolveLang(v, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "ja", "jp", "japanese":
		return "ja"
	case "en", "english":
		return "en"
	}
	if fallback == "" {
		return "en"
	}
	return fallback
}

// langFromEnv は LC_ALL / LANG から既定のヘルプ言語を決める。
func langFromEnv(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := strings.ToLower(strings.TrimSpace(getenv(key)))
		if v == "" {
			continue
		}
		if strings.HasPrefix(v, "ja") {
			return "ja"
		}
		return "en"
	}
	return "en"
}
