package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrOverrideMissing = errors.New("override file not found")
)

// runConvertCmd parses flags, runs the conversion, and reports the outcome.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		// pflag already printed the error and usage
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, env))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates one conversion: config, paths, HTML, optional PDF.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment) error {
	if len(positional) != 1 {
		return fmt.Errorf("%w: convert takes exactly one markdown file, got %d", ErrUsage, len(positional))
	}

	if flags.render.serverHighlight && flags.render.clientHighlight {
		return fmt.Errorf("%w: --server-highlight and --client-highlight are mutually exclusive", ErrUsage)
	}

	logger := newLogger(env, flags.common)
	for _, name := range unknownEnvVars(env) {
		logger.Warn().Str("name", name).Msg("unknown environment variable (typo?)")
	}

	envCfg := loadEnvConfig(env)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	if envCfg.Timeout != "" {
		cfg.PDF.Timeout = envCfg.Timeout
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	input := buildInput(cfg)
	if err := checkOverrides(input.Assets); err != nil {
		return err
	}

	conv, err := md2html.NewConverter(
		md2html.WithEngine(cfg.Engine),
		md2html.WithHighlightTheme(cfg.Highlight.Theme),
		md2html.WithGenerator("go-md2html "+Version),
		md2html.WithLogger(logger),
		md2html.WithTimeout(timeout),
	)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	start := env.Now()
	res, err := conv.ConvertFile(ctx, md2html.FileInput{
		PathRequest: md2html.PathRequest{
			MarkdownPath: positional[0],
			HTMLPath:     flags.output.html,
			PDFPath:      flags.output.pdf,
			Title:        flags.output.title,
			Force:        flags.output.force,
		},
		Input: input,
	})
	if err != nil {
		return err
	}
	report(env, flags.common, res.Paths.HTML, env.Now().Sub(start))

	if res.Paths.PDF == "" {
		return nil
	}

	start = env.Now()
	if err := conv.WritePDF(ctx, res.Paths.HTML, res.Paths.PDF); err != nil {
		return err
	}
	report(env, flags.common, res.Paths.PDF, env.Now().Sub(start))

	return nil
}

// loadConfig loads the config named by the flag, else by MD2HTML_CONFIG,
// else returns the defaults.
func loadConfig(name string, envCfg envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
// Boolean flags only move a setting away from its default.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	r := flags.render
	if r.engine != "" {
		cfg.Engine = r.engine
	}
	if r.noSafe {
		cfg.Safe = false
	}
	if r.sanitize {
		cfg.Sanitize = true
	}
	if r.embedImages {
		cfg.EmbedImages = true
	}
	if r.noHighlight {
		cfg.Highlight.Enabled = false
	}
	switch {
	case r.serverHighlight:
		cfg.Highlight.Mode = config.HighlightServer
	case r.clientHighlight:
		cfg.Highlight.Mode = config.HighlightClient
	}
	if r.theme != "" {
		cfg.Highlight.Theme = r.theme
	}
	if r.noMath {
		cfg.Math.Enabled = false
	}
	if r.noFonts {
		cfg.Fonts.CJK = false
	}

	// Flag paths are relative to the working directory, config paths to the
	// config file; resolve config paths first so flags stay untouched.
	cfg.Assets.CSS = cfg.AssetPath(cfg.Assets.CSS)
	cfg.Assets.HighlightJS = cfg.AssetPath(cfg.Assets.HighlightJS)
	cfg.Assets.HighlightCSS = cfg.AssetPath(cfg.Assets.HighlightCSS)
	cfg.Assets.MathJaxJS = cfg.AssetPath(cfg.Assets.MathJaxJS)

	a := flags.assets
	if a.css != "" {
		cfg.Assets.CSS = a.css
	}
	if a.highlightJS != "" {
		cfg.Assets.HighlightJS = a.highlightJS
	}
	if a.highlightCSS != "" {
		cfg.Assets.HighlightCSS = a.highlightCSS
	}
	if a.mathJaxJS != "" {
		cfg.Assets.MathJaxJS = a.mathJaxJS
	}

	if flags.timeout != "" {
		cfg.PDF.Timeout = flags.timeout
	}
}

// buildInput maps the merged config to conversion switches.
func buildInput(cfg *config.Config) md2html.Input {
	return md2html.Input{
		Unsafe:          !cfg.Safe,
		NoHighlight:     !cfg.Highlight.Enabled,
		NoMath:          !cfg.Math.Enabled,
		NoFonts:         !cfg.Fonts.CJK,
		ServerHighlight: strings.EqualFold(cfg.Highlight.Mode, config.HighlightServer),
		ClientHighlight: strings.EqualFold(cfg.Highlight.Mode, config.HighlightClient),
		Sanitize:        cfg.Sanitize,
		EmbedImages:     cfg.EmbedImages,
		Assets: md2html.AssetPaths{
			CSS:          cfg.Assets.CSS,
			HighlightJS:  cfg.Assets.HighlightJS,
			HighlightCSS: cfg.Assets.HighlightCSS,
			MathJaxJS:    cfg.Assets.MathJaxJS,
		},
	}
}

// checkOverrides fails early, naming the flag, when an override file is
// missing. Unreadable or non-UTF-8 files are reported by the converter.
func checkOverrides(a md2html.AssetPaths) error {
	overrides := []struct{ flag, path string }{
		{"css-path", a.CSS},
		{"highlight-js-path", a.HighlightJS},
		{"highlight-css-path", a.HighlightCSS},
		{"mathjax-js-path", a.MathJaxJS},
	}
	for _, o := range overrides {
		if o.path != "" && !fileutil.FileExists(o.path) {
			return fmt.Errorf("%w: %w: --%s %s%s", md2html.ErrIO, ErrOverrideMissing, o.flag, o.path, hints.ForAssetOverride(o.flag))
		}
	}
	return nil
}

// report prints one created file unless quiet.
func report(env *Environment, common commonFlags, path string, elapsed time.Duration) {
	switch {
	case common.quiet:
	case common.verbose:
		fmt.Fprintf(env.Stdout, "Created %s (%v)\n", path, elapsed.Round(time.Millisecond))
	default:
		fmt.Fprintf(env.Stdout, "Created %s\n", path)
	}
}

// newLogger writes human-readable events to stderr: info by default,
// debug with --verbose, errors only with --quiet.
func newLogger(env *Environment, common commonFlags) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case common.verbose:
		level = zerolog.DebugLevel
	case common.quiet:
		level = zerolog.ErrorLevel
	}

	out := zerolog.ConsoleWriter{Out: env.Stderr, NoColor: true, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// hintFor returns an actionable hint for library errors, or "".
// CLI errors carry their hint in the message already.
func hintFor(err error, env *Environment) string {
	switch {
	case errors.Is(err, ErrOverrideMissing), errors.Is(err, config.ErrConfigNotFound):
		return ""
	case errors.Is(err, md2html.ErrInput):
		return hints.ForInput()
	case errors.Is(err, md2html.ErrOutputExists):
		return hints.ForOutputExists()
	case errors.Is(err, md2html.ErrUnknownTheme):
		return hints.ForThemeNotFound(md2html.Themes())
	case errors.Is(err, md2html.ErrUnknownEngine), errors.Is(err, md2html.ErrUnsupportedEngine):
		return hints.ForEngine(md2html.Engines())
	case errors.Is(err, md2html.ErrBrowser) && errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, md2html.ErrBrowser):
		container, _ := detectContainer(env)
		return hints.ForBrowserConnect(hints.BrowserEnv{
			SandboxRisk:  container || detectCI(env),
			NoSandbox:    env.Getenv("ROD_NO_SANDBOX") == "1",
			CustomBinary: env.Getenv("ROD_BROWSER_BIN") != "",
		})
	default:
		return ""
	}
}
