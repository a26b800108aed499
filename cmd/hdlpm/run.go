package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hdlpm/hdlpm/internal/args"
	"github.com/hdlpm/hdlpm/internal/catalog"
	"github.com/hdlpm/hdlpm/internal/config"
	"github.com/hdlpm/hdlpm/internal/ident"
	"github.com/hdlpm/hdlpm/internal/render"
	"github.com/hdlpm/hdlpm/internal/resolver"
	"github.com/hdlpm/hdlpm/internal/sv"
	"github.com/hdlpm/hdlpm/internal/units"
	"github.com/hdlpm/hdlpm/internal/vhdl"
)

// defaultConfigPath is read implicitly when --config isn't given; its
// absence is not an error, unlike an explicitly named file that fails
// to load.
const defaultConfigPath = "hdlpm.yaml"

// Exit codes per spec §6: 0 success, 101 a wrapped runtime error, 2
// reserved for usage errors (bad flags, unknown subcommand).
const (
	exitOK       = 0
	exitRunError = 101
	exitUsage    = 2
)

// run drives the one subcommand body this CORE-only binary ships:
// "build", which lexes, extracts, and resolves a directory of IPs
// end to end. Everything else spec.md reserves for out-of-scope
// subcommand bodies (new, init, run, …).
func run(ctx context.Context, argv []string) int {
	stream := args.Tokenize(argv)
	binder := args.NewBinder(stream)

	if show, _ := binder.CheckFlag("version"); show {
		fmt.Printf("hdlpm %s\n", version)
		return exitOK
	}

	subcommand, err := args.RequirePositional[string](binder, "subcommand")
	if err != nil {
		printUsage()
		return exitUsage
	}

	switch subcommand {
	case "build":
		return runBuild(ctx, binder)
	default:
		fmt.Fprintf(os.Stderr, "hdlpm: unknown subcommand %q\n", subcommand)
		printUsageFooter()
		return exitUsage
	}
}

func runBuild(ctx context.Context, binder *args.Binder) int {
	verboseLong, _ := binder.CheckFlag("verbose")
	verboseShort, _ := binder.CheckFlag("v")
	verbose := verboseLong || verboseShort

	ipFilter, hasFilter, err := args.CheckOption[string](binder, "ip")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsageFooter()
		return exitUsage
	}

	configPath, hasConfigPath, err := args.CheckOption[string](binder, "config")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsageFooter()
		return exitUsage
	}

	root, err := args.RequirePositional[string](binder, "root")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsageFooter()
		return exitUsage
	}

	if err := binder.IsEmpty(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsageFooter()
		return exitUsage
	}

	cfg, err := loadToolConfig(configPath, hasConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRunError
	}

	level := levelFromConfig(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logConfigKey(logger, "cache.dir", cfg.CacheDir)
	logConfigKey(logger, "log.level", cfg.LogLevel)
	logConfigKey(logger, "default.vendor", cfg.DefaultVendor)

	fs := catalog.OSProvider{}
	roots := append([]string{root}, catalogRoots(cfg)...)

	ipUnits, err := collectAllIPUnits(roots, fs, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRunError
	}

	opts := resolver.Options{}
	if hasFilter {
		n, err := qualifyIPFilter(ipFilter, cfg.DefaultVendor, ipUnits)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitRunError
		}
		opts.PreferIP = &n
	}

	pub := resolver.NewPublisher(nil)
	result, err := resolver.Resolve(ipUnits, opts, pub)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRunError
	}

	for _, n := range result.Order {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\n", n.IP, n.Unit.Shape, n.Unit.Name, n.Unit.Position, n.Unit.SourcePath)
	}
	for _, bb := range result.BlackBoxes {
		logger.Warn("unresolved reference", "name", bb)
	}
	return exitOK
}

// loadToolConfig loads hdlpm's YAML tool configuration. An explicitly
// named file that fails to load is an error; the implicit default
// path is simply skipped when absent, yielding a Config whose only set
// field is LogLevel "info" (CacheDir stays empty, since only
// config.Load applies its defaults).
func loadToolConfig(path string, explicit bool) (*config.Config, error) {
	if !explicit {
		path = defaultConfigPath
		if _, err := os.Stat(path); err != nil {
			return &config.Config{LogLevel: "info"}, nil
		}
	}
	return config.Load(path)
}

// levelFromConfig maps a config.Config.LogLevel spelling to a slog
// level, defaulting to Info for anything unrecognized.
func levelFromConfig(raw string) slog.Level {
	switch raw {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// logConfigKey emits a resolved config value at debug level, keyed by
// a validated dotted ident.ConfigKey rather than a bare string, so a
// malformed key fails loudly instead of silently mis-labeling a log
// line. Empty values are skipped since they carry no configuration.
func logConfigKey(logger *slog.Logger, rawKey, value string) {
	if value == "" {
		return
	}
	key, err := ident.NewConfigKey(rawKey)
	if err != nil {
		logger.Warn("internal: invalid config key", "key", rawKey, "error", err)
		return
	}
	logger.Debug("tool config", key.String(), value)
}

// catalogRoots returns the extra directories cfg wants scanned for
// local IPs alongside the positional root: its cache directory plus
// any configured catalog roots.
func catalogRoots(cfg *config.Config) []string {
	var roots []string
	if cfg.CacheDir != "" {
		roots = append(roots, cfg.CacheDir)
	}
	roots = append(roots, cfg.CatalogRoots...)
	return roots
}

// qualifyIPFilter resolves the --ip filter spelling against the known
// IPs across all scanned catalogs. If it names no known IP directly
// but prefixing it with cfg.DefaultVendor does, the qualified spelling
// is preferred, as config.Config.DefaultVendor documents.
func qualifyIPFilter(raw, defaultVendor string, known []resolver.IPUnits) (ident.Name, error) {
	n, err := ident.NewName(raw)
	if err != nil {
		return ident.Name{}, err
	}
	if defaultVendor == "" || containsEquivalentIP(known, n) {
		return n, nil
	}
	qualified, err := ident.NewName(defaultVendor + "-" + raw)
	if err == nil && containsEquivalentIP(known, qualified) {
		return qualified, nil
	}
	return n, nil
}

func containsEquivalentIP(known []resolver.IPUnits, n ident.Name) bool {
	for _, ip := range known {
		if ip.IP.Equivalent(n) {
			return true
		}
	}
	return false
}

// collectAllIPUnits runs collectIPUnits over each of roots in turn,
// skipping a root that doesn't resolve to a catalog (e.g. a configured
// cache directory that hasn't been populated yet) rather than failing
// the whole build, and warns on an IP name seen in more than one root
// (first root wins, mirroring units.MergeUnits' first-file-wins rule).
func collectAllIPUnits(roots []string, fs catalog.FilesystemProvider, logger *slog.Logger) ([]resolver.IPUnits, error) {
	seen := make(map[string]bool)
	var out []resolver.IPUnits
	for i, root := range roots {
		cat, err := catalog.NewDirCatalog(root, fs)
		if err != nil {
			if i == 0 {
				return nil, err
			}
			logger.Warn("skipping unreadable catalog root", "root", root, "error", err)
			continue
		}
		ipUnits, err := collectIPUnits(cat, fs, logger)
		if err != nil {
			return nil, err
		}
		for _, ip := range ipUnits {
			key := ip.IP.String()
			if seen[key] {
				logger.Warn("duplicate IP across catalog roots", "ip", key, "root", root)
				continue
			}
			seen[key] = true
			out = append(out, ip)
		}
	}
	return out, nil
}

// collectIPUnits walks every IP in cat, lexes and extracts primary
// units from each of its latest version's recognized source files,
// and merges them per spec §4.E's first-file-wins duplicate rule.
func collectIPUnits(cat *catalog.DirCatalog, fs catalog.FilesystemProvider, logger *slog.Logger) ([]resolver.IPUnits, error) {
	var out []resolver.IPUnits
	for _, name := range cat.IPs() {
		versions, err := cat.Versions(name)
		if err != nil || len(versions) == 0 {
			continue
		}
		latest := versions[len(versions)-1]

		sources, err := cat.Sources(name, latest)
		if err != nil {
			return nil, fmt.Errorf("collecting sources for %s: %w", name, err)
		}

		var perFile [][]*units.Unit
		for _, path := range sources {
			us, err := extractFile(fs, path)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			perFile = append(perFile, us)
		}

		merged, dups := units.MergeUnits(perFile)
		for _, d := range dups {
			logger.Warn("duplicate primary unit name within IP", "ip", name, "name", d.Name, "files", d.Files)
		}
		out = append(out, resolver.IPUnits{IP: name, Units: merged})
	}
	return out, nil
}

func extractFile(fs catalog.FilesystemProvider, path string) ([]*units.Unit, error) {
	text, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	useColor := render.ShouldUseColor()
	switch catalog.LanguageOf(path) {
	case catalog.VHDL:
		lex := vhdl.New(text, path)
		toks := lex.TokenizeAll()
		if errs := lex.Errors(); len(errs) > 0 {
			return nil, fmt.Errorf("%s", render.SourceContext(path, text, errs[0], useColor))
		}
		return units.ExtractVHDL(toks, path)
	case catalog.SystemVerilog:
		lex := sv.New(text, path)
		toks := lex.TokenizeAll()
		if errs := lex.Errors(); len(errs) > 0 {
			return nil, fmt.Errorf("%s", render.SourceContext(path, text, errs[0], useColor))
		}
		return units.ExtractSV(toks, path)
	default:
		return nil, nil
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `hdlpm - HDL package manager and build orchestration CORE

Usage:
  hdlpm build [--ip <name>] [--config <path>] [-v|--verbose] <root>

Options:
  --ip <name>       prefer this IP when a reference is ambiguous
  --config <path>   tool config file (default: ./hdlpm.yaml if present)
  -v, --verbose     debug-level logging
  --version         show version information
`)
	printUsageFooter()
}

func printUsageFooter() {
	fmt.Fprintln(os.Stderr, "For more information try --help")
}
