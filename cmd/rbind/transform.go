package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qza7849467chensh5/reflective-bind/internal/driver"
	"github.com/qza7849467chensh5/reflective-bind/internal/project"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
	"github.com/qza7849467chensh5/reflective-bind/internal/trace"
)

var transformCmd = &cobra.Command{
	Use:   "transform [flags] [file|directory|-]...",
	Short: "Rewrite bind calls and hoist inline JSX arrow functions",
	Long: `Transform rewrites every fn.bind(ctx, ...args) call into the reflective
helper and hoists eligible arrow functions passed as JSX props.
Directories are walked using the [files] section of .rbind.toml;
"-" reads a single file from stdin and prints the result.`,
	Args: cobra.ArbitraryArgs,
	RunE: runTransform,
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file|directory]...",
	Short: "List files that transform would rewrite",
	Long:  `Check runs the transform without writing and exits with status 1 when any file would change`,
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeTransform(cmd, args, driver.ModeCheck)
	},
}

var errWouldRewrite = errors.New("files would be rewritten")

func init() {
	transformCmd.Flags().Bool("check", false, "do not write files, exit 1 if any would change")
	transformCmd.Flags().Bool("stdout", false, "print the result instead of writing (single file)")
	addRunFlags(transformCmd)
	addRunFlags(checkCmd)
}

// addRunFlags registers the flags shared by transform and check.
func addRunFlags(c *cobra.Command) {
	c.Flags().String("config", "", "path to .rbind.toml (default: search upwards from the first target)")
	c.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	c.Flags().Bool("no-cache", false, "disable the result cache")
	c.Flags().String("cache-dir", "", "result cache directory")
	c.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	c.Flags().String("format", "pretty", "output format (pretty|json)")
	c.Flags().String("prefix", "", "prefix for hoisted function names")
	c.Flags().String("helper", "", "local name of the imported bind helper")
	c.Flags().String("module", "", "module the bind helper is imported from")
	c.Flags().StringSlice("context-fields", nil, "this.<field> accesses passed as parameters")
	c.Flags().String("prop-name-regex", "", "only analyze JSX attributes whose name matches")
}

func runTransform(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	mode := driver.ModeWrite
	switch {
	case check && toStdout:
		return fmt.Errorf("--check and --stdout cannot be used together")
	case check:
		mode = driver.ModeCheck
	case toStdout:
		mode = driver.ModeStdout
	}
	return executeTransform(cmd, args, mode)
}

func executeTransform(cmd *cobra.Command, args []string, mode driver.Mode) error {
	targets := args
	if len(targets) == 0 {
		targets = []string{"."}
	}
	fromStdin := len(targets) == 1 && targets[0] == "-"
	if fromStdin && mode == driver.ModeWrite {
		mode = driver.ModeStdout
	}

	manifest, err := loadManifest(cmd, targets, fromStdin)
	if err != nil {
		return err
	}
	cfg := manifest.Config
	if err := applyFlagOverrides(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := resolveLogLevel(cmd, cfg.Transform.Log)
	if err != nil {
		return err
	}
	topts := cfg.TransformOptions()
	topts.LogLevel = level
	if err := topts.Validate(); err != nil {
		return err
	}

	out, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	out.mode = mode

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cleanupLog, err := setupLogging(ctx, cmd, level)
	if err != nil {
		return err
	}
	defer cleanupLog()

	opts := driver.Options{
		Transform:      topts,
		Mode:           mode,
		Jobs:           cfg.Run.Jobs,
		MaxDiagnostics: out.maxDiagnostics,
		Timings:        out.timings,
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	fs := source.NewFileSetWithBase(wd)

	if fromStdin {
		content, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		res := driver.TransformSource(ctx, fs, "<stdin>", content, opts)
		return report(cmd, fs, []driver.FileResult{res}, out)
	}

	files, err := driver.ListFiles(targets, cfg.Files)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	if len(files) == 0 {
		if !out.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no matching files")
		}
		return nil
	}
	if mode == driver.ModeStdout && len(files) > 1 {
		return fmt.Errorf("--stdout needs exactly one file, got %d", len(files))
	}

	if cfg.Run.Cache {
		cacheDir := cfg.Run.CacheDir
		if cacheDir != "" && !filepath.IsAbs(cacheDir) && manifest.Root != "" {
			cacheDir = filepath.Join(manifest.Root, cacheDir)
		}
		cache, cacheErr := driver.OpenDiskCache(cacheDir)
		if cacheErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: result cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiSel, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	useUI := mode != driver.ModeStdout && !out.quiet && out.format == "pretty" &&
		level == trace.LevelOff && shouldUseTUI(uiSel, len(files))

	var results []driver.FileResult
	if useUI {
		results, err = runWithUI(ctx, "rbind", fs, files, opts)
	} else {
		results, err = driver.TransformFiles(ctx, fs, files, opts)
	}
	if reportErr := report(cmd, fs, results, out); reportErr != nil && err == nil {
		err = reportErr
	}
	return err
}

// loadManifest reads --config or searches for .rbind.toml above the first
// target. Stdin input searches from the working directory.
func loadManifest(cmd *cobra.Command, targets []string, fromStdin bool) (*project.Manifest, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		cfg, loadErr := project.LoadFile(configPath)
		if loadErr != nil {
			return nil, loadErr
		}
		return &project.Manifest{Path: configPath, Root: filepath.Dir(configPath), Config: cfg}, nil
	}
	start := "."
	if !fromStdin {
		start = targets[0]
	}
	manifest, _, err := project.Load(start)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

// applyFlagOverrides copies explicitly set flags over the file configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *project.Config) error {
	flags := cmd.Flags()
	strFlags := []struct {
		name string
		dst  *string
	}{
		{"prefix", &cfg.Transform.HoistedPrefix},
		{"helper", &cfg.Transform.HelperName},
		{"module", &cfg.Transform.HelperModule},
		{"prop-name-regex", &cfg.Transform.PropNameRegex},
		{"cache-dir", &cfg.Run.CacheDir},
	}
	for _, f := range strFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetString(f.name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", f.name, err)
		}
		*f.dst = v
	}
	if flags.Changed("context-fields") {
		fields, err := flags.GetStringSlice("context-fields")
		if err != nil {
			return fmt.Errorf("failed to get context-fields flag: %w", err)
		}
		cfg.Transform.ContextFields = fields
	}
	if flags.Changed("jobs") {
		jobs, err := flags.GetInt("jobs")
		if err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
		cfg.Run.Jobs = jobs
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if noCache {
		cfg.Run.Cache = false
	}
	return nil
}
