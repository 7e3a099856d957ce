package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/qza7849467chensh5/reflective-bind/internal/transform"
	"github.com/qza7849467chensh5/reflective-bind/internal/trace"
)

var (
	// ErrUnknownKey is returned for keys the configuration does not define.
	ErrUnknownKey = errors.New("unknown key")
	// ErrInvalidValue is returned for values that fail validation.
	ErrInvalidValue = errors.New("invalid value")
)

// Config mirrors .rbind.toml.
type Config struct {
	Transform TransformConfig `toml:"transform"`
	Files     FilesConfig     `toml:"files"`
	Run       RunConfig       `toml:"run"`
}

// TransformConfig is the [transform] section.
type TransformConfig struct {
	HoistedPrefix string      `toml:"hoisted_prefix"`
	HelperName    string      `toml:"helper_name"`
	HelperModule  string      `toml:"helper_module"`
	Log           trace.Level `toml:"log"`
	ContextFields []string    `toml:"context_fields"`
	PropNameRegex string      `toml:"prop_name_regex"`
}

// FilesConfig is the [files] section.
type FilesConfig struct {
	Extensions []string `toml:"extensions"`
	// Exclude holds filepath.Match patterns checked against every path
	// element and against the slash-separated path relative to the root.
	Exclude []string `toml:"exclude"`
}

// RunConfig is the [run] section.
type RunConfig struct {
	Jobs     int    `toml:"jobs"` // 0 - GOMAXPROCS
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir,omitempty"`
}

// Manifest is a loaded configuration together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the configuration used when no .rbind.toml exists.
func Default() Config {
	d := transform.DefaultOptions()
	return Config{
		Transform: TransformConfig{
			HoistedPrefix: d.HoistedPrefix,
			HelperName:    d.HelperName,
			HelperModule:  d.HelperModule,
			Log:           trace.LevelOff,
			ContextFields: d.ContextFields,
		},
		Files: FilesConfig{
			Extensions: []string{".js", ".jsx", ".mjs"},
			Exclude:    []string{"node_modules", ".git", "*.min.js"},
		},
		Run: RunConfig{Cache: true},
	}
}

// Load finds .rbind.toml above startDir and decodes it over Default.
// ok is false when no file exists; the returned manifest then carries
// the defaults and an empty Path.
func Load(startDir string) (*Manifest, bool, error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: Default()}, false, nil
	}
	cfg, err := LoadFile(configPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   configPath,
		Root:   filepath.Dir(configPath),
		Config: cfg,
	}, true, nil
}

// LoadFile decodes one configuration file over Default and validates it.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that TOML typing alone does not catch.
func (c Config) Validate() error {
	if c.Run.Jobs < 0 {
		return fmt.Errorf("[run].jobs must not be negative: %w", ErrInvalidValue)
	}
	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("[files].extensions: %q must start with a dot: %w", ext, ErrInvalidValue)
		}
	}
	for _, pat := range c.Files.Exclude {
		if _, err := filepath.Match(pat, ""); err != nil {
			return fmt.Errorf("[files].exclude: %q: %w", pat, ErrInvalidValue)
		}
	}
	if c.Transform.PropNameRegex != "" {
		if _, err := regexp.Compile(c.Transform.PropNameRegex); err != nil {
			return fmt.Errorf("[transform].prop_name_regex: %w: %w", ErrInvalidValue, err)
		}
	}
	for _, name := range []struct{ key, val string }{
		{"hoisted_prefix", c.Transform.HoistedPrefix},
		{"helper_name", c.Transform.HelperName},
		{"helper_module", c.Transform.HelperModule},
	} {
		if strings.TrimSpace(name.val) == "" {
			return fmt.Errorf("[transform].%s must not be empty: %w", name.key, ErrInvalidValue)
		}
	}
	return nil
}

// TransformOptions converts the [transform] section into transform.Options.
func (c Config) TransformOptions() transform.Options {
	return transform.Options{
		HoistedPrefix: c.Transform.HoistedPrefix,
		HelperName:    c.Transform.HelperName,
		HelperModule:  c.Transform.HelperModule,
		LogLevel:      c.Transform.Log,
		ContextFields: append([]string(nil), c.Transform.ContextFields...),
		PropNameRegex: c.Transform.PropNameRegex,
	}
}
