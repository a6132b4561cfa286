package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// SourceExt is the extension of compilable units.
const SourceExt = ".yul"

// Backend names accepted by [build].backend.
const (
	BackendLLVM = "llvm"
	BackendMIR  = "mir"
)

// Manifest is a parsed yulc.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the sections of yulc.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Run     RunConfig     `toml:"run"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Sources []string `toml:"sources"`
	Backend string   `toml:"backend"`
	OutDir  string   `toml:"out_dir"`
	Jobs    int      `toml:"jobs"`
	Cache   bool     `toml:"cache"`
}

type RunConfig struct {
	// Main is the unit executed by `yulc run` without arguments.
	Main  string `toml:"main"`
	Entry string `toml:"entry"`
}

// Defaults returns the configuration used for keys absent from the manifest.
func Defaults() Config {
	return Config{
		Build: BuildConfig{
			Sources: []string{"."},
			Backend: BackendLLVM,
			OutDir:  "build",
			Cache:   true,
		},
		Run: RunConfig{
			Main:  "src/main.yul",
			Entry: "main",
		},
	}
}

// Load finds yulc.toml at or above startDir and parses it.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses a manifest file and fills defaults for undefined keys.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undec[0].String())
	}
	if meta.IsDefined("build", "sources") && len(cfg.Build.Sources) == 0 {
		return Config{}, fmt.Errorf("%s: [build].sources is empty", path)
	}
	switch cfg.Build.Backend {
	case BackendLLVM, BackendMIR:
	default:
		return Config{}, fmt.Errorf("%s: [build].backend must be %q or %q, got %q", path, BackendLLVM, BackendMIR, cfg.Build.Backend)
	}
	if cfg.Build.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [build].jobs must be >= 0", path)
	}
	return cfg, nil
}

// SourceFiles expands [build].sources into a sorted list of .yul files.
// Directories are walked recursively; hidden directories are skipped.
func (m *Manifest) SourceFiles() ([]string, error) {
	if m == nil {
		return nil, errors.New("missing project manifest")
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, rel := range m.Config.Build.Sources {
		p := filepath.FromSlash(rel)
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%s: source path does not exist: %s", m.Path, p)
			}
			return nil, fmt.Errorf("%s: failed to stat %q: %w", m.Path, p, err)
		}
		if !info.IsDir() {
			if filepath.Ext(p) != SourceExt {
				return nil, fmt.Errorf("%s: %s is not a %s file", m.Path, p, SourceExt)
			}
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == SourceExt {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s: walking %s: %w", m.Path, p, err)
		}
	}
	slices.Sort(out)
	return out, nil
}

// MainFile returns the absolute path of [run].main.
func (m *Manifest) MainFile() string {
	p := filepath.FromSlash(m.Config.Run.Main)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}

// OutDir returns the absolute output directory.
func (m *Manifest) OutDir() string {
	if filepath.IsAbs(m.Config.Build.OutDir) {
		return m.Config.Build.OutDir
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.OutDir))
}

// DefaultManifest renders the manifest written by `yulc init`.
func DefaultManifest(name string) string {
	return fmt.Sprintf(`# yulc project manifest
[package]
name = %q

[build]
sources = ["src"]
backend = "llvm"
out_dir = "build"
jobs = 0
cache = true

[run]
main = "src/main.yul"
entry = "main"
`, name)
}

// DefaultMain is the entry unit created by `yulc init`.
func DefaultMain() string {
	return `{
    function main() -> r {
        let x := 0
        for { let i := 1 } lt(i, 11) { i := add(i, 1) } {
            x := add(x, i)
        }
        r := x
    }
}
`
}
