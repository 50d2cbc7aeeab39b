// Package config loads the persistent, per-user texbridge configuration.
//
// The configuration is a TOML file, config.toml, in the configuration
// directory ($TEXBRIDGE_CONFIG_DIR, or texbridge/ under os.UserConfigDir).
// Caches live under $TEXBRIDGE_CACHE_DIR, or texbridge/ under os.UserCacheDir.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/wippyai/texbridge/bundle"
	"github.com/wippyai/texbridge/errors"
	"github.com/wippyai/texbridge/status"
)

const (
	FileName = "config.toml"

	ConfigDirEnv = "TEXBRIDGE_CONFIG_DIR"
	CacheDirEnv  = "TEXBRIDGE_CACHE_DIR"

	DefaultBundleURL = "https://relay.fullyjustified.net/default_bundle_v33.tar"
	DefaultProgram   = "tectonic"
)

// BundleInfo is one [[default_bundles]] entry.
type BundleInfo struct {
	URL string `toml:"url"`
}

// EngineInfo is the [engine] table.
type EngineInfo struct {
	Program string   `toml:"program"`
	Args    []string `toml:"args"`
}

type fileConfig struct {
	DefaultBundles []BundleInfo `toml:"default_bundles"`
	Engine         EngineInfo   `toml:"engine"`
}

// Persistent is an opened configuration.
type Persistent struct {
	path     string
	cacheDir string
	cfg      fileConfig
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		DefaultBundles: []BundleInfo{{URL: DefaultBundleURL}},
		Engine:         EngineInfo{Program: DefaultProgram},
	}
}

// ConfigDir returns the configuration directory.
func ConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "locate user configuration directory")
	}
	return filepath.Join(base, "texbridge"), nil
}

// CacheDir returns the cache root.
func CacheDir() (string, error) {
	if dir := os.Getenv(CacheDirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "locate user cache directory")
	}
	return filepath.Join(base, "texbridge"), nil
}

// Open loads the configuration from ConfigDir with caches under CacheDir.
func Open(autoCreate bool) (*Persistent, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	cache, err := CacheDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir, cache, autoCreate)
}

// OpenAt loads dir/config.toml. When the file does not exist it is an error
// unless autoCreate is set, in which case the default configuration is written.
func OpenAt(dir, cacheDir string, autoCreate bool) (*Persistent, error) {
	path := filepath.Join(dir, FileName)
	p := &Persistent{path: path, cacheDir: cacheDir}

	_, err := os.Stat(path)
	switch {
	case err == nil:
	case stderrors.Is(err, os.ErrNotExist):
		if !autoCreate {
			return nil, errors.New(errors.PhaseConfig, errors.KindNotFound).
				Path(path).
				Detail("configuration file does not exist").
				Cause(err).
				Build()
		}
		p.cfg = defaultFileConfig()
		if err := p.write(); err != nil {
			return nil, err
		}
		Logger().Info("created default configuration", zap.String("path", path))
		return p, nil
	default:
		return nil, errors.IO(errors.PhaseConfig, "stat configuration", path, err)
	}

	if _, err := toml.DecodeFile(path, &p.cfg); err != nil {
		return nil, errors.InvalidData(errors.PhaseConfig, path, "failed to parse TOML", err)
	}
	if p.cfg.Engine.Program == "" {
		p.cfg.Engine.Program = DefaultProgram
	}
	return p, nil
}

func (p *Persistent) write() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return errors.IO(errors.PhaseConfig, "create configuration directory", filepath.Dir(p.path), err)
	}
	f, err := os.Create(p.path)
	if err != nil {
		return errors.IO(errors.PhaseConfig, "create configuration", p.path, err)
	}
	if err := toml.NewEncoder(f).Encode(p.cfg); err != nil {
		f.Close()
		return errors.IO(errors.PhaseConfig, "write configuration", p.path, err)
	}
	if err := f.Close(); err != nil {
		return errors.IO(errors.PhaseConfig, "write configuration", p.path, err)
	}
	return nil
}

// Path returns the configuration file path.
func (p *Persistent) Path() string {
	return p.path
}

// CacheRoot returns the cache root directory.
func (p *Persistent) CacheRoot() string {
	return p.cacheDir
}

// Engine returns the configured engine program.
func (p *Persistent) Engine() EngineInfo {
	return p.cfg.Engine
}

// DefaultBundles returns the configured bundle entries.
func (p *Persistent) DefaultBundles() []BundleInfo {
	return p.cfg.DefaultBundles
}

// DefaultBundle opens the configured default bundle. Exactly one entry must be
// configured. Web bundles may be resolved over the network unless onlyCached
// is set.
func (p *Persistent) DefaultBundle(onlyCached bool, st status.Backend) (*bundle.Bundle, error) {
	if n := len(p.cfg.DefaultBundles); n != 1 {
		return nil, errors.New(errors.PhaseBundle, errors.KindInvalidData).
			Path(p.path).
			Detail("exactly one default bundle must be configured, found %d", n).
			Value(n).
			Build()
	}

	loc := p.cfg.DefaultBundles[0].URL
	if loc == "" {
		return nil, errors.New(errors.PhaseBundle, errors.KindInvalidData).
			Path(p.path).
			Detail("default bundle has an empty url").
			Build()
	}
	if !bundle.IsURL(loc) {
		if !filepath.IsAbs(loc) {
			loc = filepath.Join(filepath.Dir(p.path), loc)
		}
		return bundle.Open(loc)
	}
	return bundle.NewResolver(p.cacheDir).Resolve(loc, onlyCached, st)
}

// FormatCachePath returns the directory holding precompiled formats,
// creating it if needed.
func (p *Persistent) FormatCachePath() (string, error) {
	dir := filepath.Join(p.cacheDir, "formats")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.IO(errors.PhaseConfig, "create format cache", dir, err)
	}
	return dir, nil
}
