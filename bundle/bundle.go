// Package bundle locates the TeX support bundle an engine session reads from.
//
// A bundle is either a local file or directory, or a web bundle addressed by
// URL. Web bundle URLs usually point at a redirector; Resolver follows the
// redirects once and remembers the final location in an on-disk cache so later
// sessions can start without network access.
package bundle

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/wippyai/texbridge/errors"
)

// Bundle identifies the support files for one processing session.
type Bundle struct {
	// Location is the bundle as configured.
	Location string
	// Resolved is the absolute path of a local bundle, or the final URL of a
	// web bundle after following redirects.
	Resolved string
	// Local is true for bundles on the file system.
	Local bool
}

// IsURL reports whether location names a web bundle.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Open returns a local bundle. The path must exist.
func Open(path string) (*Bundle, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseBundle, "resolve bundle path", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.PhaseBundle, errors.KindNotFound).
				Path(abs).
				Detail("bundle does not exist").
				Cause(err).
				Build()
		}
		return nil, errors.IO(errors.PhaseBundle, "stat bundle", abs, err)
	}
	return &Bundle{Location: path, Resolved: abs, Local: true}, nil
}
