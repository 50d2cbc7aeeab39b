package driver

import (
	"path"
	"sort"
	"strings"
)

// OutputFormat selects the kind of document a session produces.
type OutputFormat int

const (
	FormatPDF OutputFormat = iota
	FormatXDV
	FormatHTML
	FormatAux
	FormatFormat
)

// String returns the engine's name for the format.
func (f OutputFormat) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatXDV:
		return "xdv"
	case FormatHTML:
		return "html"
	case FormatAux:
		return "aux"
	case FormatFormat:
		return "fmt"
	default:
		return "unknown"
	}
}

// Ext returns the file extension of the primary output, with a leading dot.
func (f OutputFormat) Ext() string {
	return "." + f.String()
}

func (f OutputFormat) valid() bool {
	return f >= FormatPDF && f <= FormatFormat
}

// FileData is the content of one produced file.
type FileData struct {
	Data []byte
}

// Files maps logical output file names (slash separated, relative to the
// output directory) to their contents.
type Files map[string]FileData

// Remove takes the named file out of the set.
func (f Files) Remove(name string) (FileData, bool) {
	fd, ok := f[name]
	if ok {
		delete(f, name)
	}
	return fd, ok
}

// Names returns the file names in sorted order.
func (f Files) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isLog(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".log", ".blg":
		return true
	}
	return false
}

// isIntermediate reports whether name is neither a log nor a primary output.
func isIntermediate(name string, format OutputFormat) bool {
	if isLog(name) {
		return false
	}
	ext := strings.ToLower(path.Ext(name))
	if format == FormatHTML {
		// HTML output is a tree of pages and assets.
		return ext == ".aux" || ext == ".xdv" || ext == ".toc" || ext == ".out"
	}
	return ext != format.Ext()
}
