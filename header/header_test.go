package header

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/texbridge/errors"
)

var namespaceOpts = Options{
	Include: `#include "x.h"`,
	Marker:  "} // namespace rust",
}

func TestTransform_MovesIncludeAfterMarker(t *testing.T) {
	src := `#include "x.h"` + "start\n} // namespace rust\n\nend"

	res := Transform(src, namespaceOpts)

	assert.Equal(t, "start\n} // namespace rust\n\n#include \"x.h\"\n\nend", res.Text)
	assert.Equal(t, 1, res.Removed)
	assert.True(t, res.Inserted)
}

func TestTransform_OnlyTwoEdits(t *testing.T) {
	before := "// generated\n#include <cstdint>\n"
	middle := "namespace rust {\nclass String;\n} // namespace rust\n"
	after := "struct Sink;\nvoid run();\n"
	src := before + `#include "x.h"` + "\n" + middle + after

	res := Transform(src, namespaceOpts)

	want := before + "\n" + middle + "\n#include \"x.h\"\n" + after
	assert.Equal(t, want, res.Text)
	assert.Equal(t, 1, strings.Count(res.Text, `#include "x.h"`))

	markerEnd := strings.Index(res.Text, namespaceOpts.Marker) + len(namespaceOpts.Marker)
	assert.True(t, strings.HasPrefix(res.Text[markerEnd:], "\n\n"+namespaceOpts.Include+"\n"))
}

func TestTransform_RemovesEveryOccurrence(t *testing.T) {
	src := `#include "x.h"` + "\n" + `#include "x.h"` + "\n} // namespace rust\n} // namespace rust\ntail"

	res := Transform(src, namespaceOpts)

	assert.Equal(t, 2, res.Removed)
	assert.Equal(t, 1, strings.Count(res.Text, namespaceOpts.Include))
	assert.Equal(t, "\n\n} // namespace rust\n\n#include \"x.h\"\n} // namespace rust\ntail", res.Text)
}

func TestTransform_MarkerMissing(t *testing.T) {
	src := `#include "x.h"` + "\nnamespace other {}\n"

	res := Transform(src, namespaceOpts)

	assert.False(t, res.Inserted)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, "\nnamespace other {}\n", res.Text)
}

func TestTransform_MarkerOnLastLine(t *testing.T) {
	res := Transform(`#include "x.h"`+"\n} // namespace rust", namespaceOpts)

	assert.False(t, res.Inserted)
	assert.NotContains(t, res.Text, namespaceOpts.Include)
}

func TestTransform_CgoHeader(t *testing.T) {
	src, err := os.ReadFile("testdata/libtexbridge.h")
	require.NoError(t, err)

	res := Transform(string(src), Options{})

	require.True(t, res.Inserted)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, 1, strings.Count(res.Text, DefaultInclude))

	include := strings.Index(res.Text, DefaultInclude)
	assert.Greater(t, include, strings.Index(res.Text, "typedef struct { void *data; GoInt len; GoInt cap; } GoSlice;"))
	assert.Less(t, include, strings.Index(res.Text, "extern texbridge_bytes"))
}

func TestDeploy(t *testing.T) {
	dir := t.TempDir()
	generated := filepath.Join(dir, "out", "generated.h")
	require.NoError(t, os.MkdirAll(filepath.Dir(generated), 0o755))
	require.NoError(t, os.WriteFile(generated, []byte(`#include "x.h"`+"start\n} // namespace rust\n\nend"), 0o644))

	target := filepath.Join(dir, "target")
	out, err := Deploy(generated, target, namespaceOpts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(target, DeploymentName), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "start\n} // namespace rust\n\n#include \"x.h\"\n\nend", string(data))
}

func TestDeploy_ReadFailure(t *testing.T) {
	_, err := Deploy(filepath.Join(t.TempDir(), "missing.h"), t.TempDir(), Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseHeader, Kind: errors.KindIO})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDeploy_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	generated := filepath.Join(dir, "gen.h")
	require.NoError(t, os.WriteFile(generated, []byte("x"), 0o644))

	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := Deploy(generated, blocker, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseHeader, Kind: errors.KindIO})
}

func TestTargetDir(t *testing.T) {
	t.Setenv(TargetDirEnv, "")
	assert.Equal(t, "target", TargetDir())

	t.Setenv(TargetDirEnv, "/tmp/build")
	assert.Equal(t, "/tmp/build", TargetDir())
}
