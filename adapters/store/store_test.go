package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickbench/domain/core"
	"pickbench/domain/params"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "optimized_params.json")

	v := params.Vector{
		Tdownmax:       23.71,
		Tupevent:       4.2,
		Thr1:           9.93,
		Thr2:           12.08,
		PresetLen:      151.6,
		PDur:           84.3,
		OffsetConstant: -1.25,
	}

	require.NoError(t, s.Save(v, path))

	loaded, err := s.Load(path)
	require.NoError(t, err)
	assert.InDelta(t, v.Tdownmax, loaded.Tdownmax, 1e-12)
	assert.InDelta(t, v.Tupevent, loaded.Tupevent, 1e-12)
	assert.InDelta(t, v.Thr1, loaded.Thr1, 1e-12)
	assert.InDelta(t, v.Thr2, loaded.Thr2, 1e-12)
	assert.InDelta(t, v.PresetLen, loaded.PresetLen, 1e-12)
	assert.InDelta(t, v.PDur, loaded.PDur, 1e-12)
	assert.InDelta(t, v.OffsetConstant, loaded.OffsetConstant, 1e-12)
}

func TestSave_RejectsWrongExtension(t *testing.T) {
	s := New()
	err := s.Save(params.Vector{}, filepath.Join(t.TempDir(), "params.yaml"))
	assert.True(t, core.IsConfigError(err), "got %v, want config error", err)
}

func TestLoad_RejectsWrongExtension(t *testing.T) {
	s := New()
	_, err := s.Load(filepath.Join(t.TempDir(), "params.txt"))
	assert.True(t, core.IsConfigError(err), "got %v, want config error", err)
}

func TestLoad_MissingFile(t *testing.T) {
	s := New()
	_, err := s.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, core.IsNotFoundError(err), "got %v, want not-found error", err)
}

func TestLoad_MalformedContent(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := s.Load(path)
	assert.True(t, core.IsParseError(err), "got %v, want parse error", err)
}
