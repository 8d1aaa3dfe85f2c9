package bloat

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBloatThisBinaryRecovers(t *testing.T) {
	require.NotPanics(t, BloatThisBinary)
}

func TestSink(t *testing.T) {
	Sink(42 + -13)
	assert.Equal(t, int64(29), SinkValue())
}

func TestAnalyzeSelf(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("test binary is only ELF on linux")
	}
	exe, err := os.Executable()
	require.NoError(t, err)

	r, err := Analyze(exe)
	require.NoError(t, err)
	assert.Equal(t, exe, r.Path)
	assert.NotZero(t, r.Text, "a Go binary always has executable sections")
	assert.NotZero(t, r.BSS)
	assert.Equal(t, r.Text+r.Data+r.BSS, r.Total)

	names := make(map[string]bool, len(r.Sections))
	var sum uint64
	for _, s := range r.Sections {
		names[s.Name] = true
		sum += s.Size
	}
	assert.True(t, names[".text"])
	assert.Equal(t, r.Total, sum)
}

func TestAnalyzeRejectsNonELF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-elf")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))
	_, err := Analyze(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestDiff(t *testing.T) {
	base := &Report{
		Path: "base", Text: 100, Data: 20, BSS: 10, Total: 130,
		Sections: []Section{
			{Name: ".text", Size: 100},
			{Name: ".data", Size: 20},
			{Name: ".bss", Size: 10},
		},
	}
	target := &Report{
		Path: "target", Text: 140, Data: 20, BSS: 6, Total: 166,
		Sections: []Section{
			{Name: ".text", Size: 140},
			{Name: ".data", Size: 20},
			{Name: ".bss", Size: 6},
			{Name: ".rodata", Size: 8},
		},
	}

	d := Diff(base, target)
	assert.Equal(t, int64(40), d.Text)
	assert.Equal(t, int64(0), d.Data)
	assert.Equal(t, int64(-4), d.BSS)
	assert.Equal(t, int64(36), d.Total)

	// Unchanged sections are omitted; new and changed ones are kept sorted.
	require.Len(t, d.Sections, 3)
	assert.Equal(t, SectionDelta{Name: ".bss", Base: 10, Target: 6, Delta: -4}, d.Sections[0])
	assert.Equal(t, SectionDelta{Name: ".rodata", Base: 0, Target: 8, Delta: 8}, d.Sections[1])
	assert.Equal(t, SectionDelta{Name: ".text", Base: 100, Target: 140, Delta: 40}, d.Sections[2])
}

func TestDiffRemovedSection(t *testing.T) {
	base := &Report{Sections: []Section{{Name: ".debugfoo", Size: 16}}}
	target := &Report{}
	d := Diff(base, target)
	require.Len(t, d.Sections, 1)
	assert.Equal(t, int64(-16), d.Sections[0].Delta)
	assert.Equal(t, uint64(16), d.Sections[0].Base)
}
