package svgslice

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestSlicer_Extract(t *testing.T) {
	assert := assert.New(t)
	dst := filepath.Join(t.TempDir(), "extracted_icons")

	res, err := Extract(sprite, dst, 8, 5)
	assert.NoError(err)
	assert.Len(res.Files, 40)
	assert.Len(listDir(t, dst), 40)
	assert.Equal(7, res.Paths)
	assert.Equal(5, res.Assigned)
	assert.Equal(2, res.Unassigned)

	assert.Equal(filepath.Join(dst, "icon_01_row1_col1.svg"), res.Files[0])
	assert.Equal(filepath.Join(dst, "icon_40_row5_col8.svg"), res.Files[39])

	data, err := os.ReadFile(res.Files[0])
	assert.NoError(err)
	first := string(data)
	assert.Equal(2, strings.Count(first, "<path "))
	assert.Contains(first, `<path xmlns="http://www.w3.org/2000/svg" class="st0" d="M20,20h100v80H20V20z" />`)
	assert.Contains(first, `viewBox="0.0 0.0 162.5 125.0"`)
	assert.Contains(first, ".st0{fill:#2E3192;}")
	assert.True(strings.Index(first, "M20,20") < strings.Index(first, "M 50"))

	data, err = os.ReadFile(filepath.Join(dst, "icon_10_row2_col2.svg"))
	assert.NoError(err)
	assert.Contains(string(data), `d="M170 130 L180 140"`)

	data, err = os.ReadFile(res.Files[39])
	assert.NoError(err)
	assert.Contains(string(data), `<title>corner</title></path>`)
	assert.Contains(string(data), `viewBox="1137.5 500.0 162.5 125.0"`)
}

func TestSlicer_EveryPathAtMostOnce(t *testing.T) {
	dst := t.TempDir()

	res, err := Extract(sprite, dst, 8, 5)
	assert.NoError(t, err)

	counts := make(map[string]int)
	for _, f := range res.Files {
		data, err := os.ReadFile(f)
		assert.NoError(t, err)
		for _, line := range strings.Split(string(data), "\n") {
			if strings.HasPrefix(line, "    <path ") {
				counts[line]++
			}
		}
	}
	assert.Len(t, counts, 5)
	for line, n := range counts {
		assert.Equal(t, 1, n, line)
	}
	assert.NotContains(t, counts, `    <path xmlns="http://www.w3.org/2000/svg" d="Z" />`)
}

func TestSlicer_Idempotent(t *testing.T) {
	assert := assert.New(t)
	dst := filepath.Join(t.TempDir(), "out")

	_, err := Extract(sprite, dst, 8, 5)
	assert.NoError(err)
	first := listDir(t, dst)
	before, err := os.ReadFile(filepath.Join(dst, "icon_02_row1_col2.svg"))
	assert.NoError(err)

	assert.NoError(os.RemoveAll(dst))
	_, err = Extract(sprite, dst, 8, 5)
	assert.NoError(err)
	after, err := os.ReadFile(filepath.Join(dst, "icon_02_row1_col2.svg"))
	assert.NoError(err)

	assert.Equal(first, listDir(t, dst))
	assert.Equal(before, after)
}

func TestSlicer_CustomGrid(t *testing.T) {
	assert := assert.New(t)

	s := NewSlicer()
	s.Columns, s.Rows = 2, 1

	var names []string
	s.Progress = func(ic *Icon) {
		names = append(names, ic.Name())
	}
	res, err := s.Extract(sprite, t.TempDir())
	assert.NoError(err)
	assert.Equal([]string{"icon_01_row1_col1.svg", "icon_02_row1_col2.svg"}, names)
	assert.Equal(res.Paths, res.Assigned+res.Unassigned)
	assert.Equal(2, res.Unassigned)
}

func TestSlicer_MissingSource(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "extracted_icons")

	_, err := Extract(filepath.Join("testdata", "missing.svg"), dst, 8, 5)
	assert.ErrorIs(t, err, ErrSourceNotFound)

	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestSlicer_InvalidOptions(t *testing.T) {
	assert := assert.New(t)
	dst := filepath.Join(t.TempDir(), "out")

	_, err := Extract(sprite, dst, 0, 5)
	assert.ErrorIs(err, ErrInvalidGrid)

	s := NewSlicer()
	s.IconSize = 0
	_, err = s.Extract(sprite, dst)
	assert.ErrorIs(err, ErrInvalidGrid)

	_, err = os.Stat(dst)
	assert.True(os.IsNotExist(err))
}

func TestSlicer_IconsWithoutPaths(t *testing.T) {
	doc, err := Decode(strings.NewReader(`<svg viewBox="0 0 80 50"/>`))
	assert.NoError(t, err)

	icons, grid, err := NewSlicer().Icons(doc)
	assert.NoError(t, err)
	assert.Equal(t, 40, grid.Len())
	assert.Len(t, icons, 40)
	for _, ic := range icons {
		assert.Empty(t, ic.Paths)
		assert.Equal(t, 10.0, ic.Cell.Width)
	}
}
