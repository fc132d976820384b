package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizeSet(t *testing.T) {
	set, err := ParseSizeSet("small:150x150, GRID:200X200,preview:400x300")
	require.NoError(t, err)

	all := set.All()
	require.Len(t, all, 3)
	assert.Equal(t, Size{Name: "SMALL", Width: 150, Height: 150}, all[0])
	assert.Equal(t, Size{Name: "GRID", Width: 200, Height: 200}, all[1])
	assert.Equal(t, Size{Name: "PREVIEW", Width: 400, Height: 300}, all[2])
}

func TestParseSizeSet_Invalid(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"empty", ""},
		{"missing dims", "SMALL"},
		{"missing x", "SMALL:150"},
		{"bad width", "SMALL:ax150"},
		{"zero height", "SMALL:150x0"},
		{"duplicate", "SMALL:150x150,small:10x10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSizeSet(tt.spec)
			assert.Error(t, err)
		})
	}
}

func TestSizeSet_Resolve(t *testing.T) {
	set := DefaultSizes()

	sizes, err := set.Resolve(nil)
	require.NoError(t, err)
	assert.Len(t, sizes, 3, "no names means every configured size")

	sizes, err = set.Resolve([]string{"grid", "SMALL", "Grid"})
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, "GRID", sizes[0].Name)
	assert.Equal(t, "SMALL", sizes[1].Name)

	_, err = set.Resolve([]string{"HUGE"})
	assert.ErrorIs(t, err, ErrUnknownSize)
}

func TestSizeSet_Largest(t *testing.T) {
	assert.Equal(t, "PREVIEW", DefaultSizes().Largest().Name)
}

func TestSize_Fit(t *testing.T) {
	box := Size{Name: "SMALL", Width: 150, Height: 150}

	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"landscape", 1600, 1200, 150, 113},
		{"portrait", 600, 1200, 75, 150},
		{"square", 1000, 1000, 150, 150},
		{"smaller than box is kept", 100, 40, 100, 40},
		{"one side inside box", 300, 100, 150, 50},
		{"extreme panorama keeps a pixel", 100000, 10, 150, 1},
		{"degenerate", 0, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := box.Fit(tt.w, tt.h)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
			assert.LessOrEqual(t, w, box.Width)
			assert.LessOrEqual(t, h, box.Height)
		})
	}
}

func TestSize_FitPreservesAspect(t *testing.T) {
	box := Size{Name: "PREVIEW", Width: 400, Height: 400}
	for _, dims := range [][2]int{{1920, 1080}, {1080, 1920}, {4032, 3024}, {801, 799}} {
		w, h := box.Fit(dims[0], dims[1])
		src := float64(dims[0]) / float64(dims[1])
		got := float64(w) / float64(h)
		assert.InDelta(t, src, got, src*0.01+1.0/float64(h))
	}
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("JPEG")
	assert.True(t, ok)
	assert.Equal(t, FormatJPEG, f)

	f, ok = ParseFormat(".webp")
	assert.True(t, ok)
	assert.Equal(t, FormatWebP, f)
	assert.Equal(t, "image/webp", f.ContentType())

	_, ok = ParseFormat("avif")
	assert.False(t, ok)
}
