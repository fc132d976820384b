package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is a named bounding box a derivative must fit in.
type Size struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%s:%dx%d", s.Name, s.Width, s.Height)
}

// SizeSet is the closed, ordered set of sizes the service renders.
type SizeSet struct {
	sizes  []Size
	byName map[string]Size
}

func DefaultSizes() *SizeSet {
	set, _ := NewSizeSet([]Size{
		{Name: "SMALL", Width: 150, Height: 150},
		{Name: "GRID", Width: 200, Height: 200},
		{Name: "PREVIEW", Width: 400, Height: 400},
	})
	return set
}

func NewSizeSet(sizes []Size) (*SizeSet, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("size set is empty")
	}
	set := &SizeSet{byName: make(map[string]Size, len(sizes))}
	for _, s := range sizes {
		s.Name = strings.ToUpper(strings.TrimSpace(s.Name))
		if s.Name == "" {
			return nil, fmt.Errorf("size with empty name")
		}
		if s.Width <= 0 || s.Height <= 0 {
			return nil, fmt.Errorf("size %s: dimensions must be positive", s.Name)
		}
		if _, dup := set.byName[s.Name]; dup {
			return nil, fmt.Errorf("size %s declared twice", s.Name)
		}
		set.byName[s.Name] = s
		set.sizes = append(set.sizes, s)
	}
	return set, nil
}

// ParseSizeSet parses "NAME:WxH,NAME:WxH".
func ParseSizeSet(list string) (*SizeSet, error) {
	var sizes []Size
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, dims, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid size %q: want NAME:WxH", part)
		}
		ws, hs, ok := strings.Cut(strings.ToLower(dims), "x")
		if !ok {
			return nil, fmt.Errorf("invalid size %q: want NAME:WxH", part)
		}
		w, err := strconv.Atoi(strings.TrimSpace(ws))
		if err != nil {
			return nil, fmt.Errorf("invalid width in %q: %w", part, err)
		}
		h, err := strconv.Atoi(strings.TrimSpace(hs))
		if err != nil {
			return nil, fmt.Errorf("invalid height in %q: %w", part, err)
		}
		sizes = append(sizes, Size{Name: name, Width: w, Height: h})
	}
	return NewSizeSet(sizes)
}

func (s *SizeSet) All() []Size {
	out := make([]Size, len(s.sizes))
	copy(out, s.sizes)
	return out
}

// Lookup resolves a size name case-insensitively.
func (s *SizeSet) Lookup(name string) (Size, bool) {
	size, ok := s.byName[strings.ToUpper(strings.TrimSpace(name))]
	return size, ok
}

// Resolve maps requested names to sizes, defaulting to the whole set.
func (s *SizeSet) Resolve(names []string) ([]Size, error) {
	if len(names) == 0 {
		return s.All(), nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]Size, 0, len(names))
	for _, n := range names {
		size, ok := s.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSize, n)
		}
		if seen[size.Name] {
			continue
		}
		seen[size.Name] = true
		out = append(out, size)
	}
	return out, nil
}

// Largest returns the size with the biggest box area.
func (s *SizeSet) Largest() Size {
	best := s.sizes[0]
	for _, size := range s.sizes[1:] {
		if size.Width*size.Height > best.Width*best.Height {
			best = size
		}
	}
	return best
}

// Fit scales (w, h) to fit inside the box, preserving aspect ratio and never
// enlarging the source.
func (s Size) Fit(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= s.Width && h <= s.Height {
		return w, h
	}
	scale := min(float64(s.Width)/float64(w), float64(s.Height)/float64(h))
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	return max(1, min(nw, s.Width)), max(1, min(nh, s.Height))
}
