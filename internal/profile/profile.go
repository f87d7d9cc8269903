package profile

// Profile defines placeholder generation parameters for a target platform.
type Profile struct {
	Name           string
	ComponentsX    int      // horizontal components, 1-9
	ComponentsY    int      // vertical components, 1-9
	AspectAware    bool     // scale components to the source aspect ratio
	MaxDim         int      // downsample longest side before encoding (0 = off)
	PreviewWidths  []int    // widths of rendered placeholder previews
	PreviewFormats []string // preview formats in priority order
	Quality        int      // preview encoding quality 1-100
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:           "default",
		ComponentsX:    4,
		ComponentsY:    3,
		AspectAware:    true,
		MaxDim:         64,
		PreviewWidths:  []int{32},
		PreviewFormats: []string{"png"},
		Quality:        82,
	},
	"detailed": {
		Name:           "detailed",
		ComponentsX:    6,
		ComponentsY:    5,
		AspectAware:    true,
		MaxDim:         128,
		PreviewWidths:  []int{32, 64},
		PreviewFormats: []string{"png", "jpeg"},
		Quality:        85,
	},
	"minimal": {
		Name:        "minimal",
		ComponentsX: 3,
		ComponentsY: 3,
		MaxDim:      32,
		Quality:     78,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["default"]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profiles.
func Names() []string {
	return []string{"default", "detailed", "minimal"}
}

// Components returns the grid size for a w×h source.  Without AspectAware
// the configured counts are used as-is; otherwise the longer side keeps the
// larger configured count and the shorter side shrinks proportionally.
func (p Profile) Components(w, h int) (int, int) {
	cx, cy := clamp9(p.ComponentsX), clamp9(p.ComponentsY)
	if !p.AspectAware || w <= 0 || h <= 0 {
		return cx, cy
	}
	n := max(cx, cy)
	if w >= h {
		return n, clamp9(roundDiv(n*h, w))
	}
	return clamp9(roundDiv(n*w, h)), n
}

// Size is a preview output size.
type Size struct {
	Width, Height int
}

// PreviewSizes returns preview dimensions for a w×h source, keeping the
// aspect ratio and never exceeding the source width.
func (p Profile) PreviewSizes(w, h int) []Size {
	if w <= 0 || h <= 0 {
		return nil
	}
	seen := map[int]bool{}
	var result []Size
	for _, pw := range p.PreviewWidths {
		if pw <= 0 {
			continue
		}
		if pw > w {
			pw = w // don't upscale
		}
		if seen[pw] {
			continue
		}
		seen[pw] = true
		result = append(result, Size{Width: pw, Height: max(1, roundDiv(h*pw, w))})
	}
	return result
}

func clamp9(v int) int {
	if v < 1 {
		return 1
	}
	if v > 9 {
		return 9
	}
	return v
}

func roundDiv(a, b int) int {
	return (2*a + b) / (2 * b)
}
