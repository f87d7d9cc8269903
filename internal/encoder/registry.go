package encoder

import (
	"fmt"
	"image/png"
	"strings"
)

// priority is the order formats are listed and chosen in.
var priority = []string{"png", "jpeg"}

// Registry holds the available preview encoders keyed by format.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with the built-in encoders.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	r.Register(&PNGEncoder{Level: png.BestCompression})
	r.Register(&JPEGEncoder{})
	return r
}

// Register adds enc if it reports itself available, replacing any encoder
// already registered for the same format.
func (r *Registry) Register(enc Encoder) {
	if enc.Available() {
		r.encoders[enc.Format()] = enc
	}
}

// Get returns an encoder for the given format, or nil if unavailable.
// "jpg" is accepted as an alias for "jpeg".
func (r *Registry) Get(format string) Encoder {
	format = strings.ToLower(format)
	if format == "jpg" {
		format = "jpeg"
	}
	return r.encoders[format]
}

// Available returns all available format names.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// ResolveFormats filters requested formats to those available, dropping
// duplicates.  An empty result falls back to png.
func (r *Registry) ResolveFormats(requested []string) []string {
	var resolved []string
	seen := map[string]bool{}

	for _, f := range requested {
		enc := r.Get(f)
		if enc == nil || seen[enc.Format()] {
			continue
		}
		seen[enc.Format()] = true
		resolved = append(resolved, enc.Format())
	}

	if len(resolved) == 0 && r.encoders["png"] != nil {
		resolved = append(resolved, "png")
	}
	return resolved
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
