package source

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"ArticleLibrary/internal/domain"
)

// Decoder turns one input document of a given format into candidate articles.
type Decoder interface {
	Format() string
	Decode(r io.Reader) ([]domain.Article, error)
}

// Registry keeps a mapping from format names to decoders.
type Registry struct {
	decoders map[string]Decoder
}

// NewRegistry builds a registry holding the given decoders.
func NewRegistry(decoders ...Decoder) *Registry {
	r := &Registry{decoders: map[string]Decoder{}}
	for _, d := range decoders {
		r.Register(d)
	}
	return r
}

// Register adds or replaces a decoder.
func (r *Registry) Register(decoder Decoder) {
	if r.decoders == nil {
		r.decoders = map[string]Decoder{}
	}
	r.decoders[decoder.Format()] = decoder
}

// Resolve returns the decoder for format or an error if it is absent.
func (r *Registry) Resolve(format string) (Decoder, error) {
	if decoder, ok := r.decoders[format]; ok {
		return decoder, nil
	}
	return nil, fmt.Errorf("decoder %s is not registered (known: %s)", format, strings.Join(r.Formats(), ", "))
}

// Formats lists registered format names.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.decoders))
	for name := range r.decoders {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}
