package resolve

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed fallback.toml
var fallbackTOML []byte

// Provider supplies default dependency data for resolution fallback and
// the size annotations shown on graph edges.
type Provider interface {
	// Mapping returns a parent→children dependency mapping.
	Mapping() map[string][]string
	// Sizes returns human-readable install sizes keyed by package name.
	Sizes() map[string]string
}

type fallbackData struct {
	Dependencies map[string][]string `toml:"dependencies"`
	Sizes        map[string]string   `toml:"sizes"`
}

type defaultProvider struct {
	data fallbackData
}

var (
	defaultOnce sync.Once
	defaultProv *defaultProvider
)

// DefaultData returns the provider backed by the bundled fallback dataset.
// The dataset is embedded at build time; decoding it cannot fail for a
// released binary, so a decode error panics at first use.
func DefaultData() Provider {
	defaultOnce.Do(func() {
		var data fallbackData
		if err := toml.Unmarshal(fallbackTOML, &data); err != nil {
			panic(fmt.Sprintf("resolve: bundled fallback data is invalid: %v", err))
		}
		defaultProv = &defaultProvider{data: data}
	})
	return defaultProv
}

// Mapping returns a copy of the bundled dependency mapping so callers
// cannot mutate the canonical dataset.
func (p *defaultProvider) Mapping() map[string][]string {
	out := make(map[string][]string, len(p.data.Dependencies))
	for parent, children := range p.data.Dependencies {
		out[parent] = append(make([]string, 0, len(children)), children...)
	}
	return out
}

// Sizes returns a copy of the bundled size table.
func (p *defaultProvider) Sizes() map[string]string {
	out := make(map[string]string, len(p.data.Sizes))
	for k, v := range p.data.Sizes {
		out[k] = v
	}
	return out
}

// StaticData is a Provider with fixed in-memory data, for tests and
// embedding callers that bring their own defaults.
type StaticData struct {
	Deps      map[string][]string
	SizeTable map[string]string
}

// Mapping returns the static dependency mapping.
func (s StaticData) Mapping() map[string][]string { return s.Deps }

// Sizes returns the static size table.
func (s StaticData) Sizes() map[string]string { return s.SizeTable }
