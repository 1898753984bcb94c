// Package config loads nodegraph settings from a TOML file.
//
// A missing file yields [Default]. Keys that do not map to a setting are
// rejected so typos surface instead of being silently ignored.
//
//	[layout]
//	engine = "layered"
//
//	[layout.pipeline]
//	horizontal_spacing = 120
//
//	[cache]
//	enabled = true
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	ngerrors "github.com/matzehuels/nodegraph/pkg/errors"
	"github.com/matzehuels/nodegraph/pkg/layout"
	"github.com/matzehuels/nodegraph/pkg/layout/layered"
	"github.com/matzehuels/nodegraph/pkg/layout/pipeline"
)

// DefaultFile is the config file name looked up when no path is given.
const DefaultFile = "nodegraph.toml"

// Config is the complete configuration.
type Config struct {
	Layout Layout `toml:"layout"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Layout selects and tunes the layout engines.
type Layout struct {
	Engine   string   `toml:"engine"`
	Pipeline Pipeline `toml:"pipeline"`
	Layered  Layered  `toml:"layered"`
}

// Pipeline holds the geometry of the pipeline engines.
type Pipeline struct {
	NodeWidthMin      float64 `toml:"node_width_min"`
	NodeHeightMin     float64 `toml:"node_height_min"`
	HorizontalSpacing float64 `toml:"horizontal_spacing"`
	VerticalSpacing   float64 `toml:"vertical_spacing"`
	StartTop          float64 `toml:"start_top"`
	StartLeft         float64 `toml:"start_left"`
}

// Layered holds the separations and translation of the layered engine.
type Layered struct {
	RankSep float64 `toml:"rank_sep"`
	NodeSep float64 `toml:"node_sep"`
	OffsetX float64 `toml:"offset_x"`
	OffsetY float64 `toml:"offset_y"`
}

// Cache controls the on-disk layout cache used by the CLI. An empty Dir
// means the per-user cache directory.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := pipeline.DefaultOptions()
	l := layered.DefaultOptions()
	return Config{
		Layout: Layout{
			Engine: layered.Name,
			Pipeline: Pipeline{
				NodeWidthMin:      p.NodeWidthMin,
				NodeHeightMin:     p.NodeHeightMin,
				HorizontalSpacing: p.HorizontalSpacing,
				VerticalSpacing:   p.VerticalSpacing,
				StartTop:          p.StartTop,
				StartLeft:         p.StartLeft,
			},
			Layered: Layered{
				RankSep: l.RankSep,
				NodeSep: l.NodeSep,
				OffsetX: l.OffsetX,
				OffsetY: l.OffsetY,
			},
		},
		Cache:  Cache{Enabled: true},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads the file at path over [Default]. A missing file is not an
// error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, ngerrors.Wrap(ngerrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(string(data))
}

// Parse decodes TOML over [Default].
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, ngerrors.Wrap(ngerrors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, ngerrors.New(ngerrors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	p := c.Layout.Pipeline
	if p.NodeWidthMin <= 0 || p.NodeHeightMin <= 0 {
		return ngerrors.New(ngerrors.ErrCodeInvalidConfig, "layout.pipeline node minimums must be positive")
	}
	if p.HorizontalSpacing < 0 || p.VerticalSpacing < 0 {
		return ngerrors.New(ngerrors.ErrCodeInvalidConfig, "layout.pipeline spacing must not be negative")
	}
	l := c.Layout.Layered
	if l.RankSep < 0 || l.NodeSep < 0 {
		return ngerrors.New(ngerrors.ErrCodeInvalidConfig, "layout.layered separations must not be negative")
	}
	if c.Layout.Engine == "" {
		return ngerrors.New(ngerrors.ErrCodeInvalidConfig, "layout.engine must not be empty")
	}
	return nil
}

// PipelineOptions returns the pipeline options, centered or not.
func (c Config) PipelineOptions(centered bool) pipeline.Options {
	p := c.Layout.Pipeline
	return pipeline.Options{
		NodeWidthMin:      p.NodeWidthMin,
		NodeHeightMin:     p.NodeHeightMin,
		HorizontalSpacing: p.HorizontalSpacing,
		VerticalSpacing:   p.VerticalSpacing,
		StartTop:          p.StartTop,
		StartLeft:         p.StartLeft,
		Centered:          centered,
	}
}

// LayeredOptions returns the layered options. Unmeasured nodes use the
// pipeline minimums.
func (c Config) LayeredOptions() layered.Options {
	l := c.Layout.Layered
	return layered.Options{
		RankSep:       l.RankSep,
		NodeSep:       l.NodeSep,
		OffsetX:       l.OffsetX,
		OffsetY:       l.OffsetY,
		NodeWidthMin:  c.Layout.Pipeline.NodeWidthMin,
		NodeHeightMin: c.Layout.Pipeline.NodeHeightMin,
	}
}

// Register adds the built-in engines, configured by c, to r. Existing
// registrations under the same names are replaced.
func (c Config) Register(r *layout.Registry) {
	r.Register(pipeline.Name, pipeline.New(c.PipelineOptions(false)))
	r.Register(pipeline.CenteredName, pipeline.New(c.PipelineOptions(true)))
	r.Register(layered.Name, layered.New(c.LayeredOptions()))
}
