package config

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// SourceConfig describes one catalogue source of the configuration file.
type SourceConfig struct {
	// URL of the catalogue document.
	URL string `yaml:"url,omitempty"`

	// Headers are added to the request, e.g. an Authorization header for a
	// private mirror.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Proxy is a SOCKS5 proxy used for this source.
	Proxy string `yaml:"proxy,omitempty"`

	// Timeout bounds the download, e.g. "90s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	UserAgent string `yaml:"userAgent,omitempty"`
}

// AnimationFile is the animation section of the configuration file.
// Pointer fields distinguish an explicit zero from an absent key.
type AnimationFile struct {
	Format            string    `yaml:"format,omitempty"`
	Seed              *int64    `yaml:"seed,omitempty"`
	FramesPerYear     int       `yaml:"framesPerYear,omitempty"`
	HoldFrames        *int      `yaml:"holdFrames,omitempty"`
	FadeMarkerFrames  *int      `yaml:"fadeMarker,omitempty"`
	FadeOutlineFrames *int      `yaml:"fadeOutline,omitempty"`
	SmoothDiscovery   *bool     `yaml:"smoothDiscovery,omitempty"`
	Extend            *float64  `yaml:"extend,omitempty"`
	Inverted          *bool     `yaml:"inverted,omitempty"`
	Width             float64   `yaml:"width,omitempty"`
	Height            float64   `yaml:"height,omitempty"`
	MassRange         []float64 `yaml:"massRange,omitempty,flow"`
	AxisRange         []float64 `yaml:"axisRange,omitempty,flow"`
}

// File represents the structure of the .exotimeline configuration file.
type File struct {
	// Defaults applies to every source.
	Defaults SourceConfig `yaml:"defaults,omitempty"`

	// Sources maps a name, used with fetch --source, to a catalogue source.
	Sources map[string]SourceConfig `yaml:"sources,omitempty"`

	Animation AnimationFile `yaml:"animation,omitempty"`
}

// GetSourceConfig returns the defaults merged with the named source.
// An empty name returns the defaults alone.
func (cf *File) GetSourceConfig(name string) (SourceConfig, error) {
	result := cf.Defaults
	result.Headers = maps.Clone(cf.Defaults.Headers)

	if name == "" {
		return result, nil
	}

	sc, ok := cf.Sources[name]
	if !ok {
		return SourceConfig{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownSource, name, cf.SourceNames())
	}
	if sc.URL != "" {
		result.URL = sc.URL
	}
	if sc.Proxy != "" {
		result.Proxy = sc.Proxy
	}
	if sc.Timeout > 0 {
		result.Timeout = sc.Timeout
	}
	if sc.UserAgent != "" {
		result.UserAgent = sc.UserAgent
	}
	if len(sc.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(sc.Headers))
		}
		maps.Copy(result.Headers, sc.Headers)
	}
	return result, nil
}

// SourceNames returns the configured source names in sorted order.
func (cf *File) SourceNames() []string {
	return slices.Sorted(maps.Keys(cf.Sources))
}
