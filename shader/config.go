// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// MaxInstanceSlots bounds Config.Instances.
const MaxInstanceSlots = 16

// Config declares a shader's capabilities and sources.
type Config struct {
	Depth     bool `yaml:"depth"`
	Gradient  bool `yaml:"gradient"`
	Graphic   bool `yaml:"graphic"`
	Tint      bool `yaml:"tint"`
	Blend     bool `yaml:"blend"`
	Instances int  `yaml:"instances"`

	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`

	// VertexFile and FragmentFile are read by LoadConfigs, relative to the
	// YAML file, when the inline sources are empty.
	VertexFile   string `yaml:"vertex_file"`
	FragmentFile string `yaml:"fragment_file"`

	Names Names `yaml:"names"`
}

// Names overrides the attribute and uniform names the compiler binds and
// resolves. Empty fields take the defaults from DefaultNames.
type Names struct {
	Position string `yaml:"position"`
	Color    string `yaml:"color"`
	TexCoord string `yaml:"texcoord"`

	Camera    string `yaml:"camera"`
	Tint      string `yaml:"tint"`
	Translate string `yaml:"translate"`
	Scale     string `yaml:"scale"`
	Sampler   string `yaml:"sampler"`

	// Instance is the prefix of the instance-transform uniforms; slot i
	// resolves Instance followed by i ("transform0", "transform1", ...).
	Instance string `yaml:"instance"`
}

// DefaultNames returns the conventional names.
func DefaultNames() Names {
	return Names{
		Position:  "pos",
		Color:     "color",
		TexCoord:  "texpos",
		Camera:    "cam",
		Tint:      "tint",
		Translate: "tex_translate",
		Scale:     "tex_scale",
		Sampler:   "tex",
		Instance:  "transform",
	}
}

func (n Names) withDefaults() Names {
	d := DefaultNames()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&n.Position, d.Position)
	fill(&n.Color, d.Color)
	fill(&n.TexCoord, d.TexCoord)
	fill(&n.Camera, d.Camera)
	fill(&n.Tint, d.Tint)
	fill(&n.Translate, d.Translate)
	fill(&n.Scale, d.Scale)
	fill(&n.Sampler, d.Sampler)
	fill(&n.Instance, d.Instance)
	return n
}

// InstanceName returns the uniform name of instance slot i.
func (n Names) InstanceName(i int) string {
	return fmt.Sprintf("%s%d", n.withDefaults().Instance, i)
}

// Capabilities returns the capability record declared by c.
func (c Config) Capabilities() Capabilities {
	return Capabilities{
		Depth:     c.Depth,
		Gradient:  c.Gradient,
		Graphic:   c.Graphic,
		Tint:      c.Tint,
		Blend:     c.Blend,
		Instances: c.Instances,
	}
}

// Validate checks that c can be compiled.
func (c Config) Validate() error {
	if c.Vertex == "" {
		return fmt.Errorf("%w: empty vertex source", ErrInvalidConfig)
	}
	if c.Fragment == "" {
		return fmt.Errorf("%w: empty fragment source", ErrInvalidConfig)
	}
	if c.Instances < 0 || c.Instances > MaxInstanceSlots {
		return fmt.Errorf("%w: instances %d out of range [0, %d]", ErrInvalidConfig, c.Instances, MaxInstanceSlots)
	}
	return nil
}

// ParseConfigs decodes a YAML document mapping shader names to configs.
// File references are left unresolved.
func ParseConfigs(data []byte) (map[string]Config, error) {
	var set map[string]Config
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no shaders defined", ErrInvalidConfig)
	}
	return set, nil
}

// LoadConfigs reads a YAML shader set from path, inlines referenced source
// files and validates every entry.
func LoadConfigs(path string) (map[string]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader: load configs: %w", err)
	}
	set, err := ParseConfigs(data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for _, name := range SortedNames(set) {
		cfg := set[name]
		if cfg.Vertex == "" && cfg.VertexFile != "" {
			if cfg.Vertex, err = readSource(dir, cfg.VertexFile); err != nil {
				return nil, fmt.Errorf("shader %q: %w", name, err)
			}
		}
		if cfg.Fragment == "" && cfg.FragmentFile != "" {
			if cfg.Fragment, err = readSource(dir, cfg.FragmentFile); err != nil {
				return nil, fmt.Errorf("shader %q: %w", name, err)
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("shader %q: %w", name, err)
		}
		set[name] = cfg
	}
	return set, nil
}

// SortedNames returns the keys of set in lexical order.
func SortedNames(set map[string]Config) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func readSource(dir, file string) (string, error) {
	if !filepath.IsAbs(file) {
		file = filepath.Join(dir, file)
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
