// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule represents a single line replacement in a target file
type Rule struct {
	Old      string `json:"old" yaml:"old" hcl:"old"`                                                // Literal substring to replace
	New      string `json:"new" yaml:"new" hcl:"new"`                                                // Replacement substring
	TopLevel bool   `json:"top_level,omitempty" yaml:"top_level,omitempty" hcl:"top_level,optional"` // Apply to unindented lines too
}

// 📦 Target represents one file (or glob of files) to patch
type Target struct {
	Path  string `json:"path" yaml:"path" hcl:"path,label"` // File path or doublestar glob
	Rules []Rule `json:"rules" yaml:"rules" hcl:"rule,block"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Targets []Target `json:"targets" yaml:"targets" hcl:"target,block"`
}

// 🎯 Default returns the built-in configuration: the duplicate const
// declarations in the message processor that this tool was written to fix.
func Default() *Config {
	return &Config{
		Targets: []Target{
			{
				Path: "src/services/whatsapp/messageProcessor.js",
				Rules: []Rule{
					{Old: "const userLanguage =", New: "userLanguage ="},
					{Old: "const mainMenu =", New: "mainMenu ="},
				},
			},
		},
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Targets) == 0 {
		return errors.Errorf("at least one target is required")
	}

	for i, target := range cfg.Targets {
		if target.Path == "" {
			return errors.Errorf("target %d: path is required", i)
		}
		if len(target.Rules) == 0 {
			return errors.Errorf("target %d: at least one rule is required", i)
		}
		for j, rule := range target.Rules {
			if rule.Old == "" {
				return errors.Errorf("target %d rule %d: old is required", i, j)
			}
			if rule.Old == rule.New {
				return errors.Errorf("target %d rule %d: old and new are identical", i, j)
			}
		}

		// Clean up paths
		cfg.Targets[i].Path = filepath.Clean(target.Path)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	paths := make([]string, len(cfg.Targets))
	rules := 0
	for i, t := range cfg.Targets {
		paths[i] = t.Path
		rules += len(t.Rules)
	}
	return fmt.Sprintf("%s (%d rules)", strings.Join(paths, ", "), rules)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
