// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format identifies a manifest syntax.
type Format string

const (
	FormatCargo Format = "cargo"
	FormatTOML  Format = "toml"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatHCL   Format = "hcl"
)

// UnsupportedFormatError reports a manifest whose file name matches no
// known format.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported manifest format %q (expected Cargo.toml, .toml, .yaml, .yml, .json, .jsonc, or .hcl)", e.Path)
}

// DetectFormat returns the manifest format implied by path.
func DetectFormat(path string) (Format, error) {
	base := filepath.Base(path)
	if base == "Cargo.toml" {
		return FormatCargo, nil
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", &UnsupportedFormatError{Path: path}
}

// LoadFile reads and parses the manifest at path, then validates it.
func LoadFile(path string) (*Config, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	cfg, err := Parse(format, filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the given format. filename is only used in HCL
// diagnostics.
func Parse(format Format, filename string, data []byte) (*Config, error) {
	switch format {
	case FormatCargo:
		return ParseCargo(data)
	case FormatTOML:
		return ParseTOML(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatJSON:
		return ParseJSON(data)
	case FormatHCL:
		return ParseHCL(filename, data)
	}
	return nil, fmt.Errorf("unknown manifest format %q", format)
}

// ParseYAML decodes a YAML manifest. An empty document is an empty
// Config.
func ParseYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ParseJSON decodes a JSON manifest. Comments and trailing commas are
// allowed.
func ParseJSON(data []byte) (*Config, error) {
	cfg := &Config{}
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseTOML decodes a manifest whose keys are at the top level.
func ParseTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	metadata, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, err
	}
	if err := rejectUndecoded(metadata.Undecoded(), nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

// cargoManifest is the part of Cargo.toml renode-run reads.
type cargoManifest struct {
	Package struct {
		Metadata struct {
			Renode *Config `toml:"renode"`
		} `toml:"metadata"`
	} `toml:"package"`
}

var cargoTablePath = []string{"package", "metadata", "renode"}

// ParseCargo decodes the [package.metadata.renode] table of a
// Cargo.toml. The rest of the file is ignored.
func ParseCargo(data []byte) (*Config, error) {
	var manifest cargoManifest
	metadata, err := toml.Decode(string(data), &manifest)
	if err != nil {
		return nil, err
	}
	if err := rejectUndecoded(metadata.Undecoded(), cargoTablePath); err != nil {
		return nil, err
	}
	if manifest.Package.Metadata.Renode == nil {
		return &Config{}, nil
	}
	return manifest.Package.Metadata.Renode, nil
}

// rejectUndecoded fails on the first undecoded key below prefix.
func rejectUndecoded(keys []toml.Key, prefix []string) error {
	for _, key := range keys {
		if len(key) <= len(prefix) || !hasPrefix(key, prefix) {
			continue
		}
		return fmt.Errorf("unknown key %q", key.String())
	}
	return nil
}

func hasPrefix(key toml.Key, prefix []string) bool {
	for i, part := range prefix {
		if key[i] != part {
			return false
		}
	}
	return true
}

// ParseHCL decodes an HCL manifest. filename only labels diagnostics.
func ParseHCL(filename string, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	cfg := &Config{}
	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding HCL: %s", diags.Error())
	}
	return cfg, nil
}
