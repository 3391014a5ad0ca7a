// Package config loads the YAML settings shared by the command line tools
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jpfielding/dcmattr.go/pkg/dicom"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/stream"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/transfer"
)

// ErrUnknownSyntax is a transfer syntax UID missing from the registry
var ErrUnknownSyntax = errors.New("config: unknown transfer syntax")

// Log selects where and how the tools log
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	JSON  bool   `yaml:"json"`
}

// Config is the file layout
type Config struct {
	Settings       dicom.Settings     `yaml:"settings"`
	Write          dicom.WriteOptions `yaml:"write"`
	TransferSyntax string             `yaml:"transfer_syntax"`
	DeferThreshold int64              `yaml:"defer_threshold"`
	Log            Log                `yaml:"log"`
}

// Default is used for anything a file leaves out
func Default() Config {
	return Config{
		Settings:       dicom.DefaultSettings,
		TransferSyntax: string(transfer.ExplicitVRLittleEndian),
		Log:            Log{Level: "INFO"},
	}
}

// Parse reads YAML over the defaults, rejecting unknown keys
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := cfg.Syntax(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load parses the file at path. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Syntax resolves the configured transfer syntax UID
func (c Config) Syntax() (transfer.Syntax, error) {
	ts, ok := transfer.Lookup(c.TransferSyntax)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSyntax, c.TransferSyntax)
	}
	return ts, nil
}

// ReadOptions returns the stream options the config describes
func (c Config) ReadOptions() stream.Options {
	return stream.Options{DeferThreshold: c.DeferThreshold, Settings: c.Settings}
}

// Marshal renders the config as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
