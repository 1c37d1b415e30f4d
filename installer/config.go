package installer

import (
	"path/filepath"
)

// DefaultVersion is written to interface.json when no version is given.
const DefaultVersion = "v0.0.1"

// Config locates the project tree and the distribution folder.
type Config struct {
	// Root is the project working directory holding deps/, assets/, agent/.
	Root string
	// Out is the install directory, <Root>/install when empty.
	Out string
	// Version replaces the "version" field of interface.json.
	Version string
}

func (c Config) withDefaults() Config {
	if c.Root == "" {
		c.Root = "."
	}
	if c.Out == "" {
		c.Out = filepath.Join(c.Root, "install")
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	return c
}

func (c Config) root(elem ...string) string {
	return filepath.Join(append([]string{c.Root}, elem...)...)
}

func (c Config) out(elem ...string) string {
	return filepath.Join(append([]string{c.Out}, elem...)...)
}
