// Package installer assembles the distribution folder: framework binaries,
// resources, the interface manifest, documentation and the agent.
package installer

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrMissingDeps is returned when MaaFramework has not been unpacked into deps/.
var ErrMissingDeps = errors.New(`please download the MaaFramework to "deps" first (请先下载 MaaFramework 到 "deps")`)

type Installer struct {
	cfg Config
	log zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Installer {
	return &Installer{cfg: cfg.withDefaults(), log: logger}
}

// Run performs every install step in order and reports the destination to out.
func Run(cfg Config, logger zerolog.Logger, out io.Writer) error {
	in := New(cfg, logger)
	steps := []struct {
		name string
		fn   func() error
	}{
		{"deps", in.InstallDeps},
		{"resource", in.InstallResource},
		{"chores", in.InstallChores},
		{"agent", in.InstallAgent},
	}
	for _, s := range steps {
		in.log.Debug().Str("step", s.name).Msg("Installing")
		if err := s.fn(); err != nil {
			return errors.Wrapf(err, "install %s", s.name)
		}
	}

	abs, err := filepath.Abs(in.cfg.Out)
	if err != nil {
		abs = in.cfg.Out
	}
	_, err = fmt.Fprintf(out, "Install to %s successfully.\n", abs)
	return err
}

// InstallDeps copies the framework runtime and the agent binaries.
func (in *Installer) InstallDeps() error {
	bin := in.cfg.root("deps", "bin")
	if !isDir(bin) {
		return ErrMissingDeps
	}

	if err := copyTree(bin, in.cfg.Out, depsIgnorePatterns...); err != nil {
		return err
	}
	return copyTree(in.cfg.root("deps", "share", "MaaAgentBinary"), in.cfg.out("MaaAgentBinary"))
}

// InstallResource configures the OCR model, copies resources and stamps the manifest version.
func (in *Installer) InstallResource() error {
	if err := ConfigureOCRModel(in.cfg.Root, in.log); err != nil {
		return err
	}

	if err := copyTree(in.cfg.root("assets", "resource"), in.cfg.out("resource")); err != nil {
		return err
	}
	if err := copyFile(in.cfg.root("assets", "interface.json"), in.cfg.out("interface.json")); err != nil {
		return err
	}

	previous, err := SetManifestVersion(in.cfg.out("interface.json"), in.cfg.Version)
	if err != nil {
		return err
	}
	in.log.Info().Str("from", previous).Str("to", in.cfg.Version).Msg("Stamped interface.json version")
	return nil
}

// InstallChores copies README, LICENSE and the platform's Python requirements.
func (in *Installer) InstallChores() error {
	for _, name := range []string{"README.md", "LICENSE"} {
		if err := copyFile(in.cfg.root(name), in.cfg.out(name)); err != nil {
			return err
		}
	}

	src := in.requirementsFile()
	if src == "" {
		in.log.Warn().Msg("No requirements file found, skipping")
		return nil
	}
	return copyFile(src, in.cfg.out("requirements.txt"))
}

// requirementsFile picks requirements-windows.txt when deps/bin ships DLLs and
// requirements-base.txt otherwise, falling back to requirements.txt.
func (in *Installer) requirementsFile() string {
	preferred := "requirements-base.txt"
	if in.targetsWindows() {
		preferred = "requirements-windows.txt"
	}
	for _, name := range []string{preferred, "requirements.txt"} {
		if p := in.cfg.root(name); exists(p) {
			return p
		}
	}
	return ""
}

func (in *Installer) targetsWindows() bool {
	dlls, err := filepath.Glob(filepath.Join(in.cfg.root("deps", "bin"), "*.dll"))
	return err == nil && len(dlls) > 0
}

// InstallAgent copies the agent directory.
func (in *Installer) InstallAgent() error {
	return copyTree(in.cfg.root("agent"), in.cfg.out("agent"))
}
