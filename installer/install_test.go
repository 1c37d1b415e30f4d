package installer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const sampleManifest = `{
    // shown in the launcher title
    "name": "MaaEnd",
    "version": "v0.0.0",
    "description": "终末地小助手",
    "agent": {
        "child_exec": "agent/go-service",
        "child_args": [],
    },
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// newProject lays out a minimal project tree; windows controls whether deps/bin ships DLLs.
func newProject(t *testing.T, windows bool) string {
	t.Helper()
	root := t.TempDir()

	lib, dbg := "libMaaFramework.so", "libMaaDbgControlUnit.so"
	if windows {
		lib, dbg = "MaaFramework.dll", "MaaDbgControlUnit.dll"
	}
	writeFile(t, filepath.Join(root, "deps", "bin", lib), "framework")
	writeFile(t, filepath.Join(root, "deps", "bin", dbg), "skip")
	writeFile(t, filepath.Join(root, "deps", "bin", "libMaaRpc.so"), "skip")
	writeFile(t, filepath.Join(root, "deps", "bin", "MaaHttpCli.exe"), "skip")
	writeFile(t, filepath.Join(root, "deps", "bin", "plugins", "libMaaThriftControlUnit.so"), "skip")
	writeFile(t, filepath.Join(root, "deps", "share", "MaaAgentBinary", "minitouch", "arm64", "minitouch"), "bin")

	writeFile(t, filepath.Join(root, "assets", "resource", "pipeline", "resetPosition.json"), "{}")
	writeFile(t, filepath.Join(root, "assets", "resource", "image", "common", "其他.png"), "png")
	writeFile(t, filepath.Join(root, "assets", "interface.json"), sampleManifest)
	writeFile(t, filepath.Join(root, "assets", "MaaCommonAssets", "OCR", "ppocr_v5", "zh_cn", "rec.onnx"), "model")

	writeFile(t, filepath.Join(root, "README.md"), "# MaaEnd")
	writeFile(t, filepath.Join(root, "LICENSE"), "AGPL")
	writeFile(t, filepath.Join(root, "requirements-base.txt"), "maafw")
	writeFile(t, filepath.Join(root, "requirements-windows.txt"), "maafw\npywin32")
	writeFile(t, filepath.Join(root, "agent", "go-service", "main.go"), "package main")
	return root
}

func TestRunInstallsEverything(t *testing.T) {
	root := newProject(t, false)
	var out bytes.Buffer

	err := Run(Config{Root: root, Version: "v1.2.3"}, zerolog.Nop(), &out)
	require.NoError(t, err)

	install := filepath.Join(root, "install")
	assert.FileExists(t, filepath.Join(install, "libMaaFramework.so"))
	assert.FileExists(t, filepath.Join(install, "MaaAgentBinary", "minitouch", "arm64", "minitouch"))
	assert.FileExists(t, filepath.Join(install, "resource", "pipeline", "resetPosition.json"))
	assert.FileExists(t, filepath.Join(install, "resource", "image", "common", "其他.png"))
	assert.FileExists(t, filepath.Join(install, "resource", "model", "ocr", "rec.onnx"))
	assert.FileExists(t, filepath.Join(install, "README.md"))
	assert.FileExists(t, filepath.Join(install, "LICENSE"))
	assert.FileExists(t, filepath.Join(install, "agent", "go-service", "main.go"))
	assert.Equal(t, "maafw", readFile(t, filepath.Join(install, "requirements.txt")))

	manifest := readFile(t, filepath.Join(install, "interface.json"))
	assert.Equal(t, "v1.2.3", gjson.Get(manifest, "version").String())

	assert.True(t, strings.HasPrefix(out.String(), "Install to "))
	assert.Contains(t, out.String(), "successfully.")
}

func TestInstallDepsSkipsIgnoredComponents(t *testing.T) {
	root := newProject(t, true)
	in := New(Config{Root: root}, zerolog.Nop())

	require.NoError(t, in.InstallDeps())

	install := filepath.Join(root, "install")
	assert.FileExists(t, filepath.Join(install, "MaaFramework.dll"))
	assert.NoFileExists(t, filepath.Join(install, "MaaDbgControlUnit.dll"))
	assert.NoFileExists(t, filepath.Join(install, "libMaaRpc.so"))
	assert.NoFileExists(t, filepath.Join(install, "MaaHttpCli.exe"))
	assert.NoFileExists(t, filepath.Join(install, "plugins", "libMaaThriftControlUnit.so"))
}

func TestInstallDepsRequiresFramework(t *testing.T) {
	in := New(Config{Root: t.TempDir()}, zerolog.Nop())
	assert.ErrorIs(t, in.InstallDeps(), ErrMissingDeps)
}

func TestInstallDepsMergesIntoExistingInstall(t *testing.T) {
	root := newProject(t, false)
	writeFile(t, filepath.Join(root, "install", "keep.txt"), "old")
	in := New(Config{Root: root}, zerolog.Nop())

	require.NoError(t, in.InstallDeps())
	require.NoError(t, in.InstallDeps())
	assert.FileExists(t, filepath.Join(root, "install", "keep.txt"))
}

func TestInstallChoresPicksWindowsRequirements(t *testing.T) {
	root := newProject(t, true)
	in := New(Config{Root: root}, zerolog.Nop())

	require.NoError(t, in.InstallChores())
	assert.Equal(t, "maafw\npywin32", readFile(t, filepath.Join(root, "install", "requirements.txt")))
}

func TestInstallChoresFallsBackToPlainRequirements(t *testing.T) {
	root := newProject(t, false)
	require.NoError(t, os.Remove(filepath.Join(root, "requirements-base.txt")))
	writeFile(t, filepath.Join(root, "requirements.txt"), "plain")
	in := New(Config{Root: root}, zerolog.Nop())

	require.NoError(t, in.InstallChores())
	assert.Equal(t, "plain", readFile(t, filepath.Join(root, "install", "requirements.txt")))
}

func TestInstallChoresWithoutRequirements(t *testing.T) {
	root := newProject(t, false)
	require.NoError(t, os.Remove(filepath.Join(root, "requirements-base.txt")))
	in := New(Config{Root: root}, zerolog.Nop())

	require.NoError(t, in.InstallChores())
	assert.DirExists(t, filepath.Join(root, "install"))
	assert.Equal(t, "# MaaEnd", readFile(t, filepath.Join(root, "install", "README.md")))
	assert.NoFileExists(t, filepath.Join(root, "install", "requirements.txt"))
}

func TestInstallChoresCreatesInstallDir(t *testing.T) {
	root := newProject(t, false)
	in := New(Config{Root: root}, zerolog.Nop())

	require.NoError(t, in.InstallChores())

	install := filepath.Join(root, "install")
	assert.Equal(t, "# MaaEnd", readFile(t, filepath.Join(install, "README.md")))
	assert.Equal(t, "AGPL", readFile(t, filepath.Join(install, "LICENSE")))
	assert.Equal(t, "maafw", readFile(t, filepath.Join(install, "requirements.txt")))
}

func TestInstallResourceWithoutDeps(t *testing.T) {
	root := newProject(t, false)
	in := New(Config{Root: root, Version: "v9"}, zerolog.Nop())

	require.NoError(t, in.InstallResource())
	assert.Equal(t, "v9", gjson.Get(readFile(t, filepath.Join(root, "install", "interface.json")), "version").String())
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, "install", cfg.Out)
	assert.Equal(t, DefaultVersion, cfg.Version)

	cfg = Config{Root: "/src", Out: "/dist", Version: "v2"}.withDefaults()
	assert.Equal(t, "/dist", cfg.Out)
	assert.Equal(t, "v2", cfg.Version)
}

func TestConfigureOCRModelKeepsExistingModel(t *testing.T) {
	root := newProject(t, false)
	writeFile(t, filepath.Join(root, "assets", "resource", "model", "ocr", "custom.onnx"), "mine")

	require.NoError(t, ConfigureOCRModel(root, zerolog.Nop()))
	assert.NoFileExists(t, filepath.Join(root, "assets", "resource", "model", "ocr", "rec.onnx"))
}

func TestConfigureOCRModelWithoutCommonAssets(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, ConfigureOCRModel(root, zerolog.Nop()))
	assert.NoDirExists(t, filepath.Join(root, "assets", "resource", "model", "ocr"))
}
