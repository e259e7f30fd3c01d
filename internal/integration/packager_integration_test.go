package integration

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/tp-plugin-build/internal/archive"
	"github.com/oshokin/tp-plugin-build/internal/config"
	"github.com/oshokin/tp-plugin-build/internal/service/generator"
	"github.com/oshokin/tp-plugin-build/internal/service/packager"
)

const buildInfoFixture = `{
	"VERSION_STR": "1.2.3.4 beta",
	"VERSION_NUM": "01020304",
	"SYSTEM_NAME": "TPDeviceInput",
	"SHORT_NAME": "Device Input",
	"PLUGIN_ID": "us.example.tpp.di",
	"STATE_NAME_PREFIX": "DI",
	"PLATFORM_OS": "Linux",
	"HOMEPAGE_URL": "https://example.com/tpdi",
	"DESCRIPTION": "Game controller input for Touch Portal."
}`

// newProject lays out a project with version.json under build/ and the files the packager copies.
func newProject(t *testing.T, archiverKind string) (root, buildInfoPath string) {
	t.Helper()

	root = t.TempDir()
	buildDir := filepath.Join(root, "build")
	images := filepath.Join(root, "src", "resources", "images")

	require.NoError(t, os.MkdirAll(buildDir, 0o755))
	require.NoError(t, os.MkdirAll(images, 0o755))

	buildInfoPath = filepath.Join(buildDir, "version.json")
	require.NoError(t, os.WriteFile(buildInfoPath, []byte(buildInfoFixture), 0o600))

	for _, name := range []string{"README.md", "CHANGELOG.md", "LICENSE.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("# "+name), 0o600))
	}

	require.NoError(t, os.WriteFile(filepath.Join(images, "tp_icon.png"), []byte{0x89, 'P', 'N', 'G'}, 0o600))

	cfg := config.Default()
	cfg.Archive.Kind = archiverKind
	require.NoError(t, config.Save(filepath.Join(buildDir, config.DefaultConfigFilename), cfg))

	return root, buildInfoPath
}

func readArchive(t *testing.T, path string) map[string][]byte {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)

	defer func() {
		_ = r.Close()
	}()

	files := make(map[string][]byte)

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		require.NoError(t, err)

		data, err := io.ReadAll(rc)
		require.NoError(t, err)

		_ = rc.Close()
		files[filepath.ToSlash(f.Name)] = data
	}

	return files
}

func requirePackageContents(t *testing.T, packagePath string) {
	t.Helper()

	files := readArchive(t, packagePath)
	for _, name := range []string{"entry.tp", "README.md", "CHANGELOG.md", "LICENSE.txt", "tp_icon.png"} {
		require.Contains(t, files, "TPDeviceInput/"+name)
	}

	require.Equal(t, []byte("# LICENSE.txt"), files["TPDeviceInput/LICENSE.txt"])

	var doc map[string]any
	require.NoError(t, json.Unmarshal(files["TPDeviceInput/entry.tp"], &doc))
	require.EqualValues(t, 10, doc["api"])
	require.EqualValues(t, 1020304, doc["version"])
	require.Equal(t, "us.example.tpp.di", doc["id"])
	require.Equal(t, "sh %TP_PLUGIN_FOLDER%TPDeviceInput/start.sh", doc["plugin_start_cmd"])
}

// TestPackager_BuiltinArchive builds the whole distribution with the in-process archiver.
func TestPackager_BuiltinArchive(t *testing.T) {
	t.Parallel()

	root, buildInfoPath := newProject(t, config.ArchiverBuiltin)

	// Leftover logs in the platform folder must not be packaged.
	logPath := filepath.Join(root, "dist", "Linux", "TPDeviceInput", "plugin.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0o755))
	require.NoError(t, os.WriteFile(logPath, []byte("log"), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := packager.Run(ctx, &packager.Options{BuildInfoPath: buildInfoPath})
	require.NoError(t, err)

	packagePath := filepath.Join(root, "dist", "TPDeviceInput-Linux-1.2.3.4.tpp")
	requirePackageContents(t, packagePath)
	require.NotContains(t, readArchive(t, packagePath), "TPDeviceInput/plugin.log")
}

// TestPackager_ExplicitPlatform stages into the platform named on the command line.
func TestPackager_ExplicitPlatform(t *testing.T) {
	t.Parallel()

	root, buildInfoPath := newProject(t, config.ArchiverBuiltin)

	err := packager.Run(context.Background(), &packager.Options{
		BuildInfoPath: buildInfoPath,
		Platform:      "Windows",
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "dist", "Windows", "TPDeviceInput", "entry.tp"))
	require.NoError(t, err)
	requirePackageContents(t, filepath.Join(root, "dist", "TPDeviceInput-Windows-1.2.3.4.tpp"))
}

// TestPackager_CommandArchive uses the system zip binary when one is installed.
func TestPackager_CommandArchive(t *testing.T) {
	t.Parallel()

	zipBin, err := exec.LookPath("zip")
	if err != nil {
		t.Skip("zip is not installed")
	}

	root, buildInfoPath := newProject(t, config.ArchiverCommand)

	err = packager.Run(context.Background(), &packager.Options{
		BuildInfoPath: buildInfoPath,
		Archiver:      archive.NewCommand(zipBin),
	})
	require.NoError(t, err)

	requirePackageContents(t, filepath.Join(root, "dist", "TPDeviceInput-Linux-1.2.3.4.tpp"))
}

// TestPackager_MissingBuildInfo fails before anything is staged.
func TestPackager_MissingBuildInfo(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	err := packager.Run(context.Background(), &packager.Options{
		BuildInfoPath: filepath.Join(root, "build", "version.json"),
	})
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(root, "dist"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestGenerator_DevModeAndStdout writes a dev manifest to dist/Debug and a release one to stdout.
func TestGenerator_DevModeAndStdout(t *testing.T) {
	t.Parallel()

	root, buildInfoPath := newProject(t, config.ArchiverBuiltin)

	err := generator.Run(context.Background(), &generator.Options{
		BuildInfoPath: buildInfoPath,
		DevMode:       true,
	})
	require.ErrorIs(t, err, generator.ErrDevMode)

	devEntry, err := os.ReadFile(filepath.Join(root, "dist", generator.DevOutputDir, generator.EntryFilename))
	require.NoError(t, err)
	require.NotContains(t, string(devEntry), "plugin_start_cmd")
	require.Contains(t, string(devEntry), `"Shutdown"`)

	var stdout bytes.Buffer

	err = generator.Run(context.Background(), &generator.Options{
		BuildInfoPath: buildInfoPath,
		Output:        generator.StdoutOutput,
		Stdout:        &stdout,
	})
	require.NoError(t, err)
	require.Contains(t, stdout.String(), `"plugin_start_cmd_windows"`)
	require.NotContains(t, stdout.String(), `"Shutdown"`)
}
