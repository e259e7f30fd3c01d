package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/oshokin/tp-plugin-build/internal/logger"
)

var errNoBinary = errors.New("archiver binary is not set")

// Command runs an external zip-compatible binary:
//
//	<binary> -FS -r <dest> . -x <patterns...>
//
// in workDir. -FS syncs an existing archive with the directory so reruns replace stale entries.
type Command struct {
	// Binary is the archiver executable name or path.
	Binary string
}

// NewCommand returns a Command archiver for binary.
func NewCommand(binary string) *Command {
	return &Command{Binary: binary}
}

// Archive implements Archiver.
func (c *Command) Archive(ctx context.Context, workDir, dest string, exclude []string) error {
	if strings.TrimSpace(c.Binary) == "" {
		return errNoBinary
	}

	args := []string{"-FS", "-r", dest, "."}
	if len(exclude) > 0 {
		args = append(args, "-x")
		args = append(args, exclude...)
	}

	//nolint:gosec // The binary comes from ZIP_BIN or the settings file on purpose.
	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Dir = workDir

	var output bytes.Buffer

	cmd.Stdout = &output
	cmd.Stderr = &output

	logger.DebugKV(ctx, "Running archiver", "command", c.Binary+" "+strings.Join(args, " "), "dir", workDir)

	if err := cmd.Run(); err != nil {
		if out := strings.TrimSpace(output.String()); out != "" {
			return fmt.Errorf("%s failed: %w: %s", c.Binary, err, out)
		}

		return fmt.Errorf("%s failed: %w", c.Binary, err)
	}

	if out := strings.TrimSpace(output.String()); out != "" {
		logger.Info(ctx, out)
	}

	return nil
}
