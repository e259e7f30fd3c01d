package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Builtin writes a zip archive in-process with the same layout as Command:
// entries are relative to workDir and the destination file itself is never included.
type Builtin struct{}

// NewBuiltin returns a Builtin archiver.
func NewBuiltin() *Builtin {
	return &Builtin{}
}

// Archive implements Archiver. An existing dest is replaced.
func (b *Builtin) Archive(ctx context.Context, workDir, dest string, exclude []string) (err error) {
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolve archive path: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absDest), ".archive-*")
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	zw := zip.NewWriter(tmp)

	err = filepath.WalkDir(workDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			return relErr
		}

		if rel == "." {
			return nil
		}

		rel = filepath.ToSlash(rel)

		if abs, _ := filepath.Abs(path); abs == absDest || abs == tmp.Name() {
			return nil
		}

		if d.IsDir() {
			_, dirErr := zw.Create(rel + "/")
			return dirErr
		}

		if excluded(rel, exclude) || !d.Type().IsRegular() {
			return nil
		}

		return addFile(zw, path, rel, d)
	})
	if err != nil {
		return fmt.Errorf("archive %s: %w", workDir, err)
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	if err = os.Rename(tmp.Name(), absDest); err != nil {
		return fmt.Errorf("move archive into place: %w", err)
	}

	return nil
}

func addFile(zw *zip.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(w, f)

	return errors.Join(copyErr, f.Close())
}
