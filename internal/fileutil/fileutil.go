// Package fileutil provides small file-copy helpers shared by queue
// ingestion paths.
package fileutil

import (
	"io"
	"os"
)

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
func CopyFile(src, dst string) error {
	return copyFile(src, dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	return copyFile(src, dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
}

// CopyFileNew streams src to dst, failing with fs.ErrExist when dst is
// already present. Callers rely on the O_EXCL create to resolve filename
// collisions without overwriting existing items.
func CopyFileNew(src, dst string) error {
	return copyFile(src, dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
}

func copyFile(src, dst string, flag int, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, flag, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}
