// Package publish copies the final encoded file to its publish
// destination.
//
// The copy is byte-for-byte and overwrites any existing file. After the
// copy the destination is read back and its size and SHA-256 compared
// against the source; a destination that does not match is removed so a
// corrupt file is never left behind.
package publish

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/logoshrink/internal/model"
)

// Publisher copies files to a destination. The zero value is ready to use.
type Publisher struct{}

// Publish copies src to dst and returns the path actually written.
// When dst names an existing directory the file keeps src's base name
// inside it. When dst resolves to src itself nothing is written.
func (Publisher) Publish(src, dst string) (string, error) {
	return Copy(src, dst)
}

// Copy is the package-level form of Publisher.Publish.
func Copy(src, dst string) (string, error) {
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	dir := filepath.Dir(dst)
	info, err := os.Stat(dir)
	if err != nil {
		return "", model.WrapCLIError(
			model.ExitIOFailed,
			fmt.Sprintf("publish directory does not exist: %s", dir),
			err,
		)
	}
	if !info.IsDir() {
		return "", model.NewCLIError(
			model.ExitIOFailed,
			fmt.Sprintf("publish directory is not a directory: %s", dir),
		)
	}

	same, err := sameFile(src, dst)
	if err != nil {
		return "", model.WrapCLIError(
			model.ExitIOFailed,
			fmt.Sprintf("cannot stat %s", src),
			err,
		)
	}
	if same {
		return dst, nil
	}

	if err := copyVerified(src, dst); err != nil {
		return "", model.WrapCLIError(
			model.ExitIOFailed,
			fmt.Sprintf("failed to copy %s to %s", src, dst),
			err,
		)
	}
	return dst, nil
}

// sameFile reports whether src and dst name the same file. Copying a
// file onto itself would truncate it before it is read.
func sameFile(src, dst string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, err
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return false, err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return false, err
	}
	if absSrc == absDst {
		return true, nil
	}

	dstInfo, err := os.Stat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return os.SameFile(srcInfo, dstInfo), nil
}

// copyVerified streams src to dst, then re-reads dst and checks its size
// and SHA-256 against the source. Removes dst on mismatch.
func copyVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, srcHasher))
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcInfo.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}

	dstSum, dstSize, err := hashFile(dst)
	if err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("read back destination: %w", err)
	}
	if dstSize != written || !bytes.Equal(srcHasher.Sum(nil), dstSum) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	return nil
}

// hashFile returns the SHA-256 and byte count of the file at path.
func hashFile(path string) ([]byte, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return nil, 0, err
	}
	return h.Sum(nil), n, nil
}
