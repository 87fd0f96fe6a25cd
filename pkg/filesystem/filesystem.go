package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// LinkMode selects how PlaceFile materializes a file under a second name.
type LinkMode string

const (
	// LinkHard creates a hard link when the filesystem supports it and
	// falls back to copying otherwise.
	LinkHard LinkMode = "hardlink"
	// LinkCopy always copies.
	LinkCopy LinkMode = "copy"
)

// NewOS creates a filesystem backed by the operating system
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory creates an in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// tempSibling returns a unique hidden name next to path.
func tempSibling(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
}

// WriteFileAtomic writes data to a temporary sibling of name and renames it
// into place, so readers never observe a partially written file.
func WriteFileAtomic(fsys afero.Fs, name string, data []byte, perm os.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	tmp := tempSibling(name)
	if err := afero.WriteFile(fsys, tmp, data, perm); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	if err := fsys.Rename(tmp, name); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

// PlaceFile makes the content of src available at dst.
//
// If dst already exists with the expected size it is left untouched and
// PlaceFile returns false. Otherwise the content is linked or copied into a
// temporary sibling and renamed over dst; concurrent callers placing the
// same content race harmlessly because each rename installs a complete file.
func PlaceFile(fsys afero.Fs, src, dst string, size int64, mode LinkMode) (bool, error) {
	if info, err := fsys.Stat(dst); err == nil && info.Mode().IsRegular() && info.Size() == size {
		return false, nil
	}

	if err := ReplaceFile(fsys, src, dst, mode); err != nil {
		return false, err
	}
	return true, nil
}

// ReplaceFile installs the content of src at dst unconditionally, through a
// temporary sibling and a rename.
func ReplaceFile(fsys afero.Fs, src, dst string, mode LinkMode) error {
	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	tmp := tempSibling(dst)
	if err := materialize(fsys, src, tmp, mode); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	if err := fsys.Rename(tmp, dst); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

func materialize(fsys afero.Fs, src, dst string, mode LinkMode) error {
	if mode == LinkHard {
		if _, ok := fsys.(*afero.OsFs); ok {
			if err := os.Link(src, dst); err == nil {
				return nil
			}
			// cross-device or unsupported; copy instead
		}
	}
	return CopyFile(fsys, src, dst)
}

// CopyFile copies src to a new file dst. It fails if dst already exists.
func CopyFile(fsys afero.Fs, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
