package hashutil

import (
	"crypto/sha1"
	"encoding/hex"
	"io"

	"github.com/spf13/afero"
)

// FileSHA1 streams the file at path through SHA-1 and returns the lowercase
// hex digest together with the number of bytes read.
func FileSHA1(fsys afero.Fs, path string) (string, int64, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha1.New()
	n, err := io.Copy(hash, file)
	if err != nil {
		return "", 0, err
	}

	return hex.EncodeToString(hash.Sum(nil)), n, nil
}

// SHA1 returns the lowercase hex SHA-1 digest of data.
func SHA1(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
