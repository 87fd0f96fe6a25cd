package paths

import (
	"path"
	"strings"

	"github.com/arthur-debert/gamerepo/pkg/errors"
)

const (
	maxNameLength = 255
	hashLength    = 40
	invalidChars  = "*?\"<>|:"
)

// ValidateVersionID ensures a version id can be used as a directory name.
// Version ids must:
//   - Not be empty or longer than 255 bytes
//   - Not contain path separators or null bytes
//   - Not be reserved names (. or ..)
//   - Not contain characters Windows rejects in file names
func ValidateVersionID(id string) error {
	if id == "" {
		return errors.New(errors.ErrInvalidInput, "version id cannot be empty")
	}
	if len(id) > maxNameLength {
		return errors.Newf(errors.ErrInvalidInput, "version id is longer than %d bytes", maxNameLength).
			WithDetail("id", id)
	}
	if strings.ContainsAny(id, "/\\\x00") {
		return errors.Newf(errors.ErrInvalidInput, "version id %q contains a path separator", id)
	}
	if id == "." || id == ".." {
		return errors.New(errors.ErrInvalidInput, "version id cannot be '.' or '..'")
	}
	if strings.ContainsAny(id, invalidChars) {
		return errors.Newf(errors.ErrInvalidInput, "version id %q contains invalid characters: %s", id, invalidChars)
	}
	if strings.TrimSpace(id) != id {
		return errors.Newf(errors.ErrInvalidInput, "version id %q has surrounding whitespace", id)
	}
	return nil
}

// ValidateHash ensures hash is a lowercase hex SHA-1 digest.
func ValidateHash(hash string) error {
	if len(hash) != hashLength {
		return errors.Newf(errors.ErrInvalidInput, "hash %q is not %d characters long", hash, hashLength)
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return errors.Newf(errors.ErrInvalidInput, "hash %q is not lowercase hex", hash)
		}
	}
	return nil
}

// ValidateAssetName ensures an asset name is a relative slash path that
// stays inside the directory it is joined to.
func ValidateAssetName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "asset name cannot be empty")
	}
	if strings.ContainsAny(name, "\\\x00") {
		return errors.Newf(errors.ErrInvalidInput, "asset name %q contains invalid characters", name)
	}
	if path.IsAbs(name) || (len(name) > 1 && name[1] == ':') {
		return errors.Newf(errors.ErrInvalidInput, "asset name %q is absolute", name)
	}
	clean := path.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Newf(errors.ErrInvalidInput, "asset name %q escapes the asset directory", name)
	}
	return nil
}
