package manifest

import (
	"encoding/json"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultExtension is the packaging of a library without an explicit "@ext".
const DefaultExtension = "jar"

// Coordinate is a maven-style library coordinate.
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
	Extension  string
}

// ParseCoordinate parses "group:artifact:version[:classifier][@ext]".
func ParseCoordinate(name string) (Coordinate, error) {
	var c Coordinate
	spec := name
	if at := strings.LastIndexByte(spec, '@'); at >= 0 {
		c.Extension = spec[at+1:]
		spec = spec[:at]
		if c.Extension == "" {
			return Coordinate{}, fmt.Errorf("library %q: empty extension", name)
		}
	}

	parts := strings.Split(spec, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Coordinate{}, fmt.Errorf("library %q: want group:artifact:version[:classifier]", name)
	}
	for _, p := range parts {
		if p == "" {
			return Coordinate{}, fmt.Errorf("library %q: empty coordinate segment", name)
		}
	}

	c.Group, c.Artifact, c.Version = parts[0], parts[1], parts[2]
	if len(parts) == 4 {
		c.Classifier = parts[3]
	}
	return c, nil
}

// String renders the coordinate in the form ParseCoordinate accepts.
func (c Coordinate) String() string {
	s := c.Group + ":" + c.Artifact + ":" + c.Version
	if c.Classifier != "" {
		s += ":" + c.Classifier
	}
	if c.Extension != "" && c.Extension != DefaultExtension {
		s += "@" + c.Extension
	}
	return s
}

// RelativePath returns the slash-separated path of the artifact below the
// libraries directory, using classifier in place of c.Classifier when it is
// non-empty.
func (c Coordinate) RelativePath(classifier string) string {
	if classifier == "" {
		classifier = c.Classifier
	}
	ext := c.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	file := c.Artifact + "-" + c.Version
	if classifier != "" {
		file += "-" + classifier
	}
	file += "." + ext
	return path.Join(strings.ReplaceAll(c.Group, ".", "/"), c.Artifact, c.Version, file)
}

// Library is a versioned dependency, optionally native and platform specific.
type Library struct {
	Name       string            `json:"name"`
	Coordinate Coordinate        `json:"-"`
	URL        string            `json:"url,omitempty"`
	Downloads  *LibraryDownloads `json:"downloads,omitempty"`
	Rules      []Rule            `json:"rules,omitempty"`
	Natives    map[string]string `json:"natives,omitempty"`
	Extract    *ExtractRules     `json:"extract,omitempty"`
}

// LibraryDownloads lists the artifact and per-classifier downloads.
type LibraryDownloads struct {
	Artifact    *ArtifactInfo           `json:"artifact,omitempty"`
	Classifiers map[string]ArtifactInfo `json:"classifiers,omitempty"`
}

// ArtifactInfo describes one downloadable library file.
type ArtifactInfo struct {
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url,omitempty"`
}

// ExtractRules controls which entries of a natives archive are extracted.
type ExtractRules struct {
	Exclude []string `json:"exclude,omitempty"`
	Include []string `json:"include,omitempty"`
}

// NewLibrary builds a library from its coordinate string.
func NewLibrary(name string) (Library, error) {
	c, err := ParseCoordinate(name)
	if err != nil {
		return Library{}, err
	}
	return Library{Name: name, Coordinate: c}, nil
}

// UnmarshalJSON decodes a library and parses its coordinate.
func (l *Library) UnmarshalJSON(data []byte) error {
	type plain Library
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c, err := ParseCoordinate(raw.Name)
	if err != nil {
		return err
	}
	raw.Coordinate = c
	*l = Library(raw)
	return nil
}

// Key identifies the library for de-duplication across an inheritance chain.
func (l Library) Key() string {
	return l.Coordinate.String()
}

// IsNative reports whether the library ships per-platform native archives.
func (l Library) IsNative() bool {
	return len(l.Natives) > 0
}

// Applies reports whether the library's rules allow it on p.
func (l Library) Applies(p Platform) bool {
	return Allowed(l.Rules, p)
}

// NativeClassifier returns the classifier of the natives archive for p.
// It reports false when the library is not native, its rules exclude p, or
// it declares no archive for p's operating system.
func (l Library) NativeClassifier(p Platform) (string, bool) {
	if !l.IsNative() || !l.Applies(p) {
		return "", false
	}
	classifier, ok := l.Natives[p.OS]
	if !ok || classifier == "" {
		return "", false
	}
	return strings.ReplaceAll(classifier, "${arch}", p.Bits()), true
}

// Clone returns a deep copy of l.
func (l Library) Clone() Library {
	c := l
	if l.Downloads != nil {
		d := *l.Downloads
		if d.Artifact != nil {
			a := *d.Artifact
			d.Artifact = &a
		}
		d.Classifiers = maps.Clone(d.Classifiers)
		c.Downloads = &d
	}
	if l.Rules != nil {
		c.Rules = make([]Rule, len(l.Rules))
		for i, r := range l.Rules {
			c.Rules[i] = r
			if r.OS != nil {
				os := *r.OS
				c.Rules[i].OS = &os
			}
		}
	}
	c.Natives = maps.Clone(l.Natives)
	if l.Extract != nil {
		e := ExtractRules{
			Exclude: slices.Clone(l.Extract.Exclude),
			Include: slices.Clone(l.Extract.Include),
		}
		c.Extract = &e
	}
	return c
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (l Library) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", l.Name).Bool("native", l.IsNative())
}

// ShouldExtract reports whether an archive entry passes the rules. Excludes
// are path prefixes; when includes are present an entry must match one.
func (r *ExtractRules) ShouldExtract(entry string) bool {
	if r == nil {
		return true
	}
	for _, prefix := range r.Exclude {
		if strings.HasPrefix(entry, prefix) {
			return false
		}
	}
	if len(r.Include) == 0 {
		return true
	}
	for _, prefix := range r.Include {
		if strings.HasPrefix(entry, prefix) {
			return true
		}
	}
	return false
}
