package manifest

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/rs/zerolog"
)

// Manifest is one version's raw declared data.
type Manifest struct {
	ID                 string                  `json:"id"`
	ParentID           string                  `json:"inheritsFrom,omitempty"`
	Jar                string                  `json:"jar,omitempty"`
	Type               string                  `json:"type,omitempty"`
	Time               string                  `json:"time,omitempty"`
	ReleaseTime        string                  `json:"releaseTime,omitempty"`
	MainClass          string                  `json:"mainClass,omitempty"`
	MinecraftArguments string                  `json:"minecraftArguments,omitempty"`
	Arguments          *Arguments              `json:"arguments,omitempty"`
	Assets             string                  `json:"assets,omitempty"`
	AssetIndex         *AssetIndexInfo         `json:"assetIndex,omitempty"`
	Libraries          []Library               `json:"libraries,omitempty"`
	Logging            map[string]LoggingInfo  `json:"logging,omitempty"`
	Downloads          map[string]DownloadInfo `json:"downloads,omitempty"`
}

// Arguments holds the structured launch arguments. Entries are either plain
// strings or rule-guarded objects; their interpretation belongs to the
// launcher, so they are kept verbatim.
type Arguments struct {
	Game []json.RawMessage `json:"game,omitempty"`
	JVM  []json.RawMessage `json:"jvm,omitempty"`
}

// AssetIndexInfo references the asset index a version uses.
type AssetIndexInfo struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1,omitempty"`
	Size      int64  `json:"size,omitempty"`
	TotalSize int64  `json:"totalSize,omitempty"`
	URL       string `json:"url,omitempty"`
}

// DownloadInfo describes a downloadable file.
type DownloadInfo struct {
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url,omitempty"`
}

// LoggingInfo is the logging configuration for one side (usually "client").
type LoggingInfo struct {
	Argument string          `json:"argument,omitempty"`
	File     LoggingFileInfo `json:"file"`
	Type     string          `json:"type,omitempty"`
}

// LoggingFileInfo identifies the logging configuration file.
type LoggingFileInfo struct {
	ID   string `json:"id"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url,omitempty"`
}

// AssetID returns the asset set this manifest references directly, or ""
// when it inherits one. The asset index id wins over the legacy "assets"
// field.
func (m *Manifest) AssetID() string {
	if m.AssetIndex != nil && m.AssetIndex.ID != "" {
		return m.AssetIndex.ID
	}
	return m.Assets
}

// HasParent reports whether the manifest inherits from another version.
func (m *Manifest) HasParent() bool {
	return m.ParentID != ""
}

// ClientLogging returns the client logging configuration, if declared.
func (m *Manifest) ClientLogging() (LoggingInfo, bool) {
	info, ok := m.Logging["client"]
	return info, ok
}

// Clone returns a deep copy of m so callers may build derived manifests
// without touching the original.
func (m *Manifest) Clone() *Manifest {
	c := *m
	if m.Arguments != nil {
		args := Arguments{
			Game: slices.Clone(m.Arguments.Game),
			JVM:  slices.Clone(m.Arguments.JVM),
		}
		c.Arguments = &args
	}
	if m.AssetIndex != nil {
		info := *m.AssetIndex
		c.AssetIndex = &info
	}
	if m.Libraries != nil {
		c.Libraries = make([]Library, len(m.Libraries))
		for i := range m.Libraries {
			c.Libraries[i] = m.Libraries[i].Clone()
		}
	}
	c.Logging = maps.Clone(m.Logging)
	c.Downloads = maps.Clone(m.Downloads)
	return &c
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (m *Manifest) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", m.ID).
		Str("inheritsFrom", m.ParentID).
		Str("assets", m.AssetID()).
		Int("libraries", len(m.Libraries))
}
