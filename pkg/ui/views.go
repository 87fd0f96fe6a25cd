package ui

import (
	"github.com/arthur-debert/gamerepo/pkg/manifest"
	"github.com/arthur-debert/gamerepo/pkg/repository"
	"github.com/arthur-debert/gamerepo/pkg/resolver"
)

// VersionList is the output of a catalog listing.
type VersionList struct {
	Root     string       `json:"root" yaml:"root" toml:"root"`
	Versions []VersionRow `json:"versions" yaml:"versions" toml:"versions"`
	Warnings []WarningRow `json:"warnings,omitempty" yaml:"warnings,omitempty" toml:"warnings,omitempty"`
}

// VersionRow is one catalog entry.
type VersionRow struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	ReleaseTime string `json:"releaseTime,omitempty" yaml:"releaseTime,omitempty" toml:"releaseTime,omitempty"`
	Parent      string `json:"inheritsFrom,omitempty" yaml:"inheritsFrom,omitempty" toml:"inheritsFrom,omitempty"`
}

// WarningRow is a version directory that did not load cleanly.
type WarningRow struct {
	VersionID string `json:"id" yaml:"id" toml:"id"`
	Path      string `json:"path" yaml:"path" toml:"path"`
	Message   string `json:"message" yaml:"message" toml:"message"`
	Skipped   bool   `json:"skipped" yaml:"skipped" toml:"skipped"`
}

// NewVersionList builds the listing view, keeping the order of ms.
func NewVersionList(root string, ms []*manifest.Manifest, warnings []repository.ScanWarning) *VersionList {
	list := &VersionList{Root: root, Versions: make([]VersionRow, 0, len(ms))}
	for _, m := range ms {
		list.Versions = append(list.Versions, VersionRow{
			ID:          m.ID,
			Type:        m.Type,
			ReleaseTime: m.ReleaseTime,
			Parent:      m.ParentID,
		})
	}
	for _, w := range warnings {
		list.Warnings = append(list.Warnings, WarningRow{
			VersionID: w.VersionID,
			Path:      w.Path,
			Message:   w.Err.Error(),
			Skipped:   w.Skipped,
		})
	}
	return list
}

// VersionDetail summarizes one manifest, raw or effective.
type VersionDetail struct {
	ID          string   `json:"id" yaml:"id" toml:"id"`
	Resolved    bool     `json:"resolved" yaml:"resolved" toml:"resolved"`
	Chain       []string `json:"chain,omitempty" yaml:"chain,omitempty" toml:"chain,omitempty"`
	Parent      string   `json:"inheritsFrom,omitempty" yaml:"inheritsFrom,omitempty" toml:"inheritsFrom,omitempty"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	ReleaseTime string   `json:"releaseTime,omitempty" yaml:"releaseTime,omitempty" toml:"releaseTime,omitempty"`
	MainClass   string   `json:"mainClass,omitempty" yaml:"mainClass,omitempty" toml:"mainClass,omitempty"`
	Jar         string   `json:"jar,omitempty" yaml:"jar,omitempty" toml:"jar,omitempty"`
	AssetID     string   `json:"assets,omitempty" yaml:"assets,omitempty" toml:"assets,omitempty"`
	Libraries   int      `json:"libraries" yaml:"libraries" toml:"libraries"`
	Logging     string   `json:"logging,omitempty" yaml:"logging,omitempty" toml:"logging,omitempty"`
}

// NewVersionDetail describes a raw manifest.
func NewVersionDetail(m *manifest.Manifest) *VersionDetail {
	d := &VersionDetail{
		ID:          m.ID,
		Parent:      m.ParentID,
		Type:        m.Type,
		ReleaseTime: m.ReleaseTime,
		MainClass:   m.MainClass,
		Jar:         m.Jar,
		AssetID:     m.AssetID(),
		Libraries:   len(m.Libraries),
	}
	if info, ok := m.ClientLogging(); ok {
		d.Logging = info.File.ID
	}
	return d
}

// NewResolvedDetail describes an effective manifest together with its chain.
func NewResolvedDetail(eff *resolver.Effective) *VersionDetail {
	d := NewVersionDetail(eff.Manifest)
	d.ID = eff.ID()
	d.Resolved = true
	d.Chain = eff.Chain
	d.Parent = ""
	d.Jar = eff.JarID()
	return d
}

// LibraryList is the set of library files a version needs on one platform.
type LibraryList struct {
	VersionID string       `json:"id" yaml:"id" toml:"id"`
	Platform  string       `json:"platform" yaml:"platform" toml:"platform"`
	Libraries []LibraryRow `json:"libraries" yaml:"libraries" toml:"libraries"`
}

// LibraryRow is one library and where it lives.
type LibraryRow struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Path    string `json:"path" yaml:"path" toml:"path"`
	Native  bool   `json:"native" yaml:"native" toml:"native"`
	Present bool   `json:"present" yaml:"present" toml:"present"`
}

// PathList names the on-disk locations that belong to one version.
type PathList struct {
	VersionID string      `json:"id" yaml:"id" toml:"id"`
	Entries   []PathEntry `json:"paths" yaml:"paths" toml:"paths"`
}

// PathEntry is one named location.
type PathEntry struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Path string `json:"path" yaml:"path" toml:"path"`
}

// AssetView reports a resolved asset directory or object.
type AssetView struct {
	VersionID string `json:"id" yaml:"id" toml:"id"`
	AssetID   string `json:"assets" yaml:"assets" toml:"assets"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Hash      string `json:"hash,omitempty" yaml:"hash,omitempty" toml:"hash,omitempty"`
	Size      int64  `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Path      string `json:"path" yaml:"path" toml:"path"`
	Verified  bool   `json:"verified,omitempty" yaml:"verified,omitempty" toml:"verified,omitempty"`
}

// AuditView is the presentable form of an audit report.
type AuditView struct {
	VersionID string    `json:"id" yaml:"id" toml:"id"`
	Chain     []string  `json:"chain" yaml:"chain" toml:"chain"`
	OK        bool      `json:"ok" yaml:"ok" toml:"ok"`
	Libraries int       `json:"libraries" yaml:"libraries" toml:"libraries"`
	AssetID   string    `json:"assets,omitempty" yaml:"assets,omitempty" toml:"assets,omitempty"`
	Objects   int       `json:"objects" yaml:"objects" toml:"objects"`
	Problems  []Problem `json:"problems,omitempty" yaml:"problems,omitempty" toml:"problems,omitempty"`
}

// Problem is one missing or damaged file.
type Problem struct {
	Kind    string `json:"kind" yaml:"kind" toml:"kind"`
	Subject string `json:"subject" yaml:"subject" toml:"subject"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty" toml:"detail,omitempty"`
}

// Problem kinds
const (
	ProblemMissingJar     = "missing-jar"
	ProblemMissingLibrary = "missing-library"
	ProblemMissingIndex   = "missing-index"
	ProblemMissingObject  = "missing-object"
	ProblemCorruptObject  = "corrupt-object"
	ProblemMissingLogging = "missing-logging-config"
	ProblemInvalidLogging = "invalid-logging-config"
)

// NewAuditView flattens a report into a problem list.
func NewAuditView(r *repository.AuditReport) *AuditView {
	v := &AuditView{
		VersionID: r.VersionID,
		Chain:     r.Chain,
		OK:        r.OK(),
		Libraries: r.Libraries,
		AssetID:   r.AssetID,
		Objects:   r.Objects,
	}
	add := func(kind, subject, detail string) {
		v.Problems = append(v.Problems, Problem{Kind: kind, Subject: subject, Detail: detail})
	}

	if r.JarMissing {
		add(ProblemMissingJar, r.Jar, "")
	}
	for _, lib := range r.MissingLibraries {
		add(ProblemMissingLibrary, lib, "")
	}
	if r.IndexMissing {
		add(ProblemMissingIndex, r.AssetID, "")
	}
	for _, name := range r.MissingObjects {
		add(ProblemMissingObject, name, "")
	}
	for _, name := range r.CorruptedObjects {
		add(ProblemCorruptObject, name, "")
	}
	if r.LoggingConfigMissing {
		add(ProblemMissingLogging, r.LoggingConfig, "")
	}
	if r.LoggingConfigInvalid != nil {
		add(ProblemInvalidLogging, r.LoggingConfig, r.LoggingConfigInvalid.Error())
	}
	return v
}
