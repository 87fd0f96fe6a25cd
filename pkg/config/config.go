package config

import (
	"fmt"
	"regexp"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/filesystem"
	"github.com/arthur-debert/gamerepo/pkg/paths"
)

// Config is the complete configuration.
type Config struct {
	Repository Repository `koanf:"repository" toml:"repository" yaml:"repository"`
	Assets     Assets     `koanf:"assets" toml:"assets" yaml:"assets"`
	Settings   Settings   `koanf:"settings" toml:"settings" yaml:"settings"`
	Logging    Logging    `koanf:"logging" toml:"logging" yaml:"logging"`
}

// Repository configures the version catalog and path layout.
type Repository struct {
	Root                string `koanf:"root" toml:"root" yaml:"root"`
	RunDirectory        string `koanf:"run_directory" toml:"run_directory" yaml:"run_directory"`
	MaxInheritanceDepth int    `koanf:"max_inheritance_depth" toml:"max_inheritance_depth" yaml:"max_inheritance_depth"`
	ScanWorkers         int    `koanf:"scan_workers" toml:"scan_workers" yaml:"scan_workers"`
}

// Assets configures the asset object store.
type Assets struct {
	StrictVerify  bool   `koanf:"strict_verify" toml:"strict_verify" yaml:"strict_verify"`
	LinkMode      string `koanf:"link_mode" toml:"link_mode" yaml:"link_mode"`
	MirrorWorkers int    `koanf:"mirror_workers" toml:"mirror_workers" yaml:"mirror_workers"`
}

// DownloadProvider names a mirror network the downloader fetches from.
type DownloadProvider string

const (
	ProviderMojang  DownloadProvider = "mojang"
	ProviderBMCLAPI DownloadProvider = "bmclapi"
	ProviderMCBBS   DownloadProvider = "mcbbs"
)

// ProxyType selects how outbound connections are proxied.
type ProxyType string

const (
	ProxyNone  ProxyType = "none"
	ProxyHTTP  ProxyType = "http"
	ProxySOCKS ProxyType = "socks"
)

// Settings are user preferences consumed by collaborators such as the
// downloader and the UI. This module only validates and carries them.
type Settings struct {
	DownloadProvider DownloadProvider `koanf:"download_provider" toml:"download_provider" yaml:"download_provider"`
	Locale           string           `koanf:"locale" toml:"locale" yaml:"locale"`
	Proxy            Proxy            `koanf:"proxy" toml:"proxy" yaml:"proxy"`
}

// Proxy holds proxy settings.
type Proxy struct {
	Type     ProxyType `koanf:"type" toml:"type" yaml:"type"`
	Host     string    `koanf:"host" toml:"host" yaml:"host"`
	Port     int       `koanf:"port" toml:"port" yaml:"port"`
	User     string    `koanf:"user" toml:"user" yaml:"user"`
	Password string    `koanf:"password" toml:"password" yaml:"password"`
}

// Address returns host:port, or "" when no proxy is configured.
func (p Proxy) Address() string {
	if p.Type == ProxyNone || p.Type == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// Logging configures the log file.
type Logging struct {
	File string `koanf:"file" toml:"file" yaml:"file"`
}

var localePattern = regexp.MustCompile(`^[a-z]{2,3}(_[A-Z]{2})?$`)

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	if _, err := paths.ParseRunDirectoryMode(c.Repository.RunDirectory); err != nil {
		return err
	}
	if c.Repository.MaxInheritanceDepth < 1 {
		return invalid("repository.max_inheritance_depth", c.Repository.MaxInheritanceDepth, "must be at least 1")
	}
	if c.Repository.ScanWorkers < 1 {
		return invalid("repository.scan_workers", c.Repository.ScanWorkers, "must be at least 1")
	}

	switch filesystem.LinkMode(c.Assets.LinkMode) {
	case filesystem.LinkHard, filesystem.LinkCopy:
	default:
		return invalid("assets.link_mode", c.Assets.LinkMode, "must be hardlink or copy")
	}
	if c.Assets.MirrorWorkers < 1 {
		return invalid("assets.mirror_workers", c.Assets.MirrorWorkers, "must be at least 1")
	}

	switch c.Settings.DownloadProvider {
	case ProviderMojang, ProviderBMCLAPI, ProviderMCBBS:
	default:
		return invalid("settings.download_provider", c.Settings.DownloadProvider, "must be mojang, bmclapi or mcbbs")
	}
	if !localePattern.MatchString(c.Settings.Locale) {
		return invalid("settings.locale", c.Settings.Locale, "must look like en or zh_CN")
	}

	proxy := c.Settings.Proxy
	switch proxy.Type {
	case ProxyNone:
	case ProxyHTTP, ProxySOCKS:
		if proxy.Host == "" {
			return invalid("settings.proxy.host", proxy.Host, "is required when a proxy is enabled")
		}
		if proxy.Port < 1 || proxy.Port > 65535 {
			return invalid("settings.proxy.port", proxy.Port, "must be between 1 and 65535")
		}
	default:
		return invalid("settings.proxy.type", proxy.Type, "must be none, http or socks")
	}
	return nil
}

func invalid(key string, value interface{}, reason string) error {
	return errors.Newf(errors.ErrInvalidInput, "invalid %s %q: %s", key, fmt.Sprint(value), reason).
		WithDetail("key", key)
}
