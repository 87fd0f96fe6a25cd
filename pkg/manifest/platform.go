package manifest

import (
	"regexp"
	"runtime"
)

// Operating system families as they appear in rules and natives maps.
const (
	OSWindows = "windows"
	OSX       = "osx"
	OSLinux   = "linux"
	OSUnknown = "unknown"
)

// Rule actions.
const (
	ActionAllow    = "allow"
	ActionDisallow = "disallow"
)

// Platform describes the machine a version is evaluated for.
type Platform struct {
	OS      string
	Version string
	Arch    string
}

// CurrentPlatform returns the platform of the running process. The OS
// version is left empty, so rules with a version pattern never match it.
func CurrentPlatform() Platform {
	return Platform{OS: osFamily(runtime.GOOS), Arch: archName(runtime.GOARCH)}
}

func osFamily(goos string) string {
	switch goos {
	case "windows":
		return OSWindows
	case "darwin":
		return OSX
	case "linux", "freebsd", "openbsd", "netbsd":
		return OSLinux
	default:
		return OSUnknown
	}
}

func archName(goarch string) string {
	switch goarch {
	case "386":
		return "x86"
	case "amd64":
		return "x86_64"
	default:
		return goarch
	}
}

// Bits returns "64" or "32", the value substituted for ${arch} in natives
// classifiers.
func (p Platform) Bits() string {
	switch p.Arch {
	case "x86_64", "arm64", "amd64":
		return "64"
	default:
		return "32"
	}
}

// Rule allows or disallows something depending on the platform.
type Rule struct {
	Action string  `json:"action"`
	OS     *OSRule `json:"os,omitempty"`
}

// OSRule matches an operating system. Version is a regular expression.
type OSRule struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Arch    string `json:"arch,omitempty"`
}

// Matches reports whether the rule's condition holds on p.
func (r Rule) Matches(p Platform) bool {
	if r.OS == nil {
		return true
	}
	return r.OS.Matches(p)
}

// Matches reports whether every populated field of the OS rule matches p.
func (o OSRule) Matches(p Platform) bool {
	if o.Name != "" && o.Name != p.OS {
		return false
	}
	if o.Arch != "" && archName(o.Arch) != p.Arch {
		return false
	}
	if o.Version != "" {
		re, err := regexp.Compile(o.Version)
		if err != nil || !re.MatchString(p.Version) {
			return false
		}
	}
	return true
}

// Allowed evaluates rules for p: no rules means allowed; otherwise the last
// matching rule decides and nothing matching means disallowed.
func Allowed(rules []Rule, p Platform) bool {
	if len(rules) == 0 {
		return true
	}
	allowed := false
	for _, r := range rules {
		if r.Matches(p) {
			allowed = r.Action == ActionAllow
		}
	}
	return allowed
}
