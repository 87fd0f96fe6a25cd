package gamerepo

// Command descriptions
const (
	MsgRootShort = "Inspect and maintain a Minecraft game directory"
	MsgRootLong  = `gamerepo reads the versions, libraries and assets of a Minecraft game
directory. It resolves version inheritance, reconstructs legacy asset
layouts, checks what a version is missing, and renames versions safely.

The game directory defaults to GAMEREPO_ROOT or the directory the official
launcher uses on this platform.`

	MsgListShort      = "List installed versions"
	MsgShowShort      = "Show a version's manifest"
	MsgLibrariesShort = "List the library files a version needs"
	MsgPathsShort     = "Show where a version's files live"
	MsgRenameShort    = "Rename an installed version"
	MsgAssetsShort    = "Work with the asset object store"
	MsgMirrorShort    = "Reconstruct the asset directory a version runs with"
	MsgObjectShort    = "Locate one asset object by name"
	MsgCheckShort     = "Report the files a version is missing or that are damaged"
	MsgConfigShort    = "Print the effective configuration"
	MsgVersionShort   = "Print version information"

	MsgCompletionShort = "Generate shell completion script"
)

// Flag help
const (
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot    = "Game directory (default $GAMEREPO_ROOT or the platform default)"
	MsgFlagConfig  = "Config file (default $XDG_CONFIG_HOME/gamerepo/config.toml)"
	MsgFlagFormat  = "Output format: auto, term, text, json, yaml or toml"
	MsgFlagSort    = "Sort newest release first instead of directory order"
	MsgFlagResolve = "Show the effective manifest after inheritance"
	MsgFlagNatives = "Only list native libraries"
	MsgFlagMissing = "Only list libraries that are not on disk"
	MsgFlagVerify  = "Verify the object's hash before printing its path"
	MsgFlagDefault = "Print the commented default config file instead"
)

// Status messages
const (
	MsgRenamed       = "Renamed %s to %s"
	MsgScanWarning   = "Version directory skipped"
	MsgVersionFormat = "gamerepo version %s\n  commit: %s\n  built:  %s\n"
)

// Examples
const (
	MsgListExample = `  gamerepo list                 # Versions in directory order
  gamerepo list --sort          # Newest release first
  gamerepo list --format json   # Machine readable`

	MsgShowExample = `  gamerepo show 1.20.1
  gamerepo show fabric-loader-0.14.21-1.20.1 --resolved`

	MsgRenameExample = `  gamerepo rename 1.20.1 1.20.1-backup`

	MsgMirrorExample = `  gamerepo assets mirror 1.7.10   # Prints the directory to pass as --assetsDir`
)

// MsgUsageTemplate is cobra's usage template with bold section headings.
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "Commands:"}}{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold .Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
