package gamerepo

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/gamerepo/pkg/config"
	"github.com/arthur-debert/gamerepo/pkg/repository"
	"github.com/arthur-debert/gamerepo/pkg/ui"
)

// ErrIncomplete is returned by check when a version has problems. The
// report has already been rendered, so callers only set the exit status.
var ErrIncomplete = stderrors.New("version is incomplete")

func newListCmd(opts *rootOptions) *cobra.Command {
	var sorted bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Example: MsgListExample,
		GroupID: "versions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			versions := s.repo.Versions()
			if sorted {
				versions = repository.SortVersions(versions)
			}
			return s.renderer.RenderResult(ui.NewVersionList(s.repo.Paths().Root(), versions, s.repo.Warnings()))
		},
	}
	cmd.Flags().BoolVarP(&sorted, "sort", "s", false, MsgFlagSort)
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var resolved bool
	cmd := &cobra.Command{
		Use:               "show <version>",
		Short:             MsgShowShort,
		Example:           MsgShowExample,
		GroupID:           "versions",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: versionIDsCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			if resolved {
				eff, err := s.repo.Resolve(args[0])
				if err != nil {
					return err
				}
				return s.renderer.RenderResult(ui.NewResolvedDetail(eff))
			}
			m, err := s.repo.Version(args[0])
			if err != nil {
				return err
			}
			return s.renderer.RenderResult(ui.NewVersionDetail(m))
		},
	}
	cmd.Flags().BoolVarP(&resolved, "resolved", "r", false, MsgFlagResolve)
	return cmd
}

func newLibrariesCmd(opts *rootOptions) *cobra.Command {
	var nativesOnly, missingOnly bool
	cmd := &cobra.Command{
		Use:               "libraries <version>",
		Aliases:           []string{"libs"},
		Short:             MsgLibrariesShort,
		GroupID:           "versions",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: versionIDsCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			eff, err := s.repo.Resolve(args[0])
			if err != nil {
				return err
			}

			platform := s.repo.Platform()
			list := &ui.LibraryList{
				VersionID: eff.ID(),
				Platform:  fmt.Sprintf("%s-%s", platform.OS, platform.Arch),
				Libraries: []ui.LibraryRow{},
			}
			for _, lib := range eff.Manifest.Libraries {
				if nativesOnly && !lib.IsNative() {
					continue
				}
				path, ok := s.repo.LibraryFile(lib)
				if !ok {
					continue
				}
				present, err := afero.Exists(opts.fs, path)
				if err != nil {
					return err
				}
				if missingOnly && present {
					continue
				}
				list.Libraries = append(list.Libraries, ui.LibraryRow{
					Name:    lib.Name,
					Path:    path,
					Native:  lib.IsNative(),
					Present: present,
				})
			}
			return s.renderer.RenderResult(list)
		},
	}
	cmd.Flags().BoolVarP(&nativesOnly, "natives", "n", false, MsgFlagNatives)
	cmd.Flags().BoolVarP(&missingOnly, "missing", "m", false, MsgFlagMissing)
	return cmd
}

func newPathsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "paths <version>",
		Short:             MsgPathsShort,
		GroupID:           "versions",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: versionIDsCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			id := args[0]
			eff, err := s.repo.Resolve(id)
			if err != nil {
				return err
			}
			jar, err := s.repo.VersionJar(id)
			if err != nil {
				return err
			}
			p := s.repo.Paths()
			assetID := eff.Manifest.AssetID()

			list := &ui.PathList{VersionID: id, Entries: []ui.PathEntry{
				{Name: "root", Path: s.repo.VersionRoot(id)},
				{Name: "manifest", Path: p.VersionManifest(id)},
				{Name: "jar", Path: jar},
				{Name: "run", Path: s.repo.RunDirectory(id)},
				{Name: "natives", Path: s.repo.NativeDirectory(id)},
				{Name: "libraries", Path: p.LibrariesDir()},
				{Name: "assets", Path: s.repo.AssetDirectory(id, assetID)},
			}}
			if assetID != "" {
				list.Entries = append(list.Entries, ui.PathEntry{Name: "index", Path: s.repo.IndexFile(id, assetID)})
			}
			return s.renderer.RenderResult(list)
		},
	}
}

func newRenameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "rename <from> <to>",
		Aliases:           []string{"mv"},
		Short:             MsgRenameShort,
		Example:           MsgRenameExample,
		GroupID:           "versions",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: versionIDsCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			if err := s.repo.RenameVersion(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return s.renderer.RenderMessage(fmt.Sprintf(MsgRenamed, args[0], args[1]))
		},
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "check <version>",
		Short:             MsgCheckShort,
		GroupID:           "versions",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: versionIDsCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			report, err := s.repo.Audit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view := ui.NewAuditView(report)
			if err := s.renderer.RenderResult(view); err != nil {
				return err
			}
			if !view.OK {
				return ErrIncomplete
			}
			return nil
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				_, err := fmt.Fprintln(out, config.GenerateConfigContent())
				return err
			}

			format, err := ui.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			if format.Structured() {
				r, err := ui.NewRenderer(format, out)
				if err != nil {
					return err
				}
				return r.RenderResult(opts.cfg)
			}
			data, err := config.Generate(opts.cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "default", false, MsgFlagDefault)
	return cmd
}
