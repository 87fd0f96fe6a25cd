package gamerepo

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/ui"
)

func newAssetsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assets",
		Short:   MsgAssetsShort,
		GroupID: "assets",
	}
	cmd.AddCommand(newMirrorCmd(opts))
	cmd.AddCommand(newObjectCmd(opts))
	return cmd
}

// assetIDFor resolves id and returns the asset set it runs with.
func assetIDFor(s *session, id string) (string, error) {
	eff, err := s.repo.Resolve(id)
	if err != nil {
		return "", err
	}
	assetID := eff.Manifest.AssetID()
	if assetID == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "version %s declares no asset index", id).
			WithDetail("id", id)
	}
	return assetID, nil
}

func newMirrorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "mirror <version>",
		Short:             MsgMirrorShort,
		Example:           MsgMirrorExample,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: versionIDsCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			id := args[0]
			assetID, err := assetIDFor(s, id)
			if err != nil {
				return err
			}
			dir, err := s.repo.ActualAssetDirectory(cmd.Context(), id, assetID)
			if err != nil {
				return err
			}
			return s.renderer.RenderResult(&ui.AssetView{VersionID: id, AssetID: assetID, Path: dir})
		},
	}
}

func newObjectCmd(opts *rootOptions) *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:               "object <version> <name>",
		Short:             MsgObjectShort,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: versionIDsCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			id, name := args[0], args[1]
			assetID, err := assetIDFor(s, id)
			if err != nil {
				return err
			}
			path, err := s.repo.AssetObject(id, assetID, name)
			if err != nil {
				return err
			}
			ix, err := s.repo.AssetIndex(id, assetID)
			if err != nil {
				return err
			}
			obj, _ := ix.Object(name)

			view := &ui.AssetView{
				VersionID: id,
				AssetID:   assetID,
				Name:      name,
				Hash:      obj.Hash,
				Size:      obj.Size,
				Path:      path,
			}
			if verify {
				if err := s.repo.Store().Check(obj); err != nil {
					return err
				}
				view.Verified = true
			}
			return s.renderer.RenderResult(view)
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, MsgFlagVerify)
	return cmd
}
