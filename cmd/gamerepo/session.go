package gamerepo

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/gamerepo/pkg/assets"
	"github.com/arthur-debert/gamerepo/pkg/config"
	"github.com/arthur-debert/gamerepo/pkg/filesystem"
	"github.com/arthur-debert/gamerepo/pkg/logging"
	"github.com/arthur-debert/gamerepo/pkg/paths"
	"github.com/arthur-debert/gamerepo/pkg/repository"
	"github.com/arthur-debert/gamerepo/pkg/ui"
)

// rootOptions holds the persistent flags and what PersistentPreRunE
// derives from them.
type rootOptions struct {
	verbosity  int
	root       string
	configFile string
	format     string

	cfg *config.Config
	fs  afero.Fs
}

// overrides turns explicitly set flags into config overrides.
func (o *rootOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	out := map[string]interface{}{}
	if cmd.Flags().Changed("root") {
		out["repository.root"] = o.root
	}
	return out
}

func (o *rootOptions) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(config.LoadOptions{
		File:      o.configFile,
		Overrides: o.overrides(cmd),
	})
	if err != nil {
		return err
	}
	o.cfg = cfg
	if o.fs == nil {
		o.fs = filesystem.NewOS()
	}
	return nil
}

// session is a refreshed repository plus a renderer for one command.
type session struct {
	cfg      *config.Config
	repo     *repository.Local
	renderer ui.Renderer
	format   ui.Format
}

func openSession(cmd *cobra.Command, o *rootOptions) (*session, error) {
	logger := logging.GetLogger("cli")

	renderer, format, err := newRenderer(cmd, o)
	if err != nil {
		return nil, err
	}

	repo, err := newRepository(o.cfg, o.fs)
	if err != nil {
		return nil, err
	}
	result, err := repo.Refresh(cmd.Context())
	if err != nil {
		return nil, err
	}
	for _, w := range result.Warnings {
		logger.Warn().Str("id", w.VersionID).Str("path", w.Path).Err(w.Err).
			Bool("skipped", w.Skipped).Msg(MsgScanWarning)
	}
	log.Debug().Int("versions", result.Versions).Str("root", repo.Paths().Root()).Msg("Repository ready")

	return &session{cfg: o.cfg, repo: repo, renderer: renderer, format: format}, nil
}

func newRenderer(cmd *cobra.Command, o *rootOptions) (ui.Renderer, ui.Format, error) {
	format, err := ui.ParseFormat(o.format)
	if err != nil {
		return nil, format, err
	}
	r, err := ui.NewRenderer(format, cmd.OutOrStdout())
	return r, format, err
}

// newRepository wires paths, the asset store and the catalog from cfg.
func newRepository(cfg *config.Config, fsys afero.Fs) (*repository.Local, error) {
	mode, err := paths.ParseRunDirectoryMode(cfg.Repository.RunDirectory)
	if err != nil {
		return nil, err
	}
	p, err := paths.New(cfg.Repository.Root, paths.WithRunDirectoryMode(mode))
	if err != nil {
		return nil, err
	}

	store := assets.NewStore(fsys, p,
		assets.WithStrictVerify(cfg.Assets.StrictVerify),
		assets.WithLinkMode(filesystem.LinkMode(cfg.Assets.LinkMode)),
		assets.WithMirrorWorkers(cfg.Assets.MirrorWorkers),
	)
	return repository.NewLocal(fsys, p,
		repository.WithScanWorkers(cfg.Repository.ScanWorkers),
		repository.WithMaxDepth(cfg.Repository.MaxInheritanceDepth),
		repository.WithAssetStore(store),
	), nil
}
