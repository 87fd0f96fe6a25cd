package repository

import (
	"context"
	"os"

	"github.com/arthur-debert/gamerepo/pkg/assets"
	"github.com/arthur-debert/gamerepo/pkg/errors"
	"github.com/arthur-debert/gamerepo/pkg/logging"
)

// AuditReport lists the files a version needs that are absent or damaged.
// It is what a downloader would have to fetch; nothing is fetched here.
type AuditReport struct {
	VersionID string
	Chain     []string

	Jar        string
	JarMissing bool

	Libraries        int
	MissingLibraries []string

	AssetID          string
	IndexMissing     bool
	Objects          int
	MissingObjects   []string
	CorruptedObjects []string

	LoggingConfig        string
	LoggingConfigMissing bool
	LoggingConfigInvalid error
}

// OK reports whether nothing is missing or damaged.
func (a *AuditReport) OK() bool {
	return !a.JarMissing &&
		len(a.MissingLibraries) == 0 &&
		!a.IndexMissing &&
		len(a.MissingObjects) == 0 &&
		len(a.CorruptedObjects) == 0 &&
		!a.LoggingConfigMissing &&
		a.LoggingConfigInvalid == nil
}

// Audit checks every file id needs on the repository's platform. Objects
// are hashed only when the asset store verifies strictly.
func (r *Local) Audit(ctx context.Context, id string) (*AuditReport, error) {
	eff, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}
	logger := r.logger.With().Str("version", id).Logger()
	defer logging.LogOperationStart(logger, "audit")()

	m := eff.Manifest
	report := &AuditReport{VersionID: id, Chain: eff.Chain}

	report.Jar = r.paths.VersionJar(eff.JarID())
	if report.JarMissing, err = r.missing(report.Jar); err != nil {
		return nil, err
	}

	for _, lib := range m.Libraries {
		file, ok := r.LibraryFile(lib)
		if !ok {
			continue
		}
		report.Libraries++
		missing, err := r.missing(file)
		if err != nil {
			return nil, err
		}
		if missing {
			report.MissingLibraries = append(report.MissingLibraries, file)
		}
	}

	if err := r.auditAssets(ctx, m.AssetID(), report); err != nil {
		return nil, err
	}

	if info, ok := m.ClientLogging(); ok {
		file, err := r.store.LoggingObject(info)
		switch {
		case errors.IsNotFound(err):
			report.LoggingConfig = r.paths.LoggingConfigFile(info.File.ID)
			report.LoggingConfigMissing = true
		case errors.IsCorruption(err):
			report.LoggingConfig = r.paths.LoggingConfigFile(info.File.ID)
			report.LoggingConfigInvalid = err
		case err != nil:
			return nil, err
		default:
			report.LoggingConfig = file
			if _, err := assets.InspectLoggingConfig(r.fs, file); err != nil {
				report.LoggingConfigInvalid = err
			}
		}
	}

	logger.Debug().Bool("ok", report.OK()).Msg("Audit finished")
	return report, nil
}

func (r *Local) auditAssets(ctx context.Context, assetID string, report *AuditReport) error {
	if assetID == "" {
		return nil
	}
	report.AssetID = assetID

	ix, err := r.store.LoadIndex(assetID)
	if errors.IsNotFound(err) {
		report.IndexMissing = true
		return nil
	}
	if err != nil {
		return err
	}

	checked := make(map[string]bool, len(ix.Objects))
	for _, name := range ix.Names() {
		if err := ctx.Err(); err != nil {
			return err
		}
		obj := ix.Objects[name]
		if checked[obj.Hash] {
			continue
		}
		checked[obj.Hash] = true
		report.Objects++

		if !r.store.Strict() {
			missing, err := r.missing(r.store.ObjectPath(obj))
			if err != nil {
				return err
			}
			if missing {
				report.MissingObjects = append(report.MissingObjects, name)
			}
			continue
		}

		err := r.store.Check(obj)
		switch {
		case errors.IsNotFound(err):
			report.MissingObjects = append(report.MissingObjects, name)
		case errors.IsCorruption(err):
			report.CorruptedObjects = append(report.CorruptedObjects, name)
		case err != nil:
			return err
		}
	}
	return nil
}

func (r *Local) missing(path string) (bool, error) {
	_, err := r.fs.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, errors.Wrap(err, errors.ErrIO, "cannot stat file").WithDetail("path", path)
}

