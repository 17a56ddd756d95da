package app

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"stlcopy/internal/domain"
	apperrors "stlcopy/internal/errors"
	"stlcopy/internal/logging"
)

// ProgressFunc is called after each attempted file copy.
type ProgressFunc func(done, total int, file string)

// SourceMode tags which variant of the source set a request carries.
type SourceMode int

const (
	SourceFolders SourceMode = iota
	SourceFiles
)

// CopyRequest is the full input of one copy invocation. All state is
// supplied by the caller; the copier holds nothing between calls.
type CopyRequest struct {
	Mode    SourceMode
	Folders []domain.SelectedFolder
	Files   []string
	Plan    domain.CopyPlan

	// TissueExpected comes from the preceding analysis and decides
	// whether the tissue destination must validate.
	TissueExpected bool

	Reveal bool
}

// Copier performs the physical copy. Configuration problems abort
// before any side effect; per-file I/O failures are counted and the
// pass continues.
type Copier struct {
	FS         FileSystem
	Revealer   Revealer
	Logger     logging.Logger
	OnProgress ProgressFunc
}

func (c *Copier) Copy(ctx context.Context, req CopyRequest) (domain.CopyOutcome, error) {
	if err := c.validate(req); err != nil {
		return domain.CopyOutcome{}, err
	}

	stop := c.Logger.Measure("Copying files")
	defer stop()

	if req.Mode == SourceFiles {
		return c.copyFiles(ctx, req)
	}
	return c.copyFolders(ctx, req)
}

func (c *Copier) validate(req CopyRequest) error {
	if req.Mode == SourceFiles {
		if len(req.Files) == 0 {
			return apperrors.New(apperrors.InvalidConfig, "copy", "", "no files selected to copy")
		}
		return c.validateStream("destination", req.Plan.Model)
	}

	if len(req.Folders) == 0 {
		return apperrors.New(apperrors.InvalidConfig, "copy", "", "no folders selected to copy")
	}
	if err := c.validateStream("model destination", req.Plan.Model); err != nil {
		return err
	}
	if req.TissueExpected {
		if err := c.validateStream("tissue destination", req.Plan.Tissue); err != nil {
			return err
		}
	}
	return nil
}

func (c *Copier) validateStream(label string, dest domain.DestSpec) error {
	info, err := c.FS.Stat(dest.Base)
	if err != nil || !info.IsDir() {
		return apperrors.New(apperrors.NotFound, "copy", dest.Base, label+" is not an existing directory")
	}
	if dest.Mode == domain.CopyIntoSubfolder && !domain.IsValidFolderName(dest.Subfolder) {
		return apperrors.New(apperrors.InvalidName, "copy", dest.Subfolder, "invalid "+label+" subfolder name")
	}
	return nil
}

func (c *Copier) copyFolders(ctx context.Context, req CopyRequest) (domain.CopyOutcome, error) {
	outcome := domain.CopyOutcome{}

	// Pre-scan to establish the progress total. Unreadable subtrees are
	// skipped and reported, never aborting the rest of the folder.
	for _, folder := range req.Folders {
		err := c.FS.WalkDir(folder.Path, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("could not fully scan %s: %v", path, err))
				if entry != nil && entry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if !entry.IsDir() && domain.IsCopyable(entry.Name(), folder.Origin) {
				outcome.Expected++
			}
			return nil
		})
		if err != nil {
			outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("could not fully scan %s: %v", folder.Path, err))
		}
	}
	c.Logger.Verbosef("Found %d STL file(s) matching criteria", outcome.Expected)

	if outcome.Expected == 0 {
		return outcome, nil
	}

	destinations := make(map[string]struct{})
	for _, folder := range req.Folders {
		walkErr := c.FS.WalkDir(folder.Path, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				outcome.Errors++
				outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("error walking %s: %v", path, err))
				if entry != nil && entry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if entry.IsDir() || !domain.IsCopyable(entry.Name(), folder.Origin) {
				return nil
			}

			dest := req.Plan.Model
			if domain.IsTissueFile(entry.Name(), folder.Origin) {
				dest = req.Plan.Tissue
			}
			c.copyOne(path, entry.Name(), dest.TargetDir(), &outcome, destinations)
			return nil
		})
		if walkErr != nil {
			if ctx.Err() != nil {
				return outcome, walkErr
			}
			outcome.Errors++
			outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("error walking %s: %v", folder.Path, walkErr))
		}
	}

	outcome.Destinations = sortedKeys(destinations)
	c.reveal(req.Reveal, &outcome)
	return outcome, nil
}

func (c *Copier) copyFiles(ctx context.Context, req CopyRequest) (domain.CopyOutcome, error) {
	outcome := domain.CopyOutcome{Expected: len(req.Files)}

	targetDir := req.Plan.Model.TargetDir()
	if err := c.FS.MkdirAll(targetDir, 0o755); err != nil {
		return domain.CopyOutcome{}, apperrors.Wrap(apperrors.IOFailure, "mkdir", targetDir, err)
	}

	destinations := map[string]struct{}{targetDir: {}}
	for _, src := range req.Files {
		select {
		case <-ctx.Done():
			return outcome, ctx.Err()
		default:
		}
		c.copyOne(src, filepath.Base(src), targetDir, &outcome, destinations)
	}

	outcome.Destinations = sortedKeys(destinations)
	c.reveal(req.Reveal, &outcome)
	return outcome, nil
}

// copyOne copies a single file into targetDir under its original name.
// Collisions overwrite silently but are counted in the outcome.
func (c *Copier) copyOne(src, name, targetDir string, outcome *domain.CopyOutcome, destinations map[string]struct{}) {
	dst := filepath.Join(targetDir, name)

	if err := c.FS.MkdirAll(targetDir, 0o755); err != nil {
		outcome.Errors++
		outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("error creating %s: %v", targetDir, err))
		c.progress(outcome, name)
		return
	}
	destinations[targetDir] = struct{}{}

	existed, _ := c.FS.Exists(dst)

	if err := c.FS.CopyFile(src, dst); err != nil {
		outcome.Errors++
		outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("error copying %s to %s: %v", name, targetDir, err))
		c.progress(outcome, name)
		return
	}

	outcome.Copied++
	if existed {
		outcome.Overwritten++
	}
	c.progress(outcome, name)
}

func (c *Copier) progress(outcome *domain.CopyOutcome, file string) {
	if c.OnProgress != nil {
		c.OnProgress(outcome.Copied+outcome.Errors, outcome.Expected, file)
	}
}

// reveal opens every distinct destination directory after a fully
// clean copy; otherwise it records why nothing was opened.
func (c *Copier) reveal(requested bool, outcome *domain.CopyOutcome) {
	if !requested {
		return
	}
	switch {
	case outcome.Errors > 0:
		outcome.Warnings = append(outcome.Warnings, "destination(s) not opened due to errors")
	case outcome.Copied == 0:
		outcome.Warnings = append(outcome.Warnings, "destination(s) not opened as no files were copied")
	default:
		for _, dest := range outcome.Destinations {
			if c.Revealer == nil {
				break
			}
			if err := c.Revealer.Reveal(dest); err != nil {
				outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("could not open %s: %v", dest, err))
			}
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
