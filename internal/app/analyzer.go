package app

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"stlcopy/internal/domain"
	"stlcopy/internal/logging"
)

// Analyzer computes size and content summaries for a selection. Both
// entry points are total: per-item I/O failures degrade the result
// instead of aborting it.
type Analyzer struct {
	FS     FileSystem
	Logger logging.Logger
}

// AnalyzeFolders walks every selected folder and classifies each file.
// A folder counts as empty/inaccessible when it cannot be opened as a
// directory, its walk fails, or the walk yields no entries at all.
func (a *Analyzer) AnalyzeFolders(ctx context.Context, selection []domain.SelectedFolder) domain.AnalysisResult {
	stop := a.Logger.Measure("Analyzing folders")
	defer stop()

	var result domain.AnalysisResult
	empty := make(map[string]struct{})

	for _, folder := range selection {
		if ctx.Err() != nil {
			break
		}

		info, err := a.FS.Stat(folder.Path)
		if err != nil || !info.IsDir() {
			empty[folder.Path] = struct{}{}
			continue
		}

		items := 0
		inaccessible := false
		walkErr := a.FS.WalkDir(folder.Path, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				inaccessible = true
				if entry != nil && entry.IsDir() && path != folder.Path {
					return fs.SkipDir
				}
				return nil
			}
			if path == folder.Path {
				return nil
			}
			items++
			if entry.IsDir() {
				return nil
			}

			class := domain.Classify(entry.Name(), folder.Origin)
			if !class.IsSTL {
				result.NonSTLFound = true
				return nil
			}
			if !class.Copyable {
				return nil
			}

			fileInfo, statErr := a.FS.Stat(path)
			if statErr != nil {
				// Vanished or unreadable file, skip silently.
				return nil
			}
			result.TotalCopyableBytes += fileInfo.Size()
			if class.Tissue {
				result.TissueFound = true
			} else if class.Display {
				result.DisplayModelBytes += fileInfo.Size()
			}
			return nil
		})
		if walkErr != nil {
			inaccessible = true
		}

		if inaccessible || items == 0 {
			empty[folder.Path] = struct{}{}
		}
	}

	for path := range empty {
		result.EmptyFolders = append(result.EmptyFolders, path)
	}
	sort.Strings(result.EmptyFolders)

	a.Logger.Verbosef("Analyzed %d folder(s): total %s, display %s, %d empty",
		len(selection), domain.FormatSize(result.TotalCopyableBytes),
		domain.FormatSize(result.DisplayModelBytes), len(result.EmptyFolders))
	return result
}

// AnalyzeFiles summarizes individually discovered files. Every listed
// file contributes to the total size; tissue detection uses the
// generic substring check since file search has a single implicit
// origin. Files that cannot be stat'd are reported as warnings.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths []string) domain.AnalysisResult {
	stop := a.Logger.Measure("Analyzing files")
	defer stop()

	var result domain.AnalysisResult
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		info, err := a.FS.Stat(path)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not get size for %s", path))
			continue
		}
		result.TotalCopyableBytes += info.Size()

		nameLower := strings.ToLower(filepath.Base(path))
		if !strings.HasSuffix(nameLower, ".stl") {
			// Discovery only returns STLs, but tolerate stray input.
			result.NonSTLFound = true
			continue
		}
		if domain.MatchesDisplayKeywords(nameLower) {
			result.DisplayModelBytes += info.Size()
		}
		if strings.Contains(nameLower, "tissue") || strings.Contains(nameLower, "gingiva") {
			result.TissueFound = true
		}
	}

	a.Logger.Verbosef("Analyzed %d file(s): total %s, display %s",
		len(paths), domain.FormatSize(result.TotalCopyableBytes),
		domain.FormatSize(result.DisplayModelBytes))
	return result
}
