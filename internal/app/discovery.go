package app

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"stlcopy/internal/domain"
	"stlcopy/internal/logging"
)

// Discoverer locates source folders and files on the configured shares.
// All methods are pure functions of the filesystem snapshot they run
// against; nothing is cached between calls.
type Discoverer struct {
	FS     FileSystem
	Logger logging.Logger
}

// FindTopLevelFolders lists the immediate children of one search root
// and returns the directories whose name contains term
// (case-insensitive). A missing or unreadable root yields an empty
// result, never an error; unreadable entries are skipped.
func (d *Discoverer) FindTopLevelFolders(root domain.SearchRoot, term string) []domain.FoundFolder {
	termLower := strings.ToLower(term)

	info, err := d.FS.Stat(root.Path)
	if err != nil || !info.IsDir() {
		return nil
	}

	entries, err := d.FS.ReadDir(root.Path)
	if err != nil {
		d.Logger.Verbosef("cannot list %s: %v", root.Path, err)
		return nil
	}

	var found []domain.FoundFolder
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !strings.Contains(strings.ToLower(entry.Name()), termLower) {
			continue
		}
		found = append(found, domain.FoundFolder{
			Name:   entry.Name(),
			Path:   filepath.Join(root.Path, entry.Name()),
			Origin: root.Origin(),
		})
	}
	return found
}

// FindFolders runs the top-level search for every term across every
// root, deduplicating by path. The first origin seen for a path wins.
func (d *Discoverer) FindFolders(roots []domain.SearchRoot, terms []string) []domain.FoundFolder {
	stop := d.Logger.Measure("Searching folders")
	defer stop()

	seen := make(map[string]struct{})
	var found []domain.FoundFolder
	for _, root := range roots {
		for _, term := range terms {
			for _, folder := range d.FindTopLevelFolders(root, term) {
				if _, dup := seen[folder.Path]; dup {
					continue
				}
				seen[folder.Path] = struct{}{}
				found = append(found, folder)
			}
		}
	}
	d.Logger.Verbosef("Found %d folder(s) for %d term(s) across %d root(s)", len(found), len(terms), len(roots))
	return found
}

// FindFilesRecursively walks the whole root and collects every regular
// .stl file whose name contains any of the terms (case-insensitive).
// Unreadable subtrees are skipped and reported as warnings.
func (d *Discoverer) FindFilesRecursively(root domain.SearchRoot, terms []string) (paths []string, warnings []string) {
	stop := d.Logger.Measure("Searching files")
	defer stop()

	if len(terms) == 0 {
		return nil, nil
	}
	info, err := d.FS.Stat(root.Path)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	termsLower := make([]string, 0, len(terms))
	for _, term := range terms {
		termsLower = append(termsLower, strings.ToLower(term))
	}

	walkErr := d.FS.WalkDir(root.Path, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not search %s: %v", path, err))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		nameLower := strings.ToLower(entry.Name())
		if !strings.HasSuffix(nameLower, ".stl") {
			return nil
		}
		for _, term := range termsLower {
			if strings.Contains(nameLower, term) {
				paths = append(paths, path)
				break
			}
		}
		return nil
	})
	if walkErr != nil {
		warnings = append(warnings, fmt.Sprintf("could not search %s: %v", root.Path, walkErr))
	}

	d.Logger.Verbosef("Found %d matching file(s) in %s", len(paths), root.Path)
	return paths, warnings
}

// NotFoundTerms returns the search terms that are not a substring of
// any found folder name. The direction matters: the term must occur in
// a result name, not the other way around.
func NotFoundTerms(terms []string, folders []domain.FoundFolder) []string {
	namesLower := make([]string, 0, len(folders))
	for _, folder := range folders {
		namesLower = append(namesLower, strings.ToLower(folder.Name))
	}

	seen := make(map[string]struct{})
	var missing []string
	for _, term := range terms {
		termLower := strings.ToLower(term)
		found := false
		for _, name := range namesLower {
			if strings.Contains(name, termLower) {
				found = true
				break
			}
		}
		if found {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		missing = append(missing, term)
	}
	sort.Strings(missing)
	return missing
}
