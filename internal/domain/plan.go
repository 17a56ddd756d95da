package domain

import "path/filepath"

// SearchRoot is a named, configured filesystem location. Restricted
// roots apply the allow-list filter to their files; the print-queue
// root is the one searched recursively in file mode.
type SearchRoot struct {
	Label      string
	Path       string
	Restricted bool
	PrintQueue bool
}

// Origin derives the classification context folders from this root carry.
func (r SearchRoot) Origin() Origin {
	return Origin{Label: r.Label, Restricted: r.Restricted}
}

// FoundFolder is one top-level folder discovered by a folder search.
type FoundFolder struct {
	Name   string
	Path   string
	Origin Origin
}

// SelectedFolder is a folder the operator picked for analysis and copy.
type SelectedFolder struct {
	Path   string
	Origin Origin
}

// AnalysisResult summarizes one selection of folders or files. It has
// no identity beyond the selection it was computed from.
type AnalysisResult struct {
	TotalCopyableBytes int64
	DisplayModelBytes  int64
	NonSTLFound        bool
	TissueFound        bool
	EmptyFolders       []string
	Warnings           []string
}

// ExceedsCap is the caller-facing size gate. The copy engine itself
// never enforces the cap.
func (r AnalysisResult) ExceedsCap(capBytes int64) bool {
	return capBytes > 0 && r.TotalCopyableBytes > capBytes
}

// CopyMode selects whether a stream lands directly in its base
// directory or inside a freshly named subfolder.
type CopyMode int

const (
	CopyDirect CopyMode = iota
	CopyIntoSubfolder
)

// DestSpec is the destination configuration for one stream.
type DestSpec struct {
	Base      string
	Mode      CopyMode
	Subfolder string
}

// TargetDir resolves the directory files of this stream are written to.
func (d DestSpec) TargetDir() string {
	if d.Mode == CopyIntoSubfolder {
		return filepath.Join(d.Base, d.Subfolder)
	}
	return d.Base
}

// CopyPlan carries the destination configuration for both streams.
// File mode uses only the Model stream.
type CopyPlan struct {
	Model  DestSpec
	Tissue DestSpec
}

// CopyStatus is the single terminal status of a copy invocation.
type CopyStatus int

const (
	CopyStatusSuccess CopyStatus = iota
	CopyStatusSuccessWithErrors
	CopyStatusFailed
	CopyStatusNothingTransferred
)

// CopyOutcome reports what one copy invocation actually did.
type CopyOutcome struct {
	Expected     int
	Copied       int
	Errors       int
	Overwritten  int
	Destinations []string
	Warnings     []string
}

// Status folds the counters into exactly one terminal status.
func (o CopyOutcome) Status() CopyStatus {
	switch {
	case o.Copied > 0 && o.Errors > 0:
		return CopyStatusSuccessWithErrors
	case o.Copied > 0:
		return CopyStatusSuccess
	case o.Errors > 0:
		return CopyStatusFailed
	default:
		return CopyStatusNothingTransferred
	}
}
