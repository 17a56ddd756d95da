package presentation

import (
	"bytes"
	"strings"
	"testing"

	"stlcopy/internal/domain"
)

func render(fn func(p Printer)) string {
	var buf bytes.Buffer
	fn(Printer{Writer: &buf})
	return buf.String()
}

func TestPrintFolderSearch(t *testing.T) {
	out := render(func(p Printer) {
		p.PrintFolderSearch([]domain.FoundFolder{
			{Name: "Case 2025-12345", Origin: domain.Origin{Label: "Model Material"}},
		}, []string{"2025-77777"})
	})
	if !strings.Contains(out, "Found 1 matching folder(s):") {
		t.Errorf("missing found header:\n%s", out)
	}
	if !strings.Contains(out, "Case 2025-12345  (Model Material)") {
		t.Errorf("missing folder line:\n%s", out)
	}
	if !strings.Contains(out, "Folders not found for search term(s):") || !strings.Contains(out, "- 2025-77777") {
		t.Errorf("missing not-found section:\n%s", out)
	}

	out = render(func(p Printer) { p.PrintFolderSearch(nil, nil) })
	if !strings.Contains(out, "No matching folders found.") {
		t.Errorf("missing empty message:\n%s", out)
	}
}

func TestPrintFileSearchTruncatesLongLists(t *testing.T) {
	paths := make([]string, 25)
	for i := range paths {
		paths[i] = "/queue/modelbase_" + string(rune('a'+i)) + ".stl"
	}
	out := render(func(p Printer) { p.PrintFileSearch(paths, nil) })
	if !strings.Contains(out, "Found 25 matching STL file(s):") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "... and 5 more") {
		t.Errorf("missing truncation line:\n%s", out)
	}
}

func TestPrintAnalysisReportsCapGate(t *testing.T) {
	result := domain.AnalysisResult{
		TotalCopyableBytes: 700 * 1024 * 1024,
		DisplayModelBytes:  512 * 1024 * 1024,
		NonSTLFound:        true,
		TissueFound:        true,
		EmptyFolders:       []string{"/shares/models/Empty Case"},
	}
	out := render(func(p Printer) { p.PrintAnalysis(result, 620*1024*1024) })
	if !strings.Contains(out, "Model files size (display): 512.0 MB") {
		t.Errorf("missing display size:\n%s", out)
	}
	if !strings.Contains(out, "exceeds the 620.0 MB cap! Copying is blocked.") {
		t.Errorf("missing cap gate:\n%s", out)
	}
	if !strings.Contains(out, "non-STL files") || !strings.Contains(out, "tissue/gingiva files") {
		t.Errorf("missing advisories:\n%s", out)
	}
	if !strings.Contains(out, "- Empty Case") {
		t.Errorf("missing empty folder base name:\n%s", out)
	}

	result.TotalCopyableBytes = 100 * 1024 * 1024
	out = render(func(p Printer) { p.PrintAnalysis(result, 620*1024*1024) })
	if !strings.Contains(out, "Total copy size: 100.0 MB") {
		t.Errorf("missing total line:\n%s", out)
	}
}

func TestPrintOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome domain.CopyOutcome
		want    string
	}{
		{
			name:    "success",
			outcome: domain.CopyOutcome{Expected: 2, Copied: 2, Destinations: []string{"/dest"}},
			want:    "Successfully copied 2 STL file(s).",
		},
		{
			name:    "success with errors",
			outcome: domain.CopyOutcome{Expected: 3, Copied: 2, Errors: 1},
			want:    "Copied 2 STL file(s) with 1 error(s).",
		},
		{
			name:    "failed",
			outcome: domain.CopyOutcome{Expected: 2, Errors: 2},
			want:    "Copy failed. Encountered 2 error(s).",
		},
		{
			name:    "attempted but nothing transferred",
			outcome: domain.CopyOutcome{Expected: 2},
			want:    "Attempted copy, but no files matching criteria were transferred.",
		},
		{
			name:    "nothing matched",
			outcome: domain.CopyOutcome{},
			want:    "No STL files matching criteria found.",
		},
	}
	for _, tt := range tests {
		out := render(func(p Printer) { p.PrintOutcome(tt.outcome) })
		if !strings.Contains(out, tt.want) {
			t.Errorf("%s: missing %q in:\n%s", tt.name, tt.want, out)
		}
	}

	out := render(func(p Printer) {
		p.PrintOutcome(domain.CopyOutcome{
			Copied:       1,
			Overwritten:  1,
			Destinations: []string{"/dest/models"},
			Warnings:     []string{"could not open /dest/models: no handler"},
		})
	})
	if !strings.Contains(out, "Overwrote 1 existing file(s).") {
		t.Errorf("missing overwrite line:\n%s", out)
	}
	if !strings.Contains(out, "-> /dest/models") {
		t.Errorf("missing destination line:\n%s", out)
	}
	if !strings.Contains(out, "Warnings:") {
		t.Errorf("missing warnings section:\n%s", out)
	}
}
