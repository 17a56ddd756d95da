package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"stlcopy/internal/domain"
	apperrors "stlcopy/internal/errors"
)

var (
	modelBase  = filepath.Join("/", "dest", "models")
	tissueBase = filepath.Join("/", "dest", "tissue")
)

func directPlan() domain.CopyPlan {
	return domain.CopyPlan{
		Model:  domain.DestSpec{Base: modelBase},
		Tissue: domain.DestSpec{Base: tissueBase},
	}
}

func TestCopyRoutesTissueAndModelStreams(t *testing.T) {
	folder := filepath.Join(openRoot.Path, "Case 2025-12345")
	mock := newMockFS()
	mock.addFile(filepath.Join(folder, "modelbase_1.stl"), 500*1024)
	mock.addFile(filepath.Join(folder, "tissue_1.stl"), 200*1024)
	mock.addFile(filepath.Join(folder, "notes.txt"), 1024)
	mock.addDir(modelBase)
	mock.addDir(tissueBase)

	c := Copier{FS: mock}
	outcome, err := c.Copy(context.Background(), CopyRequest{
		Mode:           SourceFolders,
		Folders:        []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
		Plan:           directPlan(),
		TissueExpected: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Expected != 2 || outcome.Copied != 2 || outcome.Errors != 0 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if outcome.Status() != domain.CopyStatusSuccess {
		t.Fatalf("status = %v, want success", outcome.Status())
	}

	wantCopies := map[string]string{
		filepath.Join(folder, "modelbase_1.stl"): filepath.Join(modelBase, "modelbase_1.stl"),
		filepath.Join(folder, "tissue_1.stl"):    filepath.Join(tissueBase, "tissue_1.stl"),
	}
	if len(mock.copies) != len(wantCopies) {
		t.Fatalf("unexpected copies: %+v", mock.copies)
	}
	for _, rec := range mock.copies {
		if wantCopies[rec.src] != rec.dst {
			t.Errorf("copied %s to %s, want %s", rec.src, rec.dst, wantCopies[rec.src])
		}
	}
	if len(outcome.Destinations) != 2 {
		t.Fatalf("unexpected destinations: %v", outcome.Destinations)
	}
}

func TestCopyIntoSubfolderResolvesTargets(t *testing.T) {
	folder := filepath.Join(openRoot.Path, "Case")
	mock := newMockFS()
	mock.addFile(filepath.Join(folder, "modelbase_1.stl"), 100)
	mock.addDir(modelBase)
	mock.addDir(tissueBase)

	plan := directPlan()
	plan.Model = domain.DestSpec{Base: modelBase, Mode: domain.CopyIntoSubfolder, Subfolder: "Monday Prints"}

	c := Copier{FS: mock}
	outcome, err := c.Copy(context.Background(), CopyRequest{
		Mode:    SourceFolders,
		Folders: []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
		Plan:    plan,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDir := filepath.Join(modelBase, "Monday Prints")
	if len(mock.copies) != 1 || mock.copies[0].dst != filepath.Join(wantDir, "modelbase_1.stl") {
		t.Fatalf("unexpected copies: %+v", mock.copies)
	}
	if len(outcome.Destinations) != 1 || outcome.Destinations[0] != wantDir {
		t.Fatalf("unexpected destinations: %v", outcome.Destinations)
	}
}

func TestCopyValidationAbortsWithoutSideEffects(t *testing.T) {
	folder := filepath.Join(openRoot.Path, "Case")
	mock := newMockFS()
	mock.addFile(filepath.Join(folder, "modelbase_1.stl"), 100)
	mock.addDir(modelBase)
	mock.addDir(tissueBase)

	c := Copier{FS: mock}

	tests := []struct {
		name string
		req  CopyRequest
		kind apperrors.Kind
	}{
		{
			name: "empty selection",
			req:  CopyRequest{Mode: SourceFolders, Plan: directPlan()},
			kind: apperrors.InvalidConfig,
		},
		{
			name: "missing model base",
			req: CopyRequest{
				Mode:    SourceFolders,
				Folders: []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
				Plan:    domain.CopyPlan{Model: domain.DestSpec{Base: filepath.Join("/", "nope")}},
			},
			kind: apperrors.NotFound,
		},
		{
			name: "invalid subfolder name",
			req: CopyRequest{
				Mode:    SourceFolders,
				Folders: []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
				Plan: domain.CopyPlan{Model: domain.DestSpec{
					Base: modelBase, Mode: domain.CopyIntoSubfolder, Subfolder: "bad:name",
				}},
			},
			kind: apperrors.InvalidName,
		},
		{
			name: "tissue base only checked when expected",
			req: CopyRequest{
				Mode:           SourceFolders,
				Folders:        []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
				Plan:           domain.CopyPlan{Model: domain.DestSpec{Base: modelBase}},
				TissueExpected: true,
			},
			kind: apperrors.NotFound,
		},
	}
	for _, tt := range tests {
		_, err := c.Copy(context.Background(), tt.req)
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Kind != tt.kind {
			t.Errorf("%s: error = %v, want kind %v", tt.name, err, tt.kind)
		}
	}
	if len(mock.copies) != 0 || len(mock.mkdirs) != 0 {
		t.Fatalf("validation must not touch the filesystem: copies=%v mkdirs=%v", mock.copies, mock.mkdirs)
	}
}

func TestCopyCountsPerFileErrorsAndContinues(t *testing.T) {
	folder := filepath.Join(openRoot.Path, "Case")
	good := filepath.Join(folder, "modelbase_1.stl")
	bad := filepath.Join(folder, "modelbase_2.stl")
	mock := newMockFS()
	mock.addFile(good, 100)
	mock.addFile(bad, 100)
	mock.copyErrs[bad] = errors.New("disk full")
	mock.addDir(modelBase)

	var progressCalls int
	c := Copier{FS: mock, OnProgress: func(done, total int, file string) {
		progressCalls++
		if total != 2 {
			t.Errorf("progress total = %d, want 2", total)
		}
	}}
	outcome, err := c.Copy(context.Background(), CopyRequest{
		Mode:    SourceFolders,
		Folders: []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
		Plan:    domain.CopyPlan{Model: domain.DestSpec{Base: modelBase}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Copied != 1 || outcome.Errors != 1 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if outcome.Status() != domain.CopyStatusSuccessWithErrors {
		t.Fatalf("status = %v, want success with errors", outcome.Status())
	}
	if len(outcome.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", outcome.Warnings)
	}
	if progressCalls != 2 {
		t.Fatalf("progress called %d times, want 2", progressCalls)
	}
}

func TestCopyToleratesUnreadableSubdirectories(t *testing.T) {
	folder := filepath.Join(openRoot.Path, "Case")
	locked := filepath.Join(folder, "aaa_locked")
	mock := newMockFS()
	mock.addDir(locked)
	mock.addFile(filepath.Join(locked, "unreachable.stl"), 999)
	mock.addFile(filepath.Join(folder, "modelbase_1.stl"), 1000)
	mock.walkEntryErrs[locked] = errors.New("permission denied")
	mock.addDir(modelBase)

	// The locked subdirectory sorts before the copyable sibling; the
	// walk must skip it and still reach the rest of the folder.
	c := Copier{FS: mock}
	outcome, err := c.Copy(context.Background(), CopyRequest{
		Mode:    SourceFolders,
		Folders: []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
		Plan:    domain.CopyPlan{Model: domain.DestSpec{Base: modelBase}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Expected != 1 || outcome.Copied != 1 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if outcome.Errors != 1 {
		t.Fatalf("walk failure must be counted, got %+v", outcome)
	}
	if len(mock.copies) != 1 || mock.copies[0].src != filepath.Join(folder, "modelbase_1.stl") {
		t.Fatalf("unexpected copies: %+v", mock.copies)
	}
	if len(outcome.Warnings) == 0 {
		t.Fatalf("expected scan/walk warnings, got none")
	}
}

func TestCopyCountsOverwrites(t *testing.T) {
	folder := filepath.Join(openRoot.Path, "Case")
	mock := newMockFS()
	mock.addFile(filepath.Join(folder, "modelbase_1.stl"), 100)
	mock.addDir(modelBase)
	mock.addFile(filepath.Join(modelBase, "modelbase_1.stl"), 50)

	c := Copier{FS: mock}
	req := CopyRequest{
		Mode:    SourceFolders,
		Folders: []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
		Plan:    domain.CopyPlan{Model: domain.DestSpec{Base: modelBase}},
	}
	outcome, err := c.Copy(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Copied != 1 || outcome.Overwritten != 1 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	// A second run is idempotent apart from the overwrite counter.
	outcome, err = c.Copy(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Copied != 1 || outcome.Overwritten != 1 || outcome.Errors != 0 {
		t.Fatalf("unexpected outcome on rerun: %+v", outcome)
	}
}

func TestCopyNothingMatchingIsANoOp(t *testing.T) {
	folder := filepath.Join(openRoot.Path, "Case")
	mock := newMockFS()
	mock.addFile(filepath.Join(folder, "notes.txt"), 100)
	mock.addDir(modelBase)

	revealer := &mockRevealer{}
	c := Copier{FS: mock, Revealer: revealer}
	outcome, err := c.Copy(context.Background(), CopyRequest{
		Mode:    SourceFolders,
		Folders: []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
		Plan:    domain.CopyPlan{Model: domain.DestSpec{Base: modelBase}},
		Reveal:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Expected != 0 || outcome.Copied != 0 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if outcome.Status() != domain.CopyStatusNothingTransferred {
		t.Fatalf("status = %v, want nothing transferred", outcome.Status())
	}
	if len(mock.copies) != 0 || len(revealer.opened) != 0 {
		t.Fatalf("no-op must not copy or reveal")
	}
}

func TestCopyRevealsDestinationsOnCleanCopy(t *testing.T) {
	folder := filepath.Join(openRoot.Path, "Case")
	mock := newMockFS()
	mock.addFile(filepath.Join(folder, "modelbase_1.stl"), 100)
	mock.addFile(filepath.Join(folder, "tissue_1.stl"), 100)
	mock.addDir(modelBase)
	mock.addDir(tissueBase)

	revealer := &mockRevealer{}
	c := Copier{FS: mock, Revealer: revealer}
	_, err := c.Copy(context.Background(), CopyRequest{
		Mode:           SourceFolders,
		Folders:        []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
		Plan:           directPlan(),
		TissueExpected: true,
		Reveal:         true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(revealer.opened) != 2 {
		t.Fatalf("expected both destinations revealed, got %v", revealer.opened)
	}
}

func TestCopySkipsRevealAfterErrors(t *testing.T) {
	folder := filepath.Join(openRoot.Path, "Case")
	good := filepath.Join(folder, "modelbase_1.stl")
	bad := filepath.Join(folder, "modelbase_2.stl")
	mock := newMockFS()
	mock.addFile(good, 100)
	mock.addFile(bad, 100)
	mock.copyErrs[bad] = errors.New("disk full")
	mock.addDir(modelBase)

	revealer := &mockRevealer{}
	c := Copier{FS: mock, Revealer: revealer}
	outcome, err := c.Copy(context.Background(), CopyRequest{
		Mode:    SourceFolders,
		Folders: []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
		Plan:    domain.CopyPlan{Model: domain.DestSpec{Base: modelBase}},
		Reveal:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(revealer.opened) != 0 {
		t.Fatalf("reveal must be skipped after errors, opened %v", revealer.opened)
	}
	found := false
	for _, warning := range outcome.Warnings {
		if warning == "destination(s) not opened due to errors" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing reveal warning, got %v", outcome.Warnings)
	}
}

func TestCopyFilesUsesSingleDestination(t *testing.T) {
	a := filepath.Join(queueRoot.Path, "modelbase_1.stl")
	b := filepath.Join(queueRoot.Path, "nested", "tissue_1.stl")
	mock := newMockFS()
	mock.addFile(a, 100)
	mock.addFile(b, 200)
	mock.addDir(modelBase)

	c := Copier{FS: mock}
	outcome, err := c.Copy(context.Background(), CopyRequest{
		Mode:  SourceFiles,
		Files: []string{a, b},
		Plan:  domain.CopyPlan{Model: domain.DestSpec{Base: modelBase}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Expected != 2 || outcome.Copied != 2 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	// File mode flattens: everything lands in one directory.
	if len(outcome.Destinations) != 1 || outcome.Destinations[0] != modelBase {
		t.Fatalf("unexpected destinations: %v", outcome.Destinations)
	}
}

func TestCopyFilesFailsFastWhenTargetCannotBeCreated(t *testing.T) {
	src := filepath.Join(queueRoot.Path, "modelbase_1.stl")
	target := filepath.Join(modelBase, "Monday Prints")
	mock := newMockFS()
	mock.addFile(src, 100)
	mock.addDir(modelBase)
	mock.mkdirErrs[target] = errors.New("read-only share")

	c := Copier{FS: mock}
	_, err := c.Copy(context.Background(), CopyRequest{
		Mode:  SourceFiles,
		Files: []string{src},
		Plan: domain.CopyPlan{Model: domain.DestSpec{
			Base: modelBase, Mode: domain.CopyIntoSubfolder, Subfolder: "Monday Prints",
		}},
	})
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.IOFailure {
		t.Fatalf("error = %v, want IO failure", err)
	}
	if len(mock.copies) != 0 {
		t.Fatalf("no files must be copied after a fatal mkdir error")
	}
}

func TestCopyStopsOnCancelledContext(t *testing.T) {
	folder := filepath.Join(openRoot.Path, "Case")
	mock := newMockFS()
	mock.addFile(filepath.Join(folder, "modelbase_1.stl"), 100)
	mock.addDir(modelBase)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := Copier{FS: mock}
	_, err := c.Copy(ctx, CopyRequest{
		Mode:    SourceFolders,
		Folders: []domain.SelectedFolder{{Path: folder, Origin: openRoot.Origin()}},
		Plan:    domain.CopyPlan{Model: domain.DestSpec{Base: modelBase}},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if len(mock.copies) != 0 {
		t.Fatalf("cancelled copy must not transfer files")
	}
}
