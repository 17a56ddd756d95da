package domain

import "testing"

var (
	openOrigin       = Origin{Label: "Model Material"}
	restrictedOrigin = Origin{Label: "Exocad", Restricted: true}
)

func TestIsSTLFileIsCaseInsensitive(t *testing.T) {
	names := []string{"case.stl", "CASE.STL", "Case.Stl", "modelbase_1.sTl"}
	for _, name := range names {
		if !IsSTLFile(name) {
			t.Errorf("expected %q to be an STL", name)
		}
	}
	for _, name := range []string{"case.txt", "case.stl.bak", "stl", "case"} {
		if IsSTLFile(name) {
			t.Errorf("expected %q not to be an STL", name)
		}
	}
}

func TestIsAllowedForOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin Origin
		want   bool
	}{
		{"randomname.stl", openOrigin, true},
		{"randomname.stl", restrictedOrigin, false},
		{"model_final.stl", restrictedOrigin, true},
		{"MODELBASE_2.stl", restrictedOrigin, true},
		{"upper_GINGIVA.stl", restrictedOrigin, true},
		{"crown_47.stl", restrictedOrigin, false},
	}
	for _, tt := range tests {
		if got := IsAllowedForOrigin(tt.name, tt.origin); got != tt.want {
			t.Errorf("IsAllowedForOrigin(%q, %s) = %v, want %v", tt.name, tt.origin.Label, got, tt.want)
		}
	}
}

func TestIsTissueFile(t *testing.T) {
	tests := []struct {
		name   string
		origin Origin
		want   bool
	}{
		{"tissue_1.stl", openOrigin, true},
		{"upper_Gingiva.stl", openOrigin, true},
		{"modelbase_1.stl", openOrigin, false},
		{"modelgingiva_3.stl", restrictedOrigin, true},
		{"tissue_3.stl", restrictedOrigin, true},
		{"modelbase_3.stl", restrictedOrigin, false},
	}
	for _, tt := range tests {
		if got := IsTissueFile(tt.name, tt.origin); got != tt.want {
			t.Errorf("IsTissueFile(%q, %s) = %v, want %v", tt.name, tt.origin.Label, got, tt.want)
		}
	}
}

func TestMatchesDisplayKeywords(t *testing.T) {
	for _, name := range []string{"modelbase_1.stl", "Antag_upper.stl", "die_14.stl", "TOOTH_3.stl"} {
		if !MatchesDisplayKeywords(name) {
			t.Errorf("expected %q to match display keywords", name)
		}
	}
	if MatchesDisplayKeywords("gingiva_1.stl") {
		t.Errorf("expected gingiva name not to match display keywords")
	}
}

func TestClassifyTissueAndDisplayAreExclusive(t *testing.T) {
	// "modeltissue" matches both the display and tissue keyword sets;
	// tissue wins and the file never counts toward the display size.
	class := Classify("modeltissue_1.stl", openOrigin)
	if !class.Copyable {
		t.Fatalf("expected copyable")
	}
	if !class.Tissue {
		t.Fatalf("expected tissue")
	}
	if class.Display {
		t.Fatalf("tissue file must not count toward display size")
	}

	class = Classify("modelbase_1.stl", openOrigin)
	if class.Tissue || !class.Display {
		t.Fatalf("expected display-only classification, got %+v", class)
	}
}

func TestClassifyRestrictedOrigin(t *testing.T) {
	class := Classify("randomname.stl", restrictedOrigin)
	if class.Copyable {
		t.Fatalf("restricted origin must filter non-matching names")
	}
	if class.Tissue || class.Display {
		t.Fatalf("non-copyable files carry no further attributes, got %+v", class)
	}

	class = Classify("notes.txt", restrictedOrigin)
	if class.IsSTL || class.Copyable {
		t.Fatalf("non-STL must never be copyable, got %+v", class)
	}
}
