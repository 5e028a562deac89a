package sync

import "testing"

func TestFingerprint_Deterministic(t *testing.T) {
	files := map[string]string{
		"Work___Notes.md": "# Hi",
		"Work___Flow.mmd": "graph TD",
	}

	hash1 := Fingerprint(files)
	hash2 := Fingerprint(map[string]string{
		"Work___Flow.mmd": "graph TD",
		"Work___Notes.md": "# Hi",
	})

	if hash1 != hash2 {
		t.Errorf("Expected same fingerprint regardless of map order, got %s and %s", hash1, hash2)
	}
}

func TestFingerprint_ContentSensitive(t *testing.T) {
	base := map[string]string{"Work___Notes.md": "# Hi"}

	tests := []struct {
		name  string
		files map[string]string
	}{
		{"content changed", map[string]string{"Work___Notes.md": "# Hi!"}},
		{"path changed", map[string]string{"Work___Note.md": "# Hi"}},
		{"file added", map[string]string{"Work___Notes.md": "# Hi", "Work___More.md": ""}},
		{"file removed", map[string]string{}},
	}

	baseHash := Fingerprint(base)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fingerprint(tt.files); got == baseHash {
				t.Errorf("Expected different fingerprint, got same: %s", got)
			}
		})
	}
}

func TestFingerprint_EntryBoundaries(t *testing.T) {
	// Content must not be able to forge an entry boundary: one file whose
	// content embeds a path-like line is distinct from two files.
	one := map[string]string{"a.md": "x\nb.md\ny"}
	two := map[string]string{"a.md": "x", "b.md": "y"}

	if Fingerprint(one) == Fingerprint(two) {
		t.Error("Expected different fingerprints for forged entry boundary")
	}
}

func TestFingerprint_EmptyMap(t *testing.T) {
	// SHA-256 of the empty string.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Fingerprint(nil); got != want {
		t.Errorf("Expected empty-string digest %s, got %s", want, got)
	}
	if got := Fingerprint(map[string]string{}); got != want {
		t.Errorf("Expected empty-string digest %s, got %s", want, got)
	}
}

func TestFingerprint_Format(t *testing.T) {
	hash := Fingerprint(map[string]string{"a.md": "content"})
	if len(hash) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(hash))
	}
	for _, c := range hash {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Errorf("Expected lowercase hex, got character %q", c)
		}
	}
}
