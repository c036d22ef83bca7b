package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestEnsureWritableDir(t *testing.T) {
	tempDir := t.TempDir()

	nested := filepath.Join(tempDir, "a", "b")
	if err := EnsureWritableDir(nested); err != nil {
		t.Fatalf("EnsureWritableDir(%s) failed: %v", nested, err)
	}

	// The probe file must not be left behind
	n, err := CountFiles(nested)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected empty directory after probe, found %d files", n)
	}

	file := filepath.Join(tempDir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureWritableDir(file); err == nil {
		t.Error("expected error for a regular file path")
	}

	if err := EnsureWritableDir("  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestNewStagingDir(t *testing.T) {
	parent := t.TempDir()

	dir, err := NewStagingDir(parent, "req-1")
	if err != nil {
		t.Fatalf("NewStagingDir failed: %v", err)
	}

	if filepath.Dir(dir) != parent {
		t.Errorf("staging dir %s is not inside %s", dir, parent)
	}
	if !strings.HasPrefix(filepath.Base(dir), StagingDirPrefix) {
		t.Errorf("staging dir %s lacks prefix %s", dir, StagingDirPrefix)
	}
}

func TestFindOutputFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, size int) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	if _, err := FindOutputFile(dir, ""); err == nil {
		t.Error("expected error for empty directory")
	}

	write("Video.mp4.part", 900)
	write(".ytfetch-write-test42", 900)
	if _, err := FindOutputFile(dir, ""); err == nil {
		t.Error("partial files must be ignored")
	}

	write("Video.mp4", 100)
	got, err := FindOutputFile(dir, "")
	if err != nil {
		t.Fatalf("FindOutputFile failed: %v", err)
	}
	if filepath.Base(got) != "Video.mp4" {
		t.Errorf("expected Video.mp4, got %s", filepath.Base(got))
	}
}

func TestFindOutputFile_TitleLooksLikeFormatSuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Season Recap.f1.mp4")
	if err := os.WriteFile(path, []byte("media"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, reported := range []string{"", path} {
		got, err := FindOutputFile(dir, reported)
		if err != nil {
			t.Fatalf("reported=%q: %v", reported, err)
		}
		if got != path {
			t.Errorf("reported=%q: expected %s, got %s", reported, path, got)
		}
	}
}

func TestFindOutputFile_PrefersReportedPath(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "Clip.mp4")
	large := filepath.Join(dir, "Clip.f137.mp4")
	os.WriteFile(small, make([]byte, 10), 0644)
	os.WriteFile(large, make([]byte, 100), 0644)

	got, err := FindOutputFile(dir, small)
	if err != nil || got != small {
		t.Errorf("expected reported %s, got %s (%v)", small, got, err)
	}

	// a path outside the directory is not trusted
	outside := filepath.Join(t.TempDir(), "Clip.mp4")
	os.WriteFile(outside, []byte("x"), 0644)
	got, err = FindOutputFile(dir, outside)
	if err != nil || got != large {
		t.Errorf("expected fallback to %s, got %s (%v)", large, got, err)
	}
}

func TestPrintedPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "Season Recap.f1.mp4")
	tests := []struct {
		name   string
		stdout string
		want   string
	}{
		{"empty", "", ""},
		{"path only", abs + "\n", abs},
		{"after other output", "[download] 100%\n" + abs + "\n\n", abs},
		{"relative ignored", "Clip.mp4\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrintedPath(tt.stdout); got != tt.want {
				t.Errorf("PrintedPath() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestMoveIntoDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), "Title.mp4")
	if err := os.WriteFile(src, []byte("media"), 0644); err != nil {
		t.Fatal(err)
	}
	dst := t.TempDir()

	moved, err := MoveIntoDir(src, dst)
	if err != nil {
		t.Fatalf("MoveIntoDir failed: %v", err)
	}
	if moved != filepath.Join(dst, "Title.mp4") {
		t.Errorf("unexpected destination %s", moved)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be gone after move")
	}
	data, err := os.ReadFile(moved)
	if err != nil || string(data) != "media" {
		t.Errorf("moved content mismatch: %q, %v", data, err)
	}
}

func TestCountFiles_MissingDir(t *testing.T) {
	n, err := CountFiles(filepath.Join(t.TempDir(), "missing"))
	if err != nil || n != 0 {
		t.Errorf("CountFiles(missing) = %d, %v", n, err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.txt")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}
