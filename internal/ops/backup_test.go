package ops

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeSaveDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir parent %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dir
}

func TestBackupRestoreDataDir_RoundTrip(t *testing.T) {
	files := map[string]string{
		"game_state.json": `{"money":120,"animalId":"cat","daysPlayed":3,"transactions":[]}`,
		"pet_ages.json":   `{"dog":2,"cat":1}`,
		"pennypet.sqlite": "not really a database, just bytes",
	}
	src := writeSaveDir(t, files)

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	if err := BackupDataDir(src, archive); err != nil {
		t.Fatalf("backup failed: %v", err)
	}
	if _, err := os.Stat(archive); err != nil {
		t.Fatalf("archive missing: %v", err)
	}

	restoreDir := filepath.Join(t.TempDir(), "restore")
	if err := RestoreDataDir(archive, restoreDir); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	got := map[string]string{}
	err := filepath.WalkDir(restoreDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(restoreDir, path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	if err != nil {
		t.Fatalf("walk restore dir: %v", err)
	}

	if !reflect.DeepEqual(files, got) {
		t.Fatalf("restored files mismatch:\nwant=%v\ngot=%v", files, got)
	}
}

func TestBackupDataDir_SourceMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "game_state.json")
	if err := os.WriteFile(file, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	err := BackupDataDir(file, filepath.Join(t.TempDir(), "out.tar.gz"))
	if err == nil {
		t.Fatal("expected backup of a plain file to fail")
	}
}

func TestRestoreDataDir_RejectsPathTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bad.tar.gz")
	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	if err := tw.WriteHeader(&tar.Header{
		Name:     "../escape.txt",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     int64(len("bad")),
	}); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if _, err := tw.Write([]byte("bad")); err != nil {
		t.Fatalf("write body: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	if err := RestoreDataDir(archive, filepath.Join(t.TempDir(), "out")); err == nil {
		t.Fatalf("expected restore to reject path traversal archive")
	}
}

func TestReadSaveSummary(t *testing.T) {
	dir := writeSaveDir(t, map[string]string{
		"game_state.json": `{"money":85,"animalId":"rabbit","daysPlayed":7,"transactions":[{"id":"t1"},{"id":"t2"}]}`,
		"pet_ages.json":   `{"dog":4,"rabbit":3}`,
	})

	sum, err := ReadSaveSummary(dir)
	if err != nil {
		t.Fatalf("ReadSaveSummary: %v", err)
	}
	if sum.Pet != "rabbit" || sum.Money != 85 || sum.DaysPlayed != 7 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Transactions != 2 {
		t.Fatalf("transactions = %d, want 2", sum.Transactions)
	}
	if sum.Ages["dog"] != 4 || sum.Ages["rabbit"] != 3 {
		t.Fatalf("ages = %v", sum.Ages)
	}
}

func TestReadSaveSummary_MissingAgesIsFreshSave(t *testing.T) {
	dir := writeSaveDir(t, map[string]string{
		"game_state.json": `{"money":100,"animalId":"dog","daysPlayed":0,"transactions":[]}`,
	})

	sum, err := ReadSaveSummary(dir)
	if err != nil {
		t.Fatalf("ReadSaveSummary: %v", err)
	}
	if len(sum.Ages) != 0 {
		t.Fatalf("ages = %v, want empty", sum.Ages)
	}
}

func TestReadSaveSummary_MissingState(t *testing.T) {
	_, err := ReadSaveSummary(t.TempDir())
	if err == nil {
		t.Fatal("expected an error for a directory without a save")
	}
	if !strings.Contains(err.Error(), "no game state blob") {
		t.Fatalf("err = %v", err)
	}
}

func TestReadSaveSummary_CorruptState(t *testing.T) {
	dir := writeSaveDir(t, map[string]string{
		"game_state.json": "{corrupt",
	})

	_, err := ReadSaveSummary(dir)
	if err == nil {
		t.Fatal("expected an error for a corrupt save blob")
	}
}

func TestReadSaveSummary_AfterRestore(t *testing.T) {
	src := writeSaveDir(t, map[string]string{
		"game_state.json": `{"money":60,"animalId":"dog","daysPlayed":1,"transactions":[{"id":"t1"}]}`,
		"pet_ages.json":   `{"dog":1}`,
	})

	archive := filepath.Join(t.TempDir(), "drill.tar.gz")
	if err := BackupDataDir(src, archive); err != nil {
		t.Fatalf("backup: %v", err)
	}
	restoreDir := filepath.Join(t.TempDir(), "restored")
	if err := RestoreDataDir(archive, restoreDir); err != nil {
		t.Fatalf("restore: %v", err)
	}

	sum, err := ReadSaveSummary(restoreDir)
	if err != nil {
		t.Fatalf("summary after restore: %v", err)
	}
	if sum.Money != 60 || sum.DaysPlayed != 1 || sum.Transactions != 1 {
		t.Fatalf("summary = %+v", sum)
	}
}
