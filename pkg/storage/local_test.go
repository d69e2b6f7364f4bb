package storage

import (
	"testing"

	"github.com/rohanwest/pancake/config"
)

func newTestDisk(t *testing.T) *localDisk {
	t.Helper()
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	config.Set("STORAGE_URL", "http://localhost:8080/storage")
	return newLocalDisk()
}

func TestLocalPutGetDelete(t *testing.T) {
	d := newTestDisk(t)

	if d.Exists("backups/snapshot.json") {
		t.Fatal("file should not exist yet")
	}

	if err := d.Put("backups/snapshot.json", []byte(`{"users":[]}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !d.Exists("backups/snapshot.json") {
		t.Fatal("file should exist after put")
	}

	data, err := d.Get("backups/snapshot.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != `{"users":[]}` {
		t.Errorf("unexpected content: %s", data)
	}

	if _, err := d.LastModified("backups/snapshot.json"); err != nil {
		t.Errorf("last modified: %v", err)
	}

	if err := d.Delete("backups/snapshot.json"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if d.Exists("backups/snapshot.json") {
		t.Error("file should be gone after delete")
	}
	// Deleting a missing file is not an error.
	if err := d.Delete("backups/snapshot.json"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestLocalURL(t *testing.T) {
	d := newTestDisk(t)
	if got := d.URL("backups/snapshot.json"); got != "http://localhost:8080/storage/backups/snapshot.json" {
		t.Errorf("unexpected url: %s", got)
	}
}

func TestManagerFallsBackToLocal(t *testing.T) {
	config.Set("STORAGE_DISK", "does-not-exist")
	config.Set("STORAGE_LOCAL_ROOT", t.TempDir())
	t.Cleanup(func() { config.Set("STORAGE_DISK", "local") })

	Connect()

	if err := Put("probe.txt", []byte("ok")); err != nil {
		t.Fatalf("put on fallback disk: %v", err)
	}
	if !Exists("probe.txt") {
		t.Error("expected probe.txt on the fallback local disk")
	}
}
