package log

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSessionLifecycle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	Initialize(true, 30)

	if err := StartSession("rename", []string{"--first", "Keldon", "--last", "Johnson"}); err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	LogRename("/clips/Keldon_Johnson_3points_1.mp4", "/clips/Keldon Johnson_3pt_001.mp4", true, nil)
	LogRewriteJSON("/clips/Keldon Johnson_3pt_001.json", true, nil)
	LogRewriteCSV("/clips/Keldon_Johnson_url_mapping.csv", "/clips/Keldon Johnson_url_mapping.csv", true, nil)
	LogRename("/clips/random_clip.mp4", "", false, errors.New("no match"))

	if err := EndSession(); err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}

	sessions, err := ReadSessions(0)
	if err != nil {
		t.Fatalf("ReadSessions() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("ReadSessions() returned %d sessions, want 1", len(sessions))
	}

	s := sessions[0]
	if s.Metadata.TotalOps != 4 {
		t.Errorf("TotalOps = %d, want 4", s.Metadata.TotalOps)
	}
	if s.Metadata.SuccessfulOps != 3 {
		t.Errorf("SuccessfulOps = %d, want 3", s.Metadata.SuccessfulOps)
	}
	if s.Metadata.FailedOps != 1 {
		t.Errorf("FailedOps = %d, want 1", s.Metadata.FailedOps)
	}
	if s.Operations[0].Type != OpRename {
		t.Errorf("first op type = %s, want %s", s.Operations[0].Type, OpRename)
	}
	if s.Operations[3].Error == "" {
		t.Error("failed op has empty error message")
	}
}

func TestLoggingDisabled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	Initialize(false, 30)
	defer Initialize(true, 30)

	if err := StartSession("rename", nil); err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	LogRename("a", "b", true, nil)
	if err := EndSession(); err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}

	sessions, err := ReadSessions(0)
	if err != nil {
		t.Fatalf("ReadSessions() error = %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("ReadSessions() returned %d sessions, want 0 when disabled", len(sessions))
	}
}

func TestReadSessionsSkipsCorrupted(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	logDir := filepath.Join(home, ".clip-tidy", "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(logDir, "2026-01-01_000000.000.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	sessions, err := ReadSessions(0)
	if err != nil {
		t.Fatalf("ReadSessions() error = %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("ReadSessions() returned %d sessions, want corrupted file skipped", len(sessions))
	}
}
