package services

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestFeedRegistryEmptyPath(t *testing.T) {
	reg, err := NewFeedRegistry("", testLogger(t))
	if err != nil {
		t.Fatalf("NewFeedRegistry: %v", err)
	}
	if names := reg.Names(); len(names) != 0 {
		t.Fatalf("empty registry must have no feeds, got %v", names)
	}
	if _, _, err := reg.Open("anything"); err == nil {
		t.Fatal("Open on an empty registry must fail")
	}
}

func TestFeedRegistryLoadsYAML(t *testing.T) {
	dir := t.TempDir()

	feedPath := filepath.Join(dir, "fitments.csv")
	content := "brand;model;year_start;year_end;displacement;engine_code;power;category;part_name;part_ref\n" +
		"Toyota;Corolla;2010;2014;1.6;1ZR;97;Freinage;Plaquette avant;REF-001\n"
	if err := os.WriteFile(feedPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write feed: %v", err)
	}

	regPath := filepath.Join(dir, "feeds.yaml")
	regYAML := "feeds:\n" +
		"  - name: main\n" +
		"    path: " + feedPath + "\n" +
		"    separator: \";\"\n" +
		"    baseline_year: 1995\n" +
		"  - name: secondary\n" +
		"    path: " + feedPath + "\n"
	if err := os.WriteFile(regPath, []byte(regYAML), 0o644); err != nil {
		t.Fatalf("write registry: %v", err)
	}

	reg, err := NewFeedRegistry(regPath, testLogger(t))
	if err != nil {
		t.Fatalf("NewFeedRegistry: %v", err)
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "main" || names[1] != "secondary" {
		t.Fatalf("Names: declaration order not preserved: %v", names)
	}

	feed, ok := reg.Get("main")
	if !ok {
		t.Fatal("Get(main): not found")
	}
	if feed.Separator != ";" || feed.BaselineYear != 1995 {
		t.Fatalf("Get(main): unexpected feed %+v", feed)
	}

	rc, got, err := reg.Open("main")
	if err != nil {
		t.Fatalf("Open(main): %v", err)
	}
	defer rc.Close()
	if got.Name != "main" {
		t.Fatalf("Open(main): unexpected feed %+v", got)
	}
	raw, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read feed: %v", err)
	}
	if !strings.Contains(string(raw), "REF-001") {
		t.Fatalf("feed content mismatch: %q", raw)
	}

	if _, _, err := reg.Open("missing"); err == nil {
		t.Fatal("Open(missing): expected an error")
	}
}

func TestFeedRegistryRejectsBadDeclarations(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		yaml string
	}{
		{"missing name", "feeds:\n  - path: /tmp/x.csv\n"},
		{"missing path", "feeds:\n  - name: main\n"},
		{"duplicate name", "feeds:\n  - name: main\n    path: /tmp/a.csv\n  - name: main\n    path: /tmp/b.csv\n"},
		{"not yaml", "feeds: [broken"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".yaml")
			if err := os.WriteFile(p, []byte(tc.yaml), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := NewFeedRegistry(p, testLogger(t)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
