package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fabricfwd/internal/domain"
)

const sampleFabric = `version: "1"
devices: [D1, D2, D3]
links:
  - a: D1/2
    b: D3/1
  - a: D3/2
    b: D2/4
hosts:
  - mac: "00:00:00:00:00:01"
    at: D1/1
  - mac: "00:00:00:00:00:02"
    at: D2/3
`

func TestParseFabric(t *testing.T) {
	t.Run("valid fabric", func(t *testing.T) {
		f, err := ParseFabric([]byte(sampleFabric))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Version != "1" {
			t.Errorf("expected version 1, got %q", f.Version)
		}
		if len(f.Devices) != 3 {
			t.Errorf("expected 3 devices, got %d", len(f.Devices))
		}
		if len(f.Links) != 4 {
			t.Errorf("expected 4 directed links, got %d", len(f.Links))
		}
		if len(f.Hosts) != 2 {
			t.Fatalf("expected 2 hosts, got %d", len(f.Hosts))
		}
		if f.Hosts[1].Location.String() != "D2/3" {
			t.Errorf("expected host 2 at D2/3, got %s", f.Hosts[1].Location)
		}
	})

	tests := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "devices: [D1"},
		{"bad connect point", "devices: [D1, D2]\nlinks:\n  - a: D1\n    b: D2/1\n"},
		{"bad mac", "devices: [D1]\nhosts:\n  - mac: nope\n    at: D1/1\n"},
		{"bad host point", "devices: [D1]\nhosts:\n  - mac: \"00:00:00:00:00:01\"\n    at: D1/x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFabric([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}

	t.Run("validation errors surface", func(t *testing.T) {
		_, err := ParseFabric([]byte("devices: [D1]\nlinks:\n  - a: D1/1\n    b: D2/1\n"))
		if !errors.Is(err, domain.ErrInvalidFabric) {
			t.Errorf("expected ErrInvalidFabric, got %v", err)
		}
	})
}

func TestLoadFabric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fabric.yaml")
	if err := os.WriteFile(path, []byte(sampleFabric), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadFabric(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Hosts) != 2 {
		t.Errorf("expected 2 hosts, got %d", len(f.Hosts))
	}

	if _, err := LoadFabric(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExportYAML(t *testing.T) {
	f, err := ParseFabric([]byte(sampleFabric))
	if err != nil {
		t.Fatal(err)
	}
	data, err := ExportYAML(f)
	if err != nil {
		t.Fatal(err)
	}
	again, err := ParseFabric(data)
	if err != nil {
		t.Fatalf("exported fabric does not parse: %v", err)
	}
	if len(again.Links) != len(f.Links) || len(again.Hosts) != len(f.Hosts) {
		t.Errorf("export lost data: %d links, %d hosts", len(again.Links), len(again.Hosts))
	}
}
