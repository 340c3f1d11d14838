package domain

import (
	"reflect"
	"testing"
)

func cp(device string, port uint32) ConnectPoint {
	return NewConnectPoint(DeviceID(device), PortNumber(port))
}

func TestParseConnectPoint(t *testing.T) {
	tests := []struct {
		input   string
		want    ConnectPoint
		wantErr bool
	}{
		{"D1/1", cp("D1", 1), false},
		{"of:0000000000000001/42", cp("of:0000000000000001", 42), false},
		{"D1", ConnectPoint{}, true},
		{"/1", ConnectPoint{}, true},
		{"D1/", ConnectPoint{}, true},
		{"D1/x", ConnectPoint{}, true},
	}

	for _, tt := range tests {
		got, err := ParseConnectPoint(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseConnectPoint(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseConnectPoint(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLinkID(t *testing.T) {
	t.Run("both directions share an ID", func(t *testing.T) {
		l := NewLink(cp("D1", 2), cp("D3", 1))
		if l.ID() != l.Reverse().ID() {
			t.Error("expected reversed link to share ID")
		}
	})

	t.Run("different ports give different IDs", func(t *testing.T) {
		a := NewLink(cp("D1", 2), cp("D3", 1))
		b := NewLink(cp("D1", 3), cp("D3", 1))
		if a.ID() == b.ID() {
			t.Error("expected different IDs")
		}
	})

	t.Run("generates short hash", func(t *testing.T) {
		l := NewLink(cp("D1", 2), cp("D3", 1))
		if len(l.ID()) != 16 {
			t.Errorf("expected ID length 16, got %d", len(l.ID()))
		}
	})
}

func TestPath(t *testing.T) {
	p := NewPath(
		NewLink(cp("D1", 2), cp("D3", 1)),
		NewLink(cp("D3", 2), cp("D2", 1)),
	)

	if p.Len() != 2 {
		t.Errorf("expected 2 links, got %d", p.Len())
	}
	if p.Src() != "D1" || p.Dst() != "D2" {
		t.Errorf("expected D1 -> D2, got %s -> %s", p.Src(), p.Dst())
	}
	want := []DeviceID{"D1", "D3", "D2"}
	if got := p.Devices(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected devices %v, got %v", want, got)
	}
	if !p.Contiguous() {
		t.Error("expected path to be contiguous")
	}
	if p.String() != "D1/2->D3/1 D3/2->D2/1" {
		t.Errorf("unexpected string form %q", p.String())
	}

	t.Run("empty path", func(t *testing.T) {
		var empty Path
		if empty.Src() != "" || empty.Dst() != "" || empty.Devices() != nil {
			t.Error("expected zero values for empty path")
		}
	})

	t.Run("broken path", func(t *testing.T) {
		broken := NewPath(
			NewLink(cp("D1", 2), cp("D3", 1)),
			NewLink(cp("D4", 2), cp("D2", 1)),
		)
		if broken.Contiguous() {
			t.Error("expected path not to be contiguous")
		}
	})
}

func TestSessionKey(t *testing.T) {
	h1 := HostIDFromMAC(MAC{0, 0, 0, 0, 0, 1})
	h2 := HostIDFromMAC(MAC{0, 0, 0, 0, 0, 2})

	if NewSessionKey(h1, h2) == NewSessionKey(h2, h1) {
		t.Error("expected ordered pairs to have distinct keys")
	}
	if got := NewSessionKey(h1, h2); got != "00:00:00:00:00:01-00:00:00:00:00:02" {
		t.Errorf("unexpected key %q", got)
	}
}
