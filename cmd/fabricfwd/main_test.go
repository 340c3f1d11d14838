package main

import (
	"bytes"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/gopacket/gopacket/pcapgo"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabricfwd/internal/config"
	"fabricfwd/internal/domain"
	"fabricfwd/internal/frame"
)

const fabricYAML = `version: "1"
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

var (
	mac1 = domain.MAC{0, 0, 0, 0, 0, 1}
	mac2 = domain.MAC{0, 0, 0, 0, 0, 2}
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePcap(t *testing.T, dir string, frames ...[]byte) string {
	t.Helper()
	path := filepath.Join(dir, "capture.pcap")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := pcapgo.NewWriter(f)
	require.NoError(t, w.WriteFileHeader(65535, layers.LinkTypeEthernet))
	for _, data := range frames {
		ci := gopacket.CaptureInfo{Length: len(data), CaptureLength: len(data)}
		require.NoError(t, w.WritePacket(ci, data))
	}
	return path
}

func TestReplay(t *testing.T) {
	dir := t.TempDir()
	fabricPath := filepath.Join(dir, "fabric.yaml")
	require.NoError(t, os.WriteFile(fabricPath, []byte(fabricYAML), 0o644))

	ipv4, err := frame.IPv4(mac1, mac2, net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2))
	require.NoError(t, err)
	arp, err := frame.ARPRequest(mac1, net.IPv4(10, 0, 0, 1), net.IPv4(10, 0, 0, 2))
	require.NoError(t, err)
	pcapPath := writePcap(t, dir, arp, ipv4, ipv4)

	out, err := execute(t, "replay", "--fabric", fabricPath, "--pcap", pcapPath, "--at", "D1/1")
	require.NoError(t, err, out)

	assert.Contains(t, out, "frame 1: ignored\n")
	assert.Contains(t, out, "frame 2: path_installed\n")
	assert.Contains(t, out, "frame 3: duplicate_session\n")
	assert.Equal(t, 6, strings.Count(out, "app="+config.DefaultAppID))
	assert.Contains(t, out, "  D1/2 ")
	assert.Contains(t, out, "from 00:00:00:00:00:01 to 00:00:00:00:00:02")

	t.Run("bad connect point", func(t *testing.T) {
		_, err := execute(t, "replay", "--fabric", fabricPath, "--pcap", pcapPath, "--at", "D1")
		assert.Error(t, err)
	})
	t.Run("missing pcap", func(t *testing.T) {
		_, err := execute(t, "replay", "--fabric", fabricPath,
			"--pcap", filepath.Join(dir, "absent.pcap"), "--at", "D1/1")
		assert.Error(t, err)
	})
	t.Run("unknown policy", func(t *testing.T) {
		_, err := execute(t, "replay", "--fabric", fabricPath, "--pcap", pcapPath,
			"--at", "D1/1", "--policy", "random")
		assert.Error(t, err)
	})
	t.Run("required flags", func(t *testing.T) {
		_, err := execute(t, "replay", "--fabric", fabricPath)
		assert.Error(t, err)
	})
}

func TestSessionsCommands(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/sessions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("--- session one\n"))
	})
	mux.HandleFunc("DELETE /api/sessions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"dropped":3}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	out, err := execute(t, "sessions", "list", "--server", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "--- session one\n", out)

	out, err = execute(t, "sessions", "reset", "--server", srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, "Dropped 3 sessions\n", out)

	t.Run("api error", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
		}))
		defer failing.Close()

		_, err := execute(t, "sessions", "list", "--server", failing.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestServeFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fabricfwd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9000\"\napp_id: from.file\npath_policy: fewest-hops\n"), 0o644))

	testCases := map[string]struct {
		Args   []string
		Check  func(t *testing.T, cfg *config.Config)
		Errors bool
	}{
		"file values kept": {
			Args: []string{"--config", path},
			Check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, ":9000", cfg.Listen)
				assert.Equal(t, "from.file", cfg.AppID)
				assert.Equal(t, "fewest-hops", cfg.PathPolicy)
			},
		},
		"flags win": {
			Args: []string{"--config", path, "--listen", ":7000", "--app-id", "from.flag",
				"--policy", "any", "--db", ":memory:"},
			Check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, ":7000", cfg.Listen)
				assert.Equal(t, "from.flag", cfg.AppID)
				assert.Equal(t, "any", cfg.PathPolicy)
				assert.Equal(t, ":memory:", cfg.Database.Path)
			},
		},
		"watch needs a fabric": {
			Args:   []string{"--config", path, "--watch"},
			Errors: true,
		},
		"bad policy": {
			Args:   []string{"--config", path, "--policy", "random"},
			Errors: true,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var flags serveFlags
			fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
			flags.register(fs)
			require.NoError(t, fs.Parse(tc.Args))

			cfg, _, err := flags.load(fs)
			if tc.Errors {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.Check(t, cfg)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fabricfwd "+version)
}
