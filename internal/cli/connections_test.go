package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConnectionsCommandListsProfilesWithoutPasswords(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "connections.yaml")
	catalog := `
connections:
  - name: localhost
    transport: socket
  - name: veos01
    host: 192.168.1.16
    username: eapi
    password: secret
    transport: https
`
	if err := os.WriteFile(catalogPath, []byte(catalog), 0o600); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	var stdout bytes.Buffer
	root := NewRootCommand(Dependencies{})
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"connections", "--connections-file", catalogPath, "--logging=false"})
	if err := root.Execute(); err != nil {
		t.Fatalf("connections failed: %v", err)
	}

	var profiles []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &profiles); err != nil {
		t.Fatalf("output is not valid json: %v\n%s", err, stdout.String())
	}
	if len(profiles) != 2 || profiles[0]["name"] != "localhost" || profiles[1]["name"] != "veos01" {
		t.Fatalf("unexpected profiles %v", profiles)
	}
	if strings.Contains(stdout.String(), "secret") {
		t.Fatalf("password leaked into listing:\n%s", stdout.String())
	}
}
