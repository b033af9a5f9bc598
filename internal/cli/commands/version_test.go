package commands

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		info    BuildInfo
		args    []string
		wantOut []string
	}{
		{
			name:    "release",
			info:    BuildInfo{Version: "0.1.0", GitCommit: "abc123", BuildDate: "2026-01-02"},
			wantOut: []string{"leapcalc v0.1.0", "commit abc123", "built 2026-01-02"},
		},
		{
			name:    "dev build",
			info:    BuildInfo{Version: "dev", GitCommit: "unknown", BuildDate: "unknown"},
			wantOut: []string{"leapcalc vdev"},
		},
		{
			name:    "json",
			info:    BuildInfo{Version: "1.2.3"},
			args:    []string{"-o", "json"},
			wantOut: []string{`"version": "1.2.3"`, `"go": "go`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, NewVersionCommand(tt.info), "", append([]string{"version"}, tt.args...)...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(stdout, want) {
					t.Errorf("output should contain %q, got: %s", want, stdout)
				}
			}
		})
	}
}

func TestVersionCommandJSONIsValid(t *testing.T) {
	stdout, _, err := execute(t, NewVersionCommand(BuildInfo{Version: "1.0.0"}), "", "version", "-o", "json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var info BuildInfo
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if info.Version != "1.0.0" || info.GoVersion == "" {
		t.Errorf("unexpected build info: %+v", info)
	}
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand(BuildInfo{Version: "test"})

	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}
	if cmd.Short == "" {
		t.Error("Short should not be empty")
	}
	if cmd.Long == "" {
		t.Error("Long should not be empty")
	}
}
