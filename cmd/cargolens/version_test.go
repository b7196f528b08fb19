package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderVersionPretty(t *testing.T) {
	info := versionInfo{
		Version:    "1.2.3",
		GitCommit:  "abc123",
		GitMessage: "fix artifact ordering",
		BuildDate:  "2026-08-30",
	}

	tests := []struct {
		name string
		opts versionOptions
		want []string
		skip []string
	}{
		{
			name: "bare",
			opts: versionOptions{},
			want: []string{"cargolens 1.2.3"},
			skip: []string{"commit:", "message:", "built:"},
		},
		{
			name: "with message",
			opts: versionOptions{showMessage: true},
			want: []string{"message: fix artifact ordering"},
			skip: []string{"commit:", "built:"},
		},
		{
			name: "full",
			opts: versionOptions{showHash: true, showMessage: true, showDate: true},
			want: []string{"commit: abc123", "message: fix artifact ordering", "built:  2026-08-30"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			renderVersionPretty(&out, info, tt.opts)
			for _, sub := range tt.want {
				if !strings.Contains(out.String(), sub) {
					t.Errorf("output missing %q:\n%s", sub, out.String())
				}
			}
			for _, sub := range tt.skip {
				if strings.Contains(out.String(), sub) {
					t.Errorf("output should not contain %q:\n%s", sub, out.String())
				}
			}
		})
	}
}

func TestRenderVersionJSON(t *testing.T) {
	info := versionInfo{Version: "1.2.3", GitMessage: "fix artifact ordering"}

	var out strings.Builder
	opts := versionOptions{showHash: true, showMessage: true}
	if err := renderVersionJSON(&out, info, opts); err != nil {
		t.Fatal(err)
	}

	var payload versionPayload
	if err := json.Unmarshal([]byte(out.String()), &payload); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if payload.Tool != "cargolens" || payload.Version != "1.2.3" {
		t.Errorf("got %+v", payload)
	}
	if payload.GitMessage != "fix artifact ordering" {
		t.Errorf("git_message: got %q", payload.GitMessage)
	}
	// Requested but unset fields render as "unknown" rather than vanishing.
	if payload.GitCommit != "unknown" {
		t.Errorf("git_commit: got %q", payload.GitCommit)
	}
	// Date was not requested and must stay omitted.
	if payload.BuildDate != "" {
		t.Errorf("build_date: got %q", payload.BuildDate)
	}
}
