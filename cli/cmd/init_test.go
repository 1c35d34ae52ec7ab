package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
	"github.com/goccy/go-yaml"
)

type initCLI struct {
	Level   string   `default:"info"`
	Pretty  bool     `default:"true"`
	LibPath []string `name:"lib-path"`
	Name    string
	Secret  string `default:"x" hidden:""`
	Indent  int    `default:"2"`
}

func parseInit(t *testing.T, confPath string, args ...string) *kong.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return ktx
}

func TestInit_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create"},
		{name: "overwrite with force", force: true, exists: true},
		{name: "existing without force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("level: warn\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			ktx := parseInit(t, confPath, "--level=debug", "--lib-path=/opt/lib,/usr/lib")

			err := (&Init{Force: tt.force}).Run(WithContext(t.Context(), ktx))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got struct {
				Level   string   `yaml:"level"`
				Pretty  bool     `yaml:"pretty"`
				LibPath []string `yaml:"lib-path"`
				Indent  int      `yaml:"indent"`
			}

			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("config is not YAML: %v\n%s", err, data)
			}

			if got.Level != "debug" || !got.Pretty || got.Indent != 2 ||
				len(got.LibPath) != 2 || got.LibPath[1] != "/usr/lib" {
				t.Errorf("config = %+v\n%s", got, data)
			}
		})
	}
}

func TestConfigDocument(t *testing.T) {
	t.Parallel()

	ktx := parseInit(t, filepath.Join(t.TempDir(), "config.yaml"))

	doc := configDocument(ktx)

	keys := make([]string, 0, len(doc))
	for _, item := range doc {
		keys = append(keys, item.Key.(string))
	}

	want := []string{"level", "pretty", "indent"}
	if len(keys) != len(want) {
		t.Fatalf("configDocument() keys = %v, want %v", keys, want)
	}

	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestInit_InvalidPath(t *testing.T) {
	t.Parallel()

	ktx := parseInit(t, filepath.Join(t.TempDir(), "missing", "config.yaml"))

	err := (&Init{}).Run(WithContext(t.Context(), ktx))
	if !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Run() error = %v, want ErrWriteConfig", err)
	}
}

func TestConfigValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     any
		want   any
		wantOK bool
	}{
		{name: "nil"},
		{name: "empty string", in: "", want: ""},
		{name: "string", in: "debug", want: "debug", wantOK: true},
		{name: "empty list", in: []string{}, want: []string{}},
		{name: "bool", in: false, want: false, wantOK: true},
		{name: "int", in: 3, want: 3, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := configValue(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("configValue(%v) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("configValue(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
