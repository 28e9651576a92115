package cliconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				URL:         "http://example.com/upload",
				Name:        "orders",
				UserAgent:   "agent/2",
				Charset:     "ISO-8859-1",
				HTTPTimeout: "5s",
				DialTimeout: "2s",
				Debounce:    "1s",
				Watch:       &trueVal,
				Fields:      []string{"a=1"},
				Files:       []string{"doc=/tmp/doc.txt", "img=@/tmp/img.png"},
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				URL:         "http://example.com/upload",
				Name:        "orders",
				UserAgent:   "agent/2",
				Charset:     "ISO-8859-1",
				HTTPTimeout: 5 * time.Second,
				DialTimeout: 2 * time.Second,
				Debounce:    time.Second,
				Watch:       true,
				Params:      []string{"a=1", "doc=@/tmp/doc.txt", "img=@/tmp/img.png"},
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				URL:    "http://file/",
				Name:   "file-name",
				Fields: []string{"from=file"},
			},
			changed: map[string]bool{"url": true, "field": true},
			initial: Config{
				URL:    "http://flag/",
				Params: []string{"from=flag"},
			},
			expected: Config{
				URL:    "http://flag/",
				Name:   "file-name",
				Params: []string{"from=flag"},
			},
		},
		{
			name: "flag headers win over file headers",
			fileConfig: FileConfig{
				Headers: map[string]string{"X-A": "file", "X-B": "file"},
			},
			changed:  map[string]bool{"header": true},
			initial:  Config{Headers: map[string]string{"X-A": "flag"}},
			expected: Config{Headers: map[string]string{"X-A": "flag", "X-B": "file"}},
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{HTTPTimeout: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(cfg, tt.expected) {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
url = "http://localhost:8080/upload"
http_timeout = "5s"
watch = true
fields = ["title=report", "lang=en"]
files = ["doc=/tmp/report.pdf"]

[headers]
X-Api-Key = "secret"

[fixtures]
orders = "/tmp/orders.json"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.URL != "http://localhost:8080/upload" {
		t.Errorf("URL = %v", fc.URL)
	}
	if fc.HTTPTimeout != "5s" {
		t.Errorf("HTTPTimeout = %v, want 5s", fc.HTTPTimeout)
	}
	if fc.Watch == nil || !*fc.Watch {
		t.Errorf("Watch = %v, want true", fc.Watch)
	}
	if !reflect.DeepEqual(fc.Fields, []string{"title=report", "lang=en"}) {
		t.Errorf("Fields = %v", fc.Fields)
	}
	if !reflect.DeepEqual(fc.Files, []string{"doc=/tmp/report.pdf"}) {
		t.Errorf("Files = %v", fc.Files)
	}
	if fc.Headers["X-Api-Key"] != "secret" {
		t.Errorf("Headers = %v", fc.Headers)
	}
	if fc.Fixtures["orders"] != "/tmp/orders.json" {
		t.Errorf("Fixtures = %v", fc.Fixtures)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
url = "http://x"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".formship") {
		t.Errorf("DefaultConfigPath() = %v, should contain .formship", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
