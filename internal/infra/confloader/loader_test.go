package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	OutputPath string `koanf:"output_path"`
	FileSizeMB int    `koanf:"file_size_mb"`
	Record     struct {
		NonceSize int `koanf:"nonce_size"`
		HashSize  int `koanf:"hash_size"`
	} `koanf:"record"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hashgen.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/etc/hashgen.yaml"))
	if l.envPrefix != "TEST_" || l.filePath != "/etc/hashgen.yaml" {
		t.Errorf("options not applied: prefix %q file %q", l.envPrefix, l.filePath)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeConfig(t, `
output_path: /data/plot.bin
record:
  hash_size: 12
`)

	l := NewLoader()
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got := l.GetString("output_path"); got != "/data/plot.bin" {
		t.Errorf("output_path = %q", got)
	}
	if got := l.GetInt("record.hash_size"); got != 12 {
		t.Errorf("record.hash_size = %d, want 12", got)
	}
}

func TestLoader_LoadFile_Errors(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/hashgen.yaml"); err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_EnvKey(t *testing.T) {
	l := NewLoader(WithEnvSections("record", "log"))

	tests := []struct {
		env  string
		want string
	}{
		{"HASHGEN_FILE_SIZE_MB", "file_size_mb"},
		{"HASHGEN_OUTPUT_PATH", "output_path"},
		{"HASHGEN_RECORD_NONCE_SIZE", "record.nonce_size"},
		{"HASHGEN_LOG_LEVEL", "log.level"},
		{"HASHGEN_RECORD_", "record_"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := l.envKey(tt.env); got != tt.want {
				t.Errorf("envKey(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("HASHGEN_FILE_SIZE_MB", "512")
	t.Setenv("HASHGEN_RECORD_NONCE_SIZE", "8")

	l := NewLoader(WithEnvSections("record"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if got := l.GetInt("file_size_mb"); got != 512 {
		t.Errorf("file_size_mb = %d, want 512", got)
	}
	if got := l.GetInt("record.nonce_size"); got != 8 {
		t.Errorf("record.nonce_size = %d, want 8", got)
	}
}

func TestLoader_LoadMap_Dotted(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"record.hash_size": 4, "file_size_mb": 2}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Record.HashSize != 4 || cfg.FileSizeMB != 2 {
		t.Errorf("Unmarshal() = %+v", cfg)
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeConfig(t, `
output_path: from-file
file_size_mb: 1
record:
  nonce_size: 7
  hash_size: 9
`)
	t.Setenv("HASHGEN_FILE_SIZE_MB", "2")
	t.Setenv("HASHGEN_RECORD_HASH_SIZE", "11")

	l := NewLoader(
		WithConfigFile(path),
		WithEnvSections("record"),
		WithOverrides(map[string]any{"record.hash_size": 13}),
	)

	cfg := testConfig{OutputPath: "default", FileSizeMB: 1024}
	cfg.Record.NonceSize = 6
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutputPath != "from-file" {
		t.Errorf("OutputPath = %q, file should override default", cfg.OutputPath)
	}
	if cfg.FileSizeMB != 2 {
		t.Errorf("FileSizeMB = %d, env should override file", cfg.FileSizeMB)
	}
	if cfg.Record.NonceSize != 7 {
		t.Errorf("NonceSize = %d, want 7 from file", cfg.Record.NonceSize)
	}
	if cfg.Record.HashSize != 13 {
		t.Errorf("HashSize = %d, overrides should win", cfg.Record.HashSize)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() should be true after Load()")
	}
}

func TestLoader_Load_KeepsDefaults(t *testing.T) {
	cfg := testConfig{OutputPath: "data.bin", FileSizeMB: 1024}

	if err := NewLoader(WithEnvPrefix("HASHGEN_TEST_UNSET_")).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputPath != "data.bin" || cfg.FileSizeMB != 1024 {
		t.Errorf("defaults were lost: %+v", cfg)
	}
}

func TestLoader_Keys(t *testing.T) {
	l := NewLoader()
	l.LoadMap(map[string]any{"a": 1, "b.c": 2})

	if keys := l.Keys(); len(keys) != 2 {
		t.Errorf("Keys() = %v, want 2 keys", keys)
	}
}

func TestMapProvider_ReadBytes(t *testing.T) {
	if _, err := mapProvider(nil).ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v", err)
	}
}
