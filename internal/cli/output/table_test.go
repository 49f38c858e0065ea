package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

func render(t *testing.T, f *TableFormatter, data any) string {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	return buf.String()
}

func TestTableFormatter_Table(t *testing.T) {
	table := &Table{Headers: []string{"STAGE", "SECONDS"}}
	table.AddRow("hash", "1.2345")
	table.AddRow("sort", "0.5000")

	out := render(t, &TableFormatter{}, table)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "STAGE") || !strings.Contains(lines[1], "1.2345") {
		t.Errorf("unexpected table:\n%s", out)
	}

	out = render(t, &TableFormatter{NoHeaders: true}, *table)
	if strings.Contains(out, "STAGE") {
		t.Errorf("NoHeaders output contains header:\n%s", out)
	}
}

func TestTableFormatter_Nil(t *testing.T) {
	if out := render(t, &TableFormatter{}, nil); out != "" {
		t.Errorf("Format(nil) = %q, want empty", out)
	}
}

func TestTableFormatter_Slice(t *testing.T) {
	rows := []*runRow{
		{RunID: "r1", Records: 10, TotalTime: 0.12345, Path: "/tmp/a", Internal: "x"},
		{RunID: "r2", Records: 20, TotalTime: 2},
	}

	out := render(t, &TableFormatter{}, rows)
	if !strings.Contains(out, "RUN_ID") || !strings.Contains(out, "TOTAL_SECONDS") {
		t.Errorf("missing headers:\n%s", out)
	}
	if !strings.Contains(out, "0.1235") || !strings.Contains(out, "2.0000") {
		t.Errorf("floats should be rendered with 4 decimals:\n%s", out)
	}
	if strings.Contains(out, "PATH") || strings.Contains(out, "INTERNAL") {
		t.Errorf("wide and hidden fields should be skipped:\n%s", out)
	}

	wide := render(t, &TableFormatter{Wide: true}, rows)
	if !strings.Contains(wide, "PATH") || !strings.Contains(wide, "/tmp/a") {
		t.Errorf("wide mode should include PATH:\n%s", wide)
	}
}

func TestTableFormatter_EmptySlice(t *testing.T) {
	if out := render(t, &TableFormatter{}, []runRow{}); out != "" {
		t.Errorf("empty slice rendered %q", out)
	}
}

func TestTableFormatter_Strings(t *testing.T) {
	out := render(t, &TableFormatter{}, []string{"blake3", "sha256"})
	if !strings.HasPrefix(out, "VALUE") || !strings.Contains(out, "sha256") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestTableFormatter_MapSorted(t *testing.T) {
	out := render(t, &TableFormatter{}, map[string]int{"sort": 2, "hash": 1, "write": 3})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	for i, key := range []string{"hash", "sort", "write"} {
		if !strings.HasPrefix(lines[i+1], key) {
			t.Errorf("line %d = %q, want key %s", i+1, lines[i+1], key)
		}
	}
}

func TestTableFormatter_Struct(t *testing.T) {
	out := render(t, &TableFormatter{}, &runRow{RunID: "r9", Records: 5})
	if !strings.HasPrefix(out, "FIELD") {
		t.Errorf("struct should render as FIELD/VALUE:\n%s", out)
	}
	if !strings.Contains(out, "run_id") || !strings.Contains(out, "r9") {
		t.Errorf("missing run_id row:\n%s", out)
	}
	if strings.Contains(out, "Internal") {
		t.Errorf("hidden field rendered:\n%s", out)
	}
}

func TestTableFormatter_FallbackToJSON(t *testing.T) {
	out := render(t, &TableFormatter{}, 42)
	if strings.TrimSpace(out) != "42" {
		t.Errorf("fallback output = %q, want 42", out)
	}
}

func TestFormatValue(t *testing.T) {
	var nilPtr *int
	n := 7
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"empty string", "", "-"},
		{"string", "blake3", "blake3"},
		{"int", -3, "-3"},
		{"uint32", uint32(9), "9"},
		{"float", 1.23456, "1.2346"},
		{"bool", true, "true"},
		{"empty slice", []int{}, "-"},
		{"slice", []int{1, 2}, "[2 items]"},
		{"map", map[string]int{"a": 1}, "{1 keys}"},
		{"nil pointer", nilPtr, ""},
		{"pointer", &n, "7"},
		{"zero time", time.Time{}, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(reflect.ValueOf(tt.in)); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if got := formatValue(reflect.Value{}); got != "" {
		t.Errorf("formatValue(invalid) = %q, want empty", got)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"RunID":      "run_i_d",
		"HashTime":   "hash_time",
		"records":    "records",
		"FileSizeMB": "file_size_m_b",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
