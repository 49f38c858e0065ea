package command

import (
	"bytes"
	"io"
	"testing"
)

// runApp runs the hashgen app with args and returns what it printed.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"hashgen"}, args...))
	return out.String(), err
}

// mustRunApp is runApp failing the test on error.
func mustRunApp(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runApp(t, args...)
	if err != nil {
		t.Fatalf("hashgen %v: %v\noutput:\n%s", args, err, out)
	}
	return out
}
