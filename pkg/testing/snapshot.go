package testing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// UpdateSnapshotsEnv names the environment variable that makes MatchesFile
// record the snapshot instead of comparing it.
const UpdateSnapshotsEnv = "VSCOPE_UPDATE_SNAPSHOTS"

// TestingT is the part of *testing.T that MatchesFile reports through.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures rendered output and the lifecycle events behind it.
type Snapshot struct {
	HTML   string  `json:"html"`
	Events []Event `json:"events,omitempty"`
}

// Equal reports whether s and other hold the same HTML and events.
func (s *Snapshot) Equal(other *Snapshot) bool {
	return s.HTML == other.HTML && slices.Equal(s.Events, other.Events)
}

// Diff lists how s differs from want, one entry per mismatching field or
// event. It returns "" when they are equal.
func (s *Snapshot) Diff(want *Snapshot) string {
	var sb strings.Builder
	if s.HTML != want.HTML {
		fmt.Fprintf(&sb, "html:\n  want %s\n  got  %s\n", want.HTML, s.HTML)
	}
	for i, n := 0, max(len(s.Events), len(want.Events)); i < n; i++ {
		got, gotOK := eventAt(s.Events, i)
		exp, expOK := eventAt(want.Events, i)
		if gotOK == expOK && got == exp {
			continue
		}
		fmt.Fprintf(&sb, "events[%d]:\n  want %s\n  got  %s\n", i, describe(exp, expOK), describe(got, gotOK))
	}
	return sb.String()
}

// MatchesFile compares s against the golden file at path and fails t on a
// mismatch. With VSCOPE_UPDATE_SNAPSHOTS set to a true value it writes s to
// path instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if recording() {
		if err := s.WriteFile(path); err != nil {
			t.Fatalf("recording snapshot %s: %v", path, err)
		}
		return
	}

	want, err := ReadSnapshot(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("snapshot %s does not exist; record it with %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
		return
	}
	if err != nil {
		t.Fatalf("%v", err)
		return
	}

	if !s.Equal(want) {
		t.Errorf("snapshot %s does not match:\n%saccept with %s=1 go test -run %s", path, s.Diff(want), UpdateSnapshotsEnv, t.Name())
	}
}

// WriteFile stores s as indented JSON at path, creating parent directories.
func (s *Snapshot) WriteFile(path string) error {
	data, err := s.encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSnapshot loads a snapshot written by WriteFile.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	return snap, nil
}

// encode keeps markup readable by leaving <, > and & unescaped.
func (s *Snapshot) encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func recording() bool {
	on, _ := strconv.ParseBool(os.Getenv(UpdateSnapshotsEnv))
	return on
}

func eventAt(events []Event, i int) (Event, bool) {
	if i < len(events) {
		return events[i], true
	}
	return Event{}, false
}

func describe(e Event, ok bool) string {
	if !ok {
		return "(none)"
	}
	return e.String()
}
