package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingT struct {
	fatals []string
	errors []string
}

func (r *recordingT) Helper()      {}
func (r *recordingT) Name() string { return "TestRecording" }
func (r *recordingT) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}
func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func mountPanel(t *testing.T) *Tester {
	t.Helper()
	tester := NewTesterWithT(t)
	kind := TraceKind(tester, newPanelKind(TraceKind(tester, labelKind)))
	Mount(tester, kind, panelProps{Title: "hi"})
	tester.Flush()
	return tester
}

func TestSnapshot_MatchesGolden(t *testing.T) {
	tester := mountPanel(t)
	tester.CaptureSnapshot().MatchesFile(t, filepath.Join("testdata", "panel.snapshot.json"))
}

func TestSnapshot_DiffEqual(t *testing.T) {
	a := &Snapshot{HTML: "<p>x</p>", Events: []Event{{Component: "c", Hook: "render"}}}
	b := &Snapshot{HTML: "<p>x</p>", Events: []Event{{Component: "c", Hook: "render"}}}
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff, got:\n%s", diff)
	}
}

func TestSnapshot_DiffReportsHTML(t *testing.T) {
	want := &Snapshot{HTML: "<p>old</p>"}
	got := &Snapshot{HTML: "<p>new</p>"}

	diff := got.Diff(want)
	if diff != "html:\n  want <p>old</p>\n  got  <p>new</p>\n" {
		t.Errorf("unexpected diff:\n%s", diff)
	}
}

func TestSnapshot_DiffReportsEvents(t *testing.T) {
	want := &Snapshot{Events: []Event{
		{Component: "c", Hook: "create", Detail: "0"},
		{Component: "c", Hook: "render"},
	}}
	got := &Snapshot{Events: []Event{
		{Component: "c", Hook: "create", Detail: "0"},
		{Component: "c", Hook: "update", Detail: "inc->true"},
		{Component: "c", Hook: "render"},
	}}

	diff := got.Diff(want)
	for _, line := range []string{
		"events[1]:\n  want c.render\n  got  c.update(inc->true)\n",
		"events[2]:\n  want (none)\n  got  c.render\n",
	} {
		if !strings.Contains(diff, line) {
			t.Errorf("diff missing %q:\n%s", line, diff)
		}
	}
	if strings.Contains(diff, "events[0]") {
		t.Errorf("equal events should not be listed:\n%s", diff)
	}
	if got.Equal(want) {
		t.Error("Equal() = true for different events")
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	rt := &recordingT{}
	snap := &Snapshot{HTML: "x"}
	snap.MatchesFile(rt, filepath.Join(t.TempDir(), "missing.json"))

	if len(rt.fatals) != 1 || !strings.Contains(rt.fatals[0], "does not exist") {
		t.Errorf("unexpected failures: %v", rt.fatals)
	}
}

func TestSnapshot_Mismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := (&Snapshot{HTML: "before"}).WriteFile(path); err != nil {
		t.Fatal(err)
	}

	rt := &recordingT{}
	(&Snapshot{HTML: "after"}).MatchesFile(rt, path)

	if len(rt.errors) != 1 || !strings.Contains(rt.errors[0], "does not match") {
		t.Errorf("unexpected errors: %v", rt.errors)
	}
}

func TestSnapshot_UpdateViaEnv(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "true")
	path := filepath.Join(t.TempDir(), "nested", "snap.json")

	rt := &recordingT{}
	(&Snapshot{HTML: "<b>&</b>"}).MatchesFile(rt, path)
	if len(rt.fatals) != 0 {
		t.Fatalf("unexpected failures: %v", rt.fatals)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"html": "<b>&</b>"`) {
		t.Errorf("expected unescaped HTML in snapshot, got:\n%s", data)
	}
}

func TestReadSnapshot_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSnapshot(path); err == nil || !strings.Contains(err.Error(), "decoding snapshot") {
		t.Errorf("expected decode error, got %v", err)
	}
}
