// Package testing provides a harness for exercising components without a
// browser.
//
// A Tester owns a manual-flush scheduler and a memdom root element, so a
// test decides exactly when queued work runs and inspects the resulting DOM
// as HTML. Components render with the virtual nodes of package memdom.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    tester := scopetest.NewTesterWithT(t)
//	    s := scopetest.Mount(tester, CounterKind, 0)
//	    tester.Flush()
//
//	    s.SendMessage(Increment)
//	    tester.Flush()
//
//	    if got := tester.HTML(); got != "<div>1</div>" {
//	        t.Errorf("HTML() = %q", got)
//	    }
//	}
//
// # Lifecycle Tracing
//
// Wrap a kind with TraceKind to record every hook call:
//
//	kind := scopetest.TraceKind(tester, CounterKind)
//	scopetest.Mount(tester, kind, 0)
//	tester.Flush()
//	tester.Recorder().Strings() // [counter.create(0) counter.render counter.rendered(true)]
//
// # Snapshot Testing
//
// Capture and compare the DOM together with the recorded events:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/counter.snapshot.json")
//
// Record or refresh golden files with:
//
//	VSCOPE_UPDATE_SNAPSHOTS=1 go test ./...
package testing
