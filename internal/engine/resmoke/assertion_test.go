package resmoke

import (
	"strings"
	"testing"

	"github.com/crimson-sun/desmoke/internal/model"
)

// feed runs lines through a fresh processor and returns assertion events.
func feedAssertions(t *testing.T, lines []string) []model.Event {
	t.Helper()
	p := New()
	var found []model.Event
	for i, text := range lines {
		for _, ev := range p.Process(model.LogLine{Number: i + 1, Text: text}) {
			if ev.Kind == model.KindAssertion {
				found = append(found, ev)
			}
		}
	}
	return found
}

func TestInequalityAssertionWithDiff(t *testing.T) {
	lines := []string{
		`[js_test:failures] 2021-01-01T12:00:01.000+0000 uncaught exception: Error: {"id":1,"message":{"hello":"A"}} != {"id":1,"message":{"hello":"B"}} are not equal :`,
		`[js_test:failures] 2021-01-01T12:00:01.000+0000 doassert@src/mongo/shell/assert.js:18:14`,
		`[js_test:failures] 2021-01-01T12:00:01.000+0000 @jstests/failures.js:253:4`,
		`[js_test:failures] 2021-01-01T12:00:01.000+0000 failed to load: jstests/failures.js`,
	}
	found := feedAssertions(t, lines)
	if len(found) != 1 {
		t.Fatalf("expected 1 assertion, got %d", len(found))
	}

	out := found[0].Output
	wantHead := `[desmoke] jstests/failures.js:253:4: error: assert equals failed: <no message>: {"id":1,"message":{"hello":"A"}} != {"id":1,"message":{"hello":"B"}}`
	parts := strings.SplitN(out, "\n", 2)
	if parts[0] != wantHead {
		t.Fatalf("head %q, want %q", parts[0], wantHead)
	}
	if len(parts) != 2 {
		t.Fatal("expected a diff block")
	}
	wantDiff := "Diff:\nLeft: {\"message\":{\"hello\":\"A\"}}\nRight: {\"message\":{\"hello\":\"B\"}}"
	if parts[1] != wantDiff {
		t.Fatalf("diff %q, want %q", parts[1], wantDiff)
	}
	// The equal "id" field must not appear anywhere in the diff.
	if strings.Contains(parts[1], "id") {
		t.Fatalf("diff mentions an equal field: %q", parts[1])
	}
}

func TestEqualPayloadsOmitDiffBlock(t *testing.T) {
	lines := []string{
		`[js_test:failures] uncaught exception: Error: {"a":1} != {"a":1} are not equal :`,
		`[js_test:failures] @jstests/failures.js:10:1`,
		`[js_test:failures] failed to load: jstests/failures.js`,
	}
	found := feedAssertions(t, lines)
	if len(found) != 1 {
		t.Fatalf("expected 1 assertion, got %d", len(found))
	}
	if strings.Contains(found[0].Output, "Diff:") {
		t.Fatalf("expected no diff block for equal payloads: %q", found[0].Output)
	}
}

func TestMalformedPayloadFallsBackToRawMessage(t *testing.T) {
	lines := []string{
		`[js_test:failures] uncaught exception: Error: not-json != {"a":1} are not equal :`,
		`[js_test:failures] @jstests/failures.js:10:1`,
		`[js_test:failures] done`,
	}
	found := feedAssertions(t, lines)
	if len(found) != 1 {
		t.Fatalf("expected 1 assertion, got %d", len(found))
	}
	out := found[0].Output
	if strings.Contains(out, "Diff:") {
		t.Fatalf("malformed payload must not produce a diff block: %q", out)
	}
	if !strings.Contains(out, `not-json != {"a":1}`) {
		t.Fatalf("raw message missing: %q", out)
	}
}

func TestMultiLineAssertionStitching(t *testing.T) {
	// The shell pretty-prints objects across several lines.
	lines := []string{
		`[js_test:failures] 2021-01-01T12:00:01.000+0000 uncaught exception: Error: {"id":1,"message":`,
		`[js_test:failures] 2021-01-01T12:00:01.000+0000     {"hello":"A"}} != {"id":1,"message":{"hello":"B"}} are not equal :`,
		`[js_test:failures] 2021-01-01T12:00:01.000+0000 @jstests/failures.js:253:4`,
		`[js_test:failures] 2021-01-01T12:00:01.000+0000 the end`,
	}
	found := feedAssertions(t, lines)
	if len(found) != 1 {
		t.Fatalf("expected 1 assertion, got %d", len(found))
	}
	if !strings.Contains(found[0].Output, `{"message":{"hello":"A"}}`) {
		t.Fatalf("stitched payload did not parse: %q", found[0].Output)
	}
}

func TestJSErrorAssertion(t *testing.T) {
	lines := []string{
		`[js_test:types] uncaught exception: TypeError: db.foo is not a function :`,
		`[js_test:types] @jstests/types.js:7:2`,
		`[js_test:types] failed to load: jstests/types.js`,
	}
	found := feedAssertions(t, lines)
	if len(found) != 1 {
		t.Fatalf("expected 1 assertion, got %d", len(found))
	}
	want := "[desmoke] jstests/types.js:7:2: warning: TypeError: db.foo is not a function"
	if found[0].Output != want {
		t.Fatalf("output %q, want %q", found[0].Output, want)
	}
}

func TestGenericAssertion(t *testing.T) {
	lines := []string{
		`[js_test:gen] uncaught exception: Error: assert failed:`,
		`[js_test:gen] @jstests/gen.js:33:9`,
		`[js_test:gen] failed to load: jstests/gen.js`,
	}
	found := feedAssertions(t, lines)
	if len(found) != 1 {
		t.Fatalf("expected 1 assertion, got %d", len(found))
	}
	want := "[desmoke] jstests/gen.js:33:9: error: assert failed"
	if found[0].Output != want {
		t.Fatalf("output %q, want %q", found[0].Output, want)
	}
}

func TestPositionPrefersTestFrame(t *testing.T) {
	pos := positionFromTrace([]string{
		"doassert@src/mongo/shell/assert.js:18:14",
		"assert.eq@src/mongo/shell/assert.js:101:11",
		"@jstests/failures.js:253:4",
	})
	if pos.String() != "jstests/failures.js:253:4" {
		t.Fatalf("position %q", pos.String())
	}
}

func TestPositionFallsBackToFirstFrame(t *testing.T) {
	pos := positionFromTrace([]string{
		"doassert@src/mongo/shell/assert.js:18:14",
		"run@src/mongo/shell/utils.js:22:3",
	})
	if pos.String() != "src/mongo/shell/assert.js:18:14" {
		t.Fatalf("position %q", pos.String())
	}
}

func TestUnparsableAssertionEmitsNothing(t *testing.T) {
	lines := []string{
		`[js_test:odd] uncaught exception: something entirely unexpected`,
		`[js_test:odd] @jstests/odd.js:1:1`,
		`[js_test:odd] done`,
	}
	if found := feedAssertions(t, lines); len(found) != 0 {
		t.Fatalf("expected no assertion events, got %d", len(found))
	}
}

func TestBackToBackAssertions(t *testing.T) {
	// The line closing one traceback can open the next assertion.
	lines := []string{
		`[js_test:a] uncaught exception: Error: first failure:`,
		`[js_test:a] @jstests/a.js:1:1`,
		`[js_test:a] uncaught exception: Error: second failure:`,
		`[js_test:a] @jstests/a.js:2:2`,
		`[js_test:a] done`,
	}
	found := feedAssertions(t, lines)
	if len(found) != 2 {
		t.Fatalf("expected 2 assertions, got %d", len(found))
	}
	if !strings.Contains(found[0].Output, "first failure") || !strings.Contains(found[1].Output, "second failure") {
		t.Fatalf("outputs: %q, %q", found[0].Output, found[1].Output)
	}
}
