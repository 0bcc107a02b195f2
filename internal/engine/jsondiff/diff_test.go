package jsondiff

import "testing"

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return v
}

func diffStrings(t *testing.T, a, b string) (string, string) {
	t.Helper()
	dl, dr := Diff(mustParse(t, a), mustParse(t, b))
	if dl == nil || dr == nil {
		t.Fatalf("Diff(%q, %q): expected a difference", a, b)
	}
	return Render(*dl), Render(*dr)
}

func TestDiffEqualValues(t *testing.T) {
	for _, s := range []string{`1`, `"x"`, `null`, `{"a":[1,2],"b":{"c":true}}`} {
		dl, dr := Diff(mustParse(t, s), mustParse(t, s))
		if dl != nil || dr != nil {
			t.Fatalf("Diff(%q, itself): expected nil, got %v / %v", s, dl, dr)
		}
	}
}

func TestDiffEquivalentNumericLiterals(t *testing.T) {
	// 1 and 1.0 are the same value; a differing literal alone is no diff.
	dl, dr := Diff(mustParse(t, `{"n":1,"m":2}`), mustParse(t, `{"n":1.0,"m":2e0}`))
	if dl != nil || dr != nil {
		t.Fatalf("expected nil, got %v / %v", dl, dr)
	}
}

func TestDiffScalars(t *testing.T) {
	left, right := diffStrings(t, `1`, `2`)
	if left != `1` || right != `2` {
		t.Fatalf("got %q / %q", left, right)
	}
}

func TestDiffTypeMismatchReturnsBothWhole(t *testing.T) {
	left, right := diffStrings(t, `{"a":1}`, `[1]`)
	if left != `{"a":1}` || right != `[1]` {
		t.Fatalf("got %q / %q", left, right)
	}
}

func TestDiffObjectReportsOnlyDivergentKeys(t *testing.T) {
	left, right := diffStrings(t,
		`{"id":1,"message":{"hello":"A"}}`,
		`{"id":1,"message":{"hello":"B"}}`)
	if left != `{"message":{"hello":"A"}}` {
		t.Fatalf("left: %q", left)
	}
	if right != `{"message":{"hello":"B"}}` {
		t.Fatalf("right: %q", right)
	}
}

func TestDiffObjectOneSidedKeys(t *testing.T) {
	left, right := diffStrings(t, `{"a":1,"b":2}`, `{"a":1,"c":3}`)
	if left != `{"b":2}` {
		t.Fatalf("left: %q", left)
	}
	if right != `{"c":3}` {
		t.Fatalf("right: %q", right)
	}
}

func TestDiffArrayPairwise(t *testing.T) {
	left, right := diffStrings(t, `[1,2,3]`, `[1,9,3]`)
	if left != `[2]` || right != `[9]` {
		t.Fatalf("got %q / %q", left, right)
	}
}

func TestDiffArrayLengthTail(t *testing.T) {
	left, right := diffStrings(t, `[1,2]`, `[1,2,3,4]`)
	if left != `[]` || right != `[3,4]` {
		t.Fatalf("got %q / %q", left, right)
	}
}

func TestDiffDeepNesting(t *testing.T) {
	left, right := diffStrings(t,
		`{"outer":{"inner":{"k":1,"same":0}},"same":true}`,
		`{"outer":{"inner":{"k":2,"same":0}},"same":true}`)
	if left != `{"outer":{"inner":{"k":1}}}` {
		t.Fatalf("left: %q", left)
	}
	if right != `{"outer":{"inner":{"k":2}}}` {
		t.Fatalf("right: %q", right)
	}
}

func TestDiffSymmetry(t *testing.T) {
	a := `{"x":{"y":1},"z":[1,2]}`
	b := `{"x":{"y":2},"z":[1,3]}`
	l1, r1 := diffStrings(t, a, b)
	l2, r2 := diffStrings(t, b, a)
	if l1 != r2 || r1 != l2 {
		t.Fatalf("diff is not symmetric: (%q,%q) vs (%q,%q)", l1, r1, l2, r2)
	}
}
