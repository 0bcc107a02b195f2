package jsondiff

// Diff computes the deep difference between two values. It returns nil, nil
// when the values are structurally equal. Otherwise the results hold only
// the divergent parts: objects keep differing or one-sided keys, arrays
// keep differing elements plus any length tail, scalars and type mismatches
// come back whole on both sides.
func Diff(a, b Value) (left, right *Value) {
	if Equal(a, b) {
		return nil, nil
	}

	if a.Kind != b.Kind {
		return clone(a), clone(b)
	}

	switch a.Kind {
	case Object:
		return objectDiff(a, b)
	case Array:
		return arrayDiff(a, b)
	}
	return clone(a), clone(b)
}

func objectDiff(a, b Value) (*Value, *Value) {
	bi := indexMembers(b.Obj)
	ai := indexMembers(a.Obj)

	left := &Value{Kind: Object}
	right := &Value{Kind: Object}

	for _, m := range a.Obj {
		other, ok := bi[m.Key]
		if !ok {
			left.Obj = append(left.Obj, Member{Key: m.Key, Value: m.Value})
			continue
		}
		dl, dr := Diff(m.Value, other)
		if dl == nil && dr == nil {
			continue
		}
		left.Obj = append(left.Obj, Member{Key: m.Key, Value: *dl})
		right.Obj = append(right.Obj, Member{Key: m.Key, Value: *dr})
	}
	for _, m := range b.Obj {
		if _, ok := ai[m.Key]; !ok {
			right.Obj = append(right.Obj, Member{Key: m.Key, Value: m.Value})
		}
	}
	return left, right
}

func arrayDiff(a, b Value) (*Value, *Value) {
	left := &Value{Kind: Array}
	right := &Value{Kind: Array}

	n := min(len(a.Arr), len(b.Arr))
	for i := 0; i < n; i++ {
		dl, dr := Diff(a.Arr[i], b.Arr[i])
		if dl == nil && dr == nil {
			continue
		}
		left.Arr = append(left.Arr, *dl)
		right.Arr = append(right.Arr, *dr)
	}
	// The longer side's tail has nothing to pair against.
	left.Arr = append(left.Arr, a.Arr[n:]...)
	right.Arr = append(right.Arr, b.Arr[n:]...)
	return left, right
}

func clone(v Value) *Value {
	c := v
	return &c
}
