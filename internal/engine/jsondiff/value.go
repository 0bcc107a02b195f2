package jsondiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind discriminates the JSON value variants.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Member is one key/value pair of an Object, in source order.
type Member struct {
	Key   string
	Value Value
}

// Value is a parsed JSON value. Exactly the fields relevant to Kind are
// meaningful; the rest stay zero.
type Value struct {
	Kind Kind
	Bool bool
	Num  string // numeric literal as it appeared in the source
	Str  string
	Arr  []Value
	Obj  []Member
}

// Parse decodes a complete JSON document into a Value, preserving object
// key order and numeric literals.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("jsondiff: %w", err)
	}
	if dec.More() {
		return Value{}, fmt.Errorf("jsondiff: trailing data after JSON value")
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return Value{Kind: String, Str: t}, nil
	case json.Number:
		return Value{Kind: Number, Num: t.String()}, nil
	case bool:
		return Value{Kind: Bool, Bool: t}, nil
	case nil:
		return Value{Kind: Null}, nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (Value, error) {
	v := Value{Kind: Object}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Obj = append(v.Obj, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return Value{}, err
	}
	return v, nil
}

func parseArray(dec *json.Decoder) (Value, error) {
	v := Value{Kind: Array}
	for dec.More() {
		elem, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Arr = append(v.Arr, elem)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return Value{}, err
	}
	return v, nil
}

// Equal reports deep structural equality. Objects compare by key set and
// per-key value, independent of member order.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Null:
		return true
	case Bool:
		return a.Bool == b.Bool
	case Number:
		return numberEqual(a.Num, b.Num)
	case String:
		return a.Str == b.Str
	case Array:
		if len(a.Arr) != len(b.Arr) {
			return false
		}
		for i := range a.Arr {
			if !Equal(a.Arr[i], b.Arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.Obj) != len(b.Obj) {
			return false
		}
		bi := indexMembers(b.Obj)
		for _, m := range a.Obj {
			other, ok := bi[m.Key]
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

// numberEqual compares numeric values rather than literals: 1 equals 1.0
// and 1e2 equals 100. Literals that overflow float64 fall back to a
// byte comparison.
func numberEqual(a, b string) bool {
	if a == b {
		return true
	}
	af, aerr := json.Number(a).Float64()
	bf, berr := json.Number(b).Float64()
	if aerr != nil || berr != nil {
		return false
	}
	return af == bf
}

func indexMembers(members []Member) map[string]Value {
	m := make(map[string]Value, len(members))
	for _, mem := range members {
		m[mem.Key] = mem.Value
	}
	return m
}

// Render writes v back out as compact JSON.
func Render(v Value) string {
	var b strings.Builder
	renderTo(&b, v)
	return b.String()
}

func renderTo(b *strings.Builder, v Value) {
	switch v.Kind {
	case Null:
		b.WriteString("null")
	case Bool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Number:
		b.WriteString(v.Num)
	case String:
		quoted, _ := json.Marshal(v.Str)
		b.Write(quoted)
	case Array:
		b.WriteByte('[')
		for i, elem := range v.Arr {
			if i > 0 {
				b.WriteByte(',')
			}
			renderTo(b, elem)
		}
		b.WriteByte(']')
	case Object:
		b.WriteByte('{')
		for i, m := range v.Obj {
			if i > 0 {
				b.WriteByte(',')
			}
			quoted, _ := json.Marshal(m.Key)
			b.Write(quoted)
			b.WriteByte(':')
			renderTo(b, m.Value)
		}
		b.WriteByte('}')
	}
}
