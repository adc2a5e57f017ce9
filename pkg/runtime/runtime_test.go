package runtime

import (
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	tenth, fifth := 0.1, 0.2
	cases := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{BoolValue{Val: true}, "true"},
		{IntValue{Val: -42}, "-42"},
		{DoubleValue{Val: 2}, "2.0"},
		{DoubleValue{Val: tenth + fifth}, "0.30000000000000004"},
		{DoubleValue{Val: 3.25}, "3.25"},
		{DoubleValue{Val: math.Inf(1)}, "inf"},
		{DoubleValue{Val: math.Inf(-1)}, "-inf"},
		{DoubleValue{Val: math.NaN()}, "nan"},
		{CharValue{Val: 'z'}, "z"},
		{StringValue{Val: "hi"}, "hi"},
		{ObjectRef{OID: 3}, "<object 3>"},
	}
	for _, tc := range cases {
		if got := Format(tc.v); got != tc.want {
			t.Fatalf("Format(%#v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestUnescape(t *testing.T) {
	if got := Unescape(`a\nb\tc\\d`); got != "a\nb\tc\\\\d" {
		t.Fatalf("unexpected unescape result %q", got)
	}
}

func TestHeapAllocatesIncreasingHandles(t *testing.T) {
	heap := NewHeap()
	first, obj := heap.Allocate("Node")
	obj.Set("val", IntValue{Val: 1})
	second, _ := heap.Allocate("Node")
	if second <= first {
		t.Fatalf("expected increasing oids, got %d then %d", first, second)
	}
	if heap.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", heap.Len())
	}
	got, err := heap.Get(first)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v, ok := got.Get("val"); !ok || v.(IntValue).Val != 1 {
		t.Fatalf("expected val=1, got %#v", v)
	}
	if _, err := heap.Get(OID(99)); err == nil {
		t.Fatalf("expected error for unknown oid")
	}
}

func TestObjectsAreSharedThroughReferences(t *testing.T) {
	heap := NewHeap()
	oid, _ := heap.Allocate("P")
	a := ObjectRef{OID: oid}
	b := a
	objA, _ := heap.Get(a.OID)
	objA.Set("x", IntValue{Val: 7})
	objB, _ := heap.Get(b.OID)
	if v, _ := objB.Get("x"); v.(IntValue).Val != 7 {
		t.Fatalf("mutation through one reference must be visible through the other")
	}
}

func TestAttributeOrder(t *testing.T) {
	heap := NewHeap()
	_, obj := heap.Allocate("P")
	obj.Set("b", Nil)
	obj.Set("a", Nil)
	obj.Set("b", IntValue{Val: 1})
	attrs := obj.Attributes()
	if len(attrs) != 2 || attrs[0] != "b" || attrs[1] != "a" {
		t.Fatalf("unexpected attribute order %v", attrs)
	}
	if !obj.Has("a") || obj.Has("c") {
		t.Fatalf("unexpected Has results")
	}
}
