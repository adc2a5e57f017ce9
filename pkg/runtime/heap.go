package runtime

import (
	"fmt"
)

// OID is an opaque object handle. Handles are issued in increasing order and
// never reused.
type OID int

// HeapObject is one UDT instance: attribute values in declaration order.
type HeapObject struct {
	TypeName string
	attrs    map[string]Value
	order    []string
}

func newHeapObject(typeName string) *HeapObject {
	return &HeapObject{TypeName: typeName, attrs: make(map[string]Value)}
}

func (o *HeapObject) Has(name string) bool {
	_, ok := o.attrs[name]
	return ok
}

func (o *HeapObject) Get(name string) (Value, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

// Set stores an attribute, appending new names to the attribute order.
func (o *HeapObject) Set(name string, v Value) {
	if _, ok := o.attrs[name]; !ok {
		o.order = append(o.order, name)
	}
	o.attrs[name] = v
}

// Attributes lists attribute names in the order they were first set.
func (o *HeapObject) Attributes() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}

// Heap is an append-only arena of objects. Entries are never freed, so memory
// grows for the lifetime of a run.
type Heap struct {
	objects []*HeapObject
}

func NewHeap() *Heap {
	return &Heap{}
}

// Allocate creates an empty object of the given type and returns its handle.
func (h *Heap) Allocate(typeName string) (OID, *HeapObject) {
	obj := newHeapObject(typeName)
	h.objects = append(h.objects, obj)
	return OID(len(h.objects) - 1), obj
}

// Get returns the object for oid.
func (h *Heap) Get(oid OID) (*HeapObject, error) {
	if oid < 0 || int(oid) >= len(h.objects) {
		return nil, fmt.Errorf("heap: no object with oid %d", oid)
	}
	return h.objects[oid], nil
}

// Len reports how many objects have been allocated.
func (h *Heap) Len() int {
	return len(h.objects)
}
