package pool

import (
	"reflect"
	"unsafe"
)

// RawAllocator is the raw-block contract shared by FixedPool and
// DynPool and consumed by the typed facade.
type RawAllocator interface {
	// AllocRaw returns one full block, or ok=false on exhaustion.
	AllocRaw() ([]byte, bool)
	// Dealloc returns a block and nils the caller's slice.
	Dealloc(block *[]byte)
	// BlockSize returns the size of each block in bytes.
	BlockSize() int

	markNonTrivial()
	offHeap() bool
	// externalBase is the address of a caller-supplied backing buffer,
	// 0 when the engine allocates its own (always aligned) storage.
	externalBase() uintptr
}

// Typed constructs and destroys values of one type on top of raw
// blocks from either engine. The element type may be smaller than the
// block size; the looser fit keeps one engine usable behind several
// facades.
type Typed[T any] struct {
	a    RawAllocator
	size int
	dtor func(*T)
}

// NewTyped wraps a raw engine in a facade for T. A non-nil dtor runs
// on every Free and additionally arms the engine's leak assertion at
// close, since leaked values would skip whatever the destructor
// releases.
//
// Off-heap engines reject types containing Go pointers outright: the
// collector never scans off-heap memory, so such fields would keep
// nothing alive.
func NewTyped[T any](a RawAllocator, dtor func(*T)) (*Typed[T], error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size > a.BlockSize() {
		return nil, ErrTypeSize
	}
	align := uintptr(unsafe.Alignof(zero))
	if a.BlockSize()%int(align) != 0 {
		return nil, ErrTypeAlign
	}
	// Engine-owned storage comes from the heap or mmap and is aligned
	// for any type; a caller-supplied buffer can start anywhere.
	if base := a.externalBase(); base%align != 0 {
		return nil, ErrTypeAlign
	}
	if a.offHeap() && hasPointers(reflect.TypeOf((*T)(nil)).Elem()) {
		return nil, ErrPointerType
	}
	if dtor != nil {
		a.markNonTrivial()
	}
	return &Typed[T]{a: a, size: size, dtor: dtor}, nil
}

// New zeroes a block's value region and returns it as *T, or
// (nil, false) when the engine is exhausted.
func (tp *Typed[T]) New() (*T, bool) {
	obj, ok := tp.NewRaw()
	if !ok {
		return nil, false
	}
	var zero T
	*obj = zero
	return obj, true
}

// NewWith zeroes the value and then runs init over it, the analog of
// constructing with arguments.
func (tp *Typed[T]) NewWith(init func(*T)) (*T, bool) {
	obj, ok := tp.New()
	if !ok {
		return nil, false
	}
	if init != nil {
		init(obj)
	}
	return obj, true
}

// NewRaw skips construction entirely: the value region keeps whatever
// the block last held. For callers that will write every field anyway.
func (tp *Typed[T]) NewRaw() (*T, bool) {
	blk, ok := tp.a.AllocRaw()
	if !ok {
		return nil, false
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(blk))), true
}

// Free destroys *obj, returns its block to the engine and nils the
// caller's pointer. Freeing a nil pointer is a no-op.
func (tp *Typed[T]) Free(obj **T) {
	ptr := *obj
	if ptr == nil {
		return
	}
	if tp.dtor != nil {
		tp.dtor(ptr)
	}
	blk := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), tp.a.BlockSize())
	tp.a.Dealloc(&blk)
	*obj = nil
}

// hasPointers walks t looking for anything the collector would need to
// scan.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Slice, reflect.String, reflect.Func, reflect.Interface:
		return true
	case reflect.Array:
		return hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
