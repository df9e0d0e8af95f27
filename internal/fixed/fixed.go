package fixed

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"

	"mem_arena/internal/errs"
)

// Reserver 供 Alloc/AllocSlice 使用的裸内存接口。
type Reserver interface {
	AllocBytes(size, align int) ([]byte, error)
}

// assertNoPointers 校验 T 是定长无指针类型：可以按位拷贝、无需析构，
// 且存进 GC 看不见的内存也不会藏引用。
func assertNoPointers[T any]() error {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		// T 本身是接口类型
		return fmt.Errorf("%w: interface type", errs.ErrNotFixed)
	}
	return typeNoPointers(t)
}

func typeNoPointers(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return typeNoPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if err := typeNoPointers(t.Field(i).Type); err != nil {
				return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
			}
		}
		return nil
	// 这些都可能携带指针 / 运行时对象
	case reflect.String, reflect.Slice, reflect.Map, reflect.Pointer,
		reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Errorf("%w: %s", errs.ErrNotFixed, t.String())
	default:
		return fmt.Errorf("%w: unsupported kind %s (%s)", errs.ErrNotFixed, t.Kind(), t.String())
	}
}

// bytesViewOf 返回 *p 所占内存的字节视图（memcpy 语义）。
func bytesViewOf[T any](p *T) []byte {
	n := int(unsafe.Sizeof(*p))
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), n)
}

// Alloc 在 r 中占一块 T 大小、T 对齐的内存，拷入 v 的位模式，返回块内指针。
func Alloc[T any](r Reserver, v T) (*T, error) {
	if err := assertNoPointers[T](); err != nil {
		return nil, err
	}
	size := int(unsafe.Sizeof(v))
	if size == 0 {
		// 零宽类型没有字节可占
		return new(T), nil
	}
	b, err := r.AllocBytes(size, int(unsafe.Alignof(v)))
	if err != nil {
		return nil, err
	}
	copy(b, bytesViewOf(&v))
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// AllocSlice 在 r 中占 n 个 T 的内存并返回切片视图，元素内容未初始化。
func AllocSlice[T any](r Reserver, n int) ([]T, error) {
	if err := assertNoPointers[T](); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errs.ErrBadArgument
	}
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if elem == 0 {
		return make([]T, n), nil
	}
	if n > math.MaxInt/elem {
		return nil, errs.ErrBadArgument
	}
	b, err := r.AllocBytes(n*elem, int(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}
