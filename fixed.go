package mem_arena

import (
	"mem_arena/internal/errs"
	"mem_arena/internal/fixed"
)

// Alloc 在 scope 内存放一个无指针类型 T 的副本，返回指向 arena 内存的指针。
// 指针只在本 scope 存续期内有效。
func Alloc[T any](s *Scope, v T) (*T, error) {
	if s == nil || s.e == nil {
		return nil, errs.ErrNoScope
	}
	return fixed.Alloc(s, v)
}

// AllocSlice 在 scope 内分配 n 个未初始化的 T，返回切片视图。
// 切片只在本 scope 存续期内有效。
func AllocSlice[T any](s *Scope, n int) ([]T, error) {
	if s == nil || s.e == nil {
		return nil, errs.ErrNoScope
	}
	return fixed.AllocSlice[T](s, n)
}
