package mem_arena

import (
	"mem_arena/internal/engine"
	"mem_arena/internal/errs"
)

// Scope 对 arena 的独占、限时使用权。所有分配经由它进行，
// Release 后整个 arena 一次性回收，此前返回的指针和切片全部失效。
// 通常配合 defer sc.Release() 保证任何退出路径都会释放。
type Scope struct {
	e *engine.Arena
}

// AllocBytes 占 n 字节并按 align（2 的幂）对齐，内容未初始化。
func (s *Scope) AllocBytes(n, align int) ([]byte, error) {
	if s == nil || s.e == nil {
		return nil, errs.ErrNoScope
	}
	return s.e.Reserve(n, align)
}

// Release 把所有块的游标清零并交还 arena。可重复调用。
func (s *Scope) Release() {
	if s == nil || s.e == nil {
		return
	}
	s.e.ReleaseScope()
	s.e = nil
}
