package mem_arena

import (
	"mem_arena/internal/engine"
	"mem_arena/internal/errs"
)

// 对外暴露的 sentinel errors，便于调用方 errors.Is。
var (
	ErrBadArgument = errs.ErrBadArgument
	ErrClosed      = errs.ErrClosed
	ErrScopeOpen   = errs.ErrScopeOpen
	ErrNoScope     = errs.ErrNoScope
	ErrNotFixed    = errs.ErrNotFixed
	ErrNoSpace     = errs.ErrNoSpace
)

// Arena 一组可复用的内存块。同一时刻只允许一个 Scope 借用；
// Scope 释放后块原地复用，内存只在 Close 时归还系统。
type Arena struct {
	e *engine.Arena
}

// New 创建 arena，预分配一个 blockSizeMB MiB 的块。
func New(blockSizeMB int) (*Arena, error) {
	if blockSizeMB <= 0 {
		return nil, errs.ErrBadArgument
	}
	e, err := engine.New(blockSizeMB * 1024 * 1024)
	if err != nil {
		return nil, err
	}
	return &Arena{e: e}, nil
}

// Scope 签出独占使用权。已有 scope 未释放时报 ErrScopeOpen。
func (a *Arena) Scope() (*Scope, error) {
	if a == nil || a.e == nil {
		return nil, errs.ErrClosed
	}
	if err := a.e.OpenScope(); err != nil {
		return nil, err
	}
	return &Scope{e: a.e}, nil
}

// Stats arena 当前规模。
type Stats struct {
	Blocks int // 块数
	Used   int // 已占用字节（含对齐填充）
	Cap    int // 总容量字节
}

func (a *Arena) Stats() Stats {
	if a == nil || a.e == nil {
		return Stats{}
	}
	st := a.e.Stats()
	return Stats{Blocks: st.Blocks, Used: st.Used, Cap: st.Cap}
}

// Close 把所有块归还系统。scope 未释放时报 ErrScopeOpen。
func (a *Arena) Close() error {
	if a == nil || a.e == nil {
		return nil
	}
	return a.e.Close()
}
