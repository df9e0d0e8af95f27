package engine

import (
	"math"
	"sync"

	"mem_arena/internal/block"
	"mem_arena/internal/errs"
)

// Arena 管理一组按创建顺序排列的 Block：first-fit 扫描、不够就追加新块。
// 块列表只增不减，峰值内存保留到 Close；分配必须在 scope 打开期间进行。
type Arena struct {
	lifeMu sync.Mutex

	blockSize int
	blocks    []*block.Block

	scopeOpen bool
	closed    bool
}

// New 创建 arena 并预分配一个 blockSize 字节的块。
func New(blockSize int) (*Arena, error) {
	if blockSize <= 0 {
		return nil, errs.ErrBadArgument
	}
	b, err := block.New(blockSize)
	if err != nil {
		return nil, err
	}
	return &Arena{
		blockSize: blockSize,
		blocks:    []*block.Block{b},
	}, nil
}

// OpenScope 登记独占使用权；已有 scope 打开时报 ErrScopeOpen。
func (a *Arena) OpenScope() error {
	a.lifeMu.Lock()
	defer a.lifeMu.Unlock()
	if a.closed {
		return errs.ErrClosed
	}
	if a.scopeOpen {
		return errs.ErrScopeOpen
	}
	a.scopeOpen = true
	return nil
}

// ReleaseScope 把所有块的游标清零并交还使用权。无 scope 打开时为 no-op。
func (a *Arena) ReleaseScope() {
	a.lifeMu.Lock()
	defer a.lifeMu.Unlock()
	if !a.scopeOpen {
		return
	}
	for _, b := range a.blocks {
		b.Reset()
	}
	a.scopeOpen = false
}

// Reserve 按创建顺序找第一个放得下的块占用 size 字节（align 对齐）。
// 都放不下则追加一个 max(blockSize, size+align) 的新块；+align 的余量保证
// 新块起始地址无论落在哪都能满足本次请求。
func (a *Arena) Reserve(size, align int) ([]byte, error) {
	if size <= 0 || align <= 0 || align&(align-1) != 0 {
		return nil, errs.ErrBadArgument
	}
	if size > math.MaxInt-align {
		return nil, errs.ErrBadArgument
	}
	if a.closed {
		return nil, errs.ErrClosed
	}
	if !a.scopeOpen {
		return nil, errs.ErrNoScope
	}
	for _, b := range a.blocks {
		if out, ok := b.Reserve(size, align); ok {
			return out, nil
		}
	}
	need := a.blockSize
	if size+align > need {
		need = size + align
	}
	nb, err := block.New(need)
	if err != nil {
		// 系统内存耗尽属不可恢复错误，原样上抛，不重试。
		return nil, err
	}
	a.blocks = append(a.blocks, nb)
	out, ok := nb.Reserve(size, align)
	if !ok {
		return nil, errs.ErrNoSpace
	}
	return out, nil
}

// Stats arena 当前规模。
type Stats struct {
	Blocks int // 块数
	Used   int // 已占用字节（含对齐填充）
	Cap    int // 总容量字节
}

// Stats 汇总所有块的占用与容量。
func (a *Arena) Stats() Stats {
	var st Stats
	st.Blocks = len(a.blocks)
	for _, b := range a.blocks {
		st.Used += b.Used()
		st.Cap += b.Cap()
	}
	return st
}

// Close 解除所有块的映射。scope 未释放时报 ErrScopeOpen；可重复调用。
func (a *Arena) Close() error {
	a.lifeMu.Lock()
	defer a.lifeMu.Unlock()
	if a.closed {
		return nil
	}
	if a.scopeOpen {
		return errs.ErrScopeOpen
	}
	var firstErr error
	for _, b := range a.blocks {
		if b != nil {
			if err := b.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	a.blocks = nil
	a.closed = true
	return firstErr
}
