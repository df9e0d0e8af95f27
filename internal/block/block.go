package block

import (
	"unsafe"

	"mem_arena/internal/errs"
	"mem_arena/internal/mmap"
)

// Block 单块：一段固定容量的 mmap 内存加一个 bump 游标。
// 容量创建后不变，底层地址终身稳定；回收只靠 Reset 把游标清零。
type Block struct {
	data []byte
	used int
}

// New 映射 capacity 字节裸内存，游标为 0。内容未定义，调用方不得假设已清零。
func New(capacity int) (*Block, error) {
	if capacity <= 0 {
		return nil, errs.ErrBadArgument
	}
	data, err := mmap.Alloc(capacity)
	if err != nil {
		return nil, err
	}
	return &Block{data: data, used: 0}, nil
}

// Cap 返回块容量，Close 后为 0。
func (b *Block) Cap() int {
	return len(b.data)
}

// Used 返回游标位置。
func (b *Block) Used() int { return b.used }

// base 返回底层内存起始地址。
func (b *Block) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b.data)))
}

// padding 返回当前游标地址对齐到 align 需要的填充字节数。
func (b *Block) padding(align int) int {
	return int(Padding(b.base()+uintptr(b.used), uintptr(align)))
}

// HasRoom 判断本块是否还放得下 size 字节（含对齐填充）。
func (b *Block) HasRoom(size, align int) bool {
	if b.data == nil {
		return false
	}
	return len(b.data)-b.used >= size+b.padding(align)
}

// Reserve 占用 size 字节并按 align 对齐，返回对齐后的视图。
// 放不下返回 (nil, false)，游标不动，绝不部分提交。
func (b *Block) Reserve(size, align int) ([]byte, bool) {
	if b.data == nil {
		return nil, false
	}
	pad := b.padding(align)
	if len(b.data)-b.used < size+pad {
		return nil, false
	}
	start := b.used + pad
	b.used = start + size
	return b.data[start : start+size : start+size], true
}

// Reset 游标清零，内容不清洗；旧字节会原样留给后续分配。
func (b *Block) Reset() {
	b.used = 0
}

// Close 解除映射。可重复调用。
func (b *Block) Close() error {
	if b.data != nil {
		if err := mmap.Free(b.data); err != nil {
			return err
		}
		b.data = nil
	}
	b.used = 0
	return nil
}
