package block

// Padding 返回把 addr 对齐到 align 边界需要跳过的字节数。
// 约定 align 为正的 2 的幂（调用方保证，不在此校验）。
func Padding(addr, align uintptr) uintptr {
	rem := addr % align
	if rem == 0 {
		return 0
	}
	return align - rem
}
