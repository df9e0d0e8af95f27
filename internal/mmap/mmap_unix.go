//go:build unix

package mmap

import (
	"golang.org/x/sys/unix"
)

// Alloc 以匿名私有映射申请 size 字节可读写内存，地址页对齐且终身不变。
func Alloc(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

// Free 解除映射，内存归还操作系统。
func Free(data []byte) error {
	return unix.Munmap(data)
}
