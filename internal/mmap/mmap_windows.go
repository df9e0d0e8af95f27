//go:build windows

package mmap

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Alloc 通过 VirtualAlloc 申请 size 字节可读写内存，地址页对齐且终身不变。
func Alloc(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// Free 释放 Alloc 返回的整块内存。
func Free(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return windows.VirtualFree(uintptr(unsafe.Pointer(&data[0])), 0, windows.MEM_RELEASE)
}
