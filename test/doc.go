// Package test 存放验收与工程化测试。
package test
