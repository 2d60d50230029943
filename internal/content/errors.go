package content

import "errors"

var (
	// ErrNotFound 表示请求路径没有对应的文件。
	ErrNotFound = errors.New("not found")
	// ErrForbidden 表示请求命中目录且目录没有 index.html，禁止列目录。
	ErrForbidden = errors.New("forbidden")
)
