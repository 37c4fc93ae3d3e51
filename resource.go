package httpd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultDocument 默认提供的页面
const DefaultDocument = "./html_files/index.html"

// ErrResourceUnavailable 所有读取资源失败的错误都包装了它
var ErrResourceUnavailable = errors.New("httpd: resource unavailable")

// Resource 是唯一需要提供的文档，每次请求都完整读取一次
type Resource interface {
	Load() ([]byte, error)
}

// LoadStatus 读取资源的结果
type LoadStatus int

const (
	LoadOK LoadStatus = iota
	LoadNotFound
	LoadIOError
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadNotFound:
		return "not found"
	case LoadIOError:
		return "io error"
	}
	return fmt.Sprintf("LoadStatus(%d)", int(s))
}

// ClassifyLoadError 将读取错误归类，文件不存在之外的错误都算作IO错误
func ClassifyLoadError(err error) LoadStatus {
	switch {
	case err == nil:
		return LoadOK
	case errors.Is(err, fs.ErrNotExist):
		return LoadNotFound
	default:
		return LoadIOError
	}
}

// ResourceError 记录读取失败的资源和原因
type ResourceError struct {
	Path   string
	Status LoadStatus
	Err    error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("httpd: load %s: %s: %v", e.Path, e.Status, e.Err)
}

func (e *ResourceError) Unwrap() []error {
	return []error{ErrResourceUnavailable, e.Err}
}

// FileResource 从磁盘读取文档
type FileResource struct {
	Path string
}

func (f FileResource) Load() ([]byte, error) {
	path := f.Path
	if path == "" {
		path = DefaultDocument
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Status: ClassifyLoadError(err), Err: err}
	}
	return b, nil
}

// BytesResource 内存中的文档，nil表示不存在
type BytesResource []byte

func (b BytesResource) Load() ([]byte, error) {
	if b == nil {
		return nil, &ResourceError{Path: "(memory)", Status: LoadNotFound, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), b...), nil
}
