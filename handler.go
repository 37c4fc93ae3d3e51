package httpd

import (
	"errors"
)

// NotFoundBody 资源不可用时返回的页面
const NotFoundBody = "<html><body><h1>404 Not Found</h1></body></html>"

// SessionCookie 成功响应中设置的cookie，有效期7天
const SessionCookie = "coursename=CompNet; Path=/; HttpOnly; Max-Age=604800"

const contentTypeHTML = "text/html; charset=UTF-8"

type Handler interface {
	ServeHTTP(w ResponseWriter, r *Request)
}

// HandlerFunc 让普通函数实现Handler
type HandlerFunc func(w ResponseWriter, r *Request)

func (f HandlerFunc) ServeHTTP(w ResponseWriter, r *Request) {
	f(w, r)
}

// FileHandler 不管请求路径是什么，都返回同一个文档
type FileHandler struct {
	Resource Resource
	// OnUnavailable 在资源读取失败时调用，可以为nil
	OnUnavailable func(r *Request, err error)
}

// NewFileHandler 返回提供 path 处文件的handler
func NewFileHandler(path string) *FileHandler {
	return &FileHandler{Resource: FileResource{Path: path}}
}

func (h *FileHandler) ServeHTTP(w ResponseWriter, r *Request) {
	res := h.Resource
	if res == nil {
		res = FileResource{}
	}
	body, err := res.Load()
	if err != nil {
		if !errors.Is(err, ErrResourceUnavailable) {
			err = &ResourceError{Path: "(resource)", Status: ClassifyLoadError(err), Err: err}
		}
		if h.OnUnavailable != nil {
			h.OnUnavailable(r, err)
		}
		NotFound(w)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.Header().Set("Set-Cookie", SessionCookie)
	w.WriteHeader(StatusOK)
	_, _ = w.Write(body)
}

// NotFound 写出固定的404页面，不带cookie
func NotFound(w ResponseWriter) {
	w.Header().Del("Set-Cookie")
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(StatusNotFound)
	_, _ = w.Write([]byte(NotFoundBody))
}
