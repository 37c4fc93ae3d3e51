package httpd

import (
	"fmt"
	"io"
	"sort"
)

// Header 定义header类型
type Header map[string][]string

// headerOrder 响应头的固定输出顺序，其余字段按键排序追加在后面
var headerOrder = []string{
	"Date",
	"Content-Type",
	"Content-Length",
	"Set-Cookie",
	"Connection",
}

// Add 往指定键中添加数据
func (h Header) Add(key, value string) {
	h[key] = append(h[key], value)
}

// Set 往请求头中添加键值对
func (h Header) Set(key, value string) {
	h[key] = []string{value}
}

// Get 获取请求头数据
func (h Header) Get(key string) string {
	if value, ok := h[key]; ok && len(value) > 0 {
		return value[0]
	}
	return ""
}

// Del 删除指定键值对
func (h Header) Del(key string) {
	delete(h, key)
}

// write 按固定顺序写出所有字段，每行以CRLF结尾
func (h Header) write(w io.Writer) error {
	seen := make(map[string]bool, len(headerOrder))
	for _, k := range headerOrder {
		seen[k] = true
		if err := writeField(w, k, h[k]); err != nil {
			return err
		}
	}
	rest := make([]string, 0, len(h))
	for k := range h {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		if err := writeField(w, k, h[k]); err != nil {
			return err
		}
	}
	return nil
}

func writeField(w io.Writer, key string, values []string) error {
	for _, v := range values {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", key, v); err != nil {
			return err
		}
	}
	return nil
}
