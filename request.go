package httpd

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// MaxRequestLineBytes 请求行的最大字节数，不含末尾的CRLF
const MaxRequestLineBytes = 8 << 10

var (
	// ErrRequestLineTooLong 请求行超过 MaxRequestLineBytes
	ErrRequestLineTooLong = errors.New("httpd: request line too long")
	// ErrEmptyRequest 客户端没有发送任何数据就关闭了连接
	ErrEmptyRequest = errors.New("httpd: empty request")
)

// Request 只保存请求行中的信息，请求头和主体不做解析
type Request struct {
	Method     string // 请求方法
	RequestURI string // 请求路径，只解析不用于选择资源
	Proto      string // 协议及版本
	RemoteAddr string // 客户端地址
}

func readRequest(c *conn) (r *Request, err error) {
	r = new(Request)
	if addr := c.rwc.RemoteAddr(); addr != nil {
		r.RemoteAddr = addr.String()
	}
	// 每次读取请求行前重置限制，多出的两个字节留给CRLF
	c.lr.N = MaxRequestLineBytes + 2
	line, err := readline(c.br)
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyRequest
		}
		return nil, err
	}
	if len(line) > MaxRequestLineBytes {
		return nil, ErrRequestLineTooLong
	}
	r.parseRequestLine(string(line))
	return r, nil
}

// parseRequestLine 按空白分割请求行，缺少的字段保持为空
func (r *Request) parseRequestLine(line string) {
	fields := strings.Fields(line)
	if len(fields) > 0 {
		r.Method = fields[0]
	}
	if len(fields) > 1 {
		r.RequestURI = fields[1]
	}
	if len(fields) > 2 {
		r.Proto = fields[2]
	}
}

// readline 读取一行数据
func readline(br *bufio.Reader) ([]byte, error) {
	line, prefix, err := br.ReadLine()
	if err != nil {
		return line, err
	}
	// ReadLine返回的切片会被下次读取覆盖，先拷贝
	line = append([]byte(nil), line...)
	// prefix是为了防止一行数据超过设置的缓存大小还没读完
	var l []byte
	for prefix {
		l, prefix, err = br.ReadLine()
		if err != nil {
			break
		}
		line = append(line, l...)
	}
	return line, err
}
