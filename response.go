package httpd

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// TimeFormat Date头使用的格式，时间必须是UTC
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

const (
	StatusOK       = 200
	StatusNotFound = 404
)

var statusText = map[int]string{
	StatusOK:       "OK",
	StatusNotFound: "Not Found",
}

// StatusText 返回状态码对应的短语
func StatusText(code int) string {
	return statusText[code]
}

// ResponseWriter 由handler使用，主体先缓存在内存中，连接结束时一次写出
type ResponseWriter interface {
	Header() Header
	WriteHeader(statusCode int)
	Write([]byte) (n int, err error)
}

type response struct {
	c      *conn
	header Header
	status int
	body   bytes.Buffer
}

func setupResponse(c *conn) *response {
	return &response{c: c, header: make(Header), status: StatusOK}
}

func (w *response) Header() Header {
	return w.header
}

func (w *response) WriteHeader(statusCode int) {
	w.status = statusCode
}

func (w *response) Write(p []byte) (n int, err error) {
	return w.body.Write(p)
}

// finish 补全Date、Content-Length和Connection，然后写出整个报文
func (w *response) finish(now time.Time) error {
	w.header.Set("Date", now.UTC().Format(TimeFormat))
	w.header.Set("Content-Length", strconv.Itoa(w.body.Len()))
	w.header.Set("Connection", "close")

	bw := w.c.bw
	text := StatusText(w.status)
	if text == "" {
		text = "status code " + strconv.Itoa(w.status)
	}
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", w.status, text); err != nil {
		return err
	}
	if err := w.header.write(bw); err != nil {
		return err
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	if _, err := bw.Write(w.body.Bytes()); err != nil {
		return err
	}
	return bw.Flush()
}
