package httpd

import (
	"bufio"
	"errors"
	"io"
	"net"
	"time"
)

// ConnState 连接处理过程中的状态
type ConnState int

const (
	StateAwaitingRequest ConnState = iota
	StateRequestRead
	StateWritingResponse
	StateClosed
)

var connStateName = map[ConnState]string{
	StateAwaitingRequest: "awaiting-request",
	StateRequestRead:     "request-read",
	StateWritingResponse: "writing-response",
	StateClosed:          "closed",
}

func (s ConnState) String() string {
	return connStateName[s]
}

type conn struct {
	svc *Server           // server对象
	rwc net.Conn          // tcp 连接
	lr  *io.LimitedReader // 限制请求行的最大尺寸
	bw  *bufio.Writer     // 缓存写入
	br  *bufio.Reader     // 缓存读取
}

func newConn(svc *Server, rwc net.Conn) *conn {
	lr := &io.LimitedReader{R: rwc, N: MaxRequestLineBytes + 2}
	return &conn{
		svc: svc,
		rwc: rwc,
		lr:  lr,
		br:  bufio.NewReader(lr),
		bw:  bufio.NewWriter(rwc),
	}
}

// serve 只处理一个请求，写完响应后关闭连接
func (c *conn) serve() {
	log := c.svc.logger()
	c.setState(StateAwaitingRequest)
	defer func() {
		// 处理错误
		if err := recover(); err != nil {
			log.Error().Str("remote", c.remoteAddr()).Msgf("http: panic serving: %v", err)
		}
		// 关闭tcp连接
		c.close()
	}()

	req, err := c.readRequest()
	if err != nil {
		handleErr(err, c)
		return
	}
	c.setState(StateRequestRead)

	resp := setupResponse(c)
	c.svc.handler().ServeHTTP(resp, req)

	c.setState(StateWritingResponse)
	if err := resp.finish(c.svc.now()); err != nil {
		handleErr(err, c)
		return
	}
	log.Info().
		Str("remote", req.RemoteAddr).
		Str("method", req.Method).
		Str("path", req.RequestURI).
		Int("status", resp.status).
		Int("bytes", resp.body.Len()).
		Msg("served")
}

// readRequest 从连接中读取请求行
func (c *conn) readRequest() (*Request, error) {
	return readRequest(c)
}

// handleErr 错误处理，不向客户端返回任何内容
func handleErr(err error, c *conn) {
	log := c.svc.logger()
	if errors.Is(err, ErrEmptyRequest) {
		log.Debug().Str("remote", c.remoteAddr()).Msg("connection closed before request")
		return
	}
	log.Warn().Err(err).Str("remote", c.remoteAddr()).Msg("dropping connection")
}

func (c *conn) remoteAddr() string {
	if addr := c.rwc.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

func (c *conn) setState(s ConnState) {
	if hook := c.svc.ConnState; hook != nil {
		hook(c.rwc, s)
	}
}

// closeWriter 由*net.TCPConn实现
type closeWriter interface {
	CloseWrite() error
}

const (
	// 关闭前最多丢弃这么多未读的请求数据
	maxDrainBytes = 256 << 10
	drainTimeout  = 500 * time.Millisecond
)

// close 关闭连接。TCP连接先关闭写端并丢弃未读的请求数据，接收缓冲区非空时关闭会发送RST
func (c *conn) close() {
	if cw, ok := c.rwc.(closeWriter); ok {
		if cw.CloseWrite() == nil {
			_ = c.rwc.SetReadDeadline(time.Now().Add(drainTimeout))
			_, _ = io.CopyN(io.Discard, c.rwc, maxDrainBytes)
		}
	}
	// 关闭tcp连接
	_ = c.rwc.Close()
	c.setState(StateClosed)
}
