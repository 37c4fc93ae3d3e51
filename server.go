package httpd

import (
	"errors"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultAddr 监听所有网卡的12345端口
const DefaultAddr = ":12345"

// ErrServerClosed 调用Close后Serve和ListenAndServe返回该错误
var ErrServerClosed = errors.New("httpd: Server closed")

type Server struct {
	Addr    string
	Handler Handler

	// Logger 为nil时输出到标准错误
	Logger *zerolog.Logger
	// ConnState 每次连接状态变化时调用，可以为nil
	ConnState func(net.Conn, ConnState)
	// Now 用于生成Date头，为nil时使用time.Now
	Now func() time.Time

	mu       sync.Mutex
	listener net.Listener
	closed   bool
	initLog  sync.Once
	log      zerolog.Logger
}

func (svc *Server) ListenAndServe() error {
	addr := svc.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	// 创建tcp连接
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return svc.Serve(l)
}

// Serve 依次接受连接，一个连接处理完后才接受下一个。Serve返回时l已关闭
func (svc *Server) Serve(l net.Listener) error {
	if err := svc.track(l); err != nil {
		_ = l.Close()
		return err
	}
	defer svc.Close()

	log := svc.logger()
	var delay time.Duration
	for {
		log.Info().Str("addr", l.Addr().String()).Msg("the server is ready to receive")
		accept, err := l.Accept()
		if err != nil {
			if svc.isClosed() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			// 其他错误稍等后重试
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else if delay *= 2; delay > time.Second {
				delay = time.Second
			}
			log.Warn().Err(err).Dur("retry", delay).Msg("accept error")
			time.Sleep(delay)
			continue
		}
		delay = 0
		c := newConn(svc, accept)
		log.Debug().Str("remote", c.remoteAddr()).Msg("accepted")
		c.serve()
	}
}

// Close 关闭监听，正在处理的连接会继续处理完
func (svc *Server) Close() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.closed {
		return nil
	}
	svc.closed = true
	if svc.listener == nil {
		return nil
	}
	return svc.listener.Close()
}

func (svc *Server) track(l net.Listener) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.closed {
		return ErrServerClosed
	}
	if svc.listener != nil {
		return errors.New("httpd: Server already serving")
	}
	svc.listener = l
	return nil
}

func (svc *Server) isClosed() bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.closed
}

func (svc *Server) handler() Handler {
	if svc.Handler == nil {
		h := NewFileHandler(DefaultDocument)
		h.OnUnavailable = svc.LogUnavailable
		return h
	}
	return svc.Handler
}

// LogUnavailable 记录资源读取失败，可以作为FileHandler.OnUnavailable使用
func (svc *Server) LogUnavailable(r *Request, err error) {
	status := LoadIOError
	var re *ResourceError
	if errors.As(err, &re) {
		status = re.Status
	}
	svc.logger().Warn().
		Err(err).
		Str("remote", r.RemoteAddr).
		Stringer("status", status).
		Msg("resource unavailable, sending 404")
}

func (svc *Server) now() time.Time {
	if svc.Now == nil {
		return time.Now()
	}
	return svc.Now()
}

func (svc *Server) logger() *zerolog.Logger {
	if svc.Logger != nil {
		return svc.Logger
	}
	svc.initLog.Do(func() {
		svc.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	})
	return &svc.log
}
