// Package reactor is a single-threaded, edge-triggered, one-shot epoll
// event loop driving the connection pipeline (parse, dispatch, respond)
// and the idle-connection timer queue.
package reactor

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/hfyeh/sehttpd/internal/logging"
	"github.com/hfyeh/sehttpd/pkg/sehttpd/respond"
	"github.com/hfyeh/sehttpd/pkg/sehttpd/timer"
)

const maxEvents = 256

// Reactor owns the epoll instance, the listening socket, the live
// connection set, and the idle timer queue. It is not safe for concurrent
// use — everything runs on the goroutine that calls Run, by design.
type Reactor struct {
	epfd     int
	listenFd int
	webRoot  string
	conns    map[int]*conn
	timers   *timer.Queue
}

// New creates a listening socket bound to port and an epoll instance
// registered to watch it, edge-triggered.
func New(port int, webRoot string) (*Reactor, error) {
	listenFd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("reactor: socket: %w", err)
	}
	if err := unix.SetsockoptInt(listenFd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(listenFd)
		return nil, fmt.Errorf("reactor: setsockopt: %w", err)
	}

	addr := unix.SockaddrInet4{Port: port}
	if err := unix.Bind(listenFd, &addr); err != nil {
		unix.Close(listenFd)
		return nil, fmt.Errorf("reactor: bind: %w", err)
	}
	if err := unix.Listen(listenFd, unix.SOMAXCONN); err != nil {
		unix.Close(listenFd)
		return nil, fmt.Errorf("reactor: listen: %w", err)
	}

	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		unix.Close(listenFd)
		return nil, fmt.Errorf("reactor: epoll_create1: %w", err)
	}

	r := &Reactor{
		epfd:     epfd,
		listenFd: listenFd,
		webRoot:  webRoot,
		conns:    make(map[int]*conn),
		timers:   timer.New(),
	}

	ev := unix.EpollEvent{Events: unix.EPOLLIN | unix.EPOLLET, Fd: int32(listenFd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, listenFd, &ev); err != nil {
		unix.Close(listenFd)
		unix.Close(epfd)
		return nil, fmt.Errorf("reactor: epoll_ctl listen: %w", err)
	}

	return r, nil
}

// Addr returns the port the listening socket is actually bound to, useful
// when New was called with port 0 to let the kernel pick one (tests).
func (r *Reactor) Addr() (int, error) {
	sa, err := unix.Getsockname(r.listenFd)
	if err != nil {
		return 0, err
	}
	in4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return 0, fmt.Errorf("reactor: unexpected sockaddr type %T", sa)
	}
	return in4.Port, nil
}

// Run blocks forever servicing readiness events. It only returns on a
// fatal, process-aborting error, which logging.Fatal handles by
// terminating the process directly — Run has no ordinary return path.
func (r *Reactor) Run() {
	events := make([]unix.EpollEvent, maxEvents)

	for {
		timeoutMs := -1
		if d, ok := r.timers.NextDeadline(); ok {
			timeoutMs = int(d / time.Millisecond)
		}

		n, err := unix.EpollWait(r.epfd, events, timeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			logging.Fatal(fmt.Errorf("reactor: epoll_wait: %w", err))
		}

		r.timers.ExpireDue(time.Now())

		for i := 0; i < n; i++ {
			ev := events[i]
			fd := int(ev.Fd)

			if fd == r.listenFd {
				r.acceptAll()
				continue
			}

			c, ok := r.conns[fd]
			if !ok {
				continue
			}

			if ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
				r.closeConn(c)
				continue
			}
			if ev.Events&unix.EPOLLIN == 0 {
				r.closeConn(c)
				continue
			}

			if c.HandleReadable(r.timers) {
				r.rearm(c)
			} else {
				r.closeConn(c)
			}
		}
	}
}

// acceptAll drains the accept queue to EAGAIN, per the edge-triggered
// discipline: missing one accept here would leak a readiness event until
// the next new connection arrives.
func (r *Reactor) acceptAll() {
	for {
		fd, _, err := unix.Accept4(r.listenFd, unix.SOCK_NONBLOCK)
		if err != nil {
			if err == unix.EAGAIN {
				return
			}
			return
		}

		logging.Accept(fd)
		c := newConn(r, fd, r.webRoot)
		r.conns[fd] = c

		ev := unix.EpollEvent{Events: unix.EPOLLIN | unix.EPOLLET | unix.EPOLLONESHOT, Fd: int32(fd)}
		if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
			r.closeConn(c)
			continue
		}

		c.timerRef = r.timers.Add(c, respond.TimeoutDefault, onIdleTimeout)
		c.hasTimer = true
	}
}

// rearm re-enables one-shot readiness for a connection that has more life
// left: a request completed with keep-alive, or the socket just ran dry
// (EAGAIN) mid-pipeline.
func (r *Reactor) rearm(c *conn) {
	ev := unix.EpollEvent{Events: unix.EPOLLIN | unix.EPOLLET | unix.EPOLLONESHOT, Fd: int32(c.fd)}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_MOD, c.fd, &ev); err != nil {
		r.closeConn(c)
	}
}

// closeConn is the single place a connection dies: cancel any armed idle
// timer, drop it from the reactor's registration set, and close its fd
// exactly once.
func (r *Reactor) closeConn(c *conn) {
	if c.hasTimer {
		r.timers.Cancel(c.timerRef)
		c.hasTimer = false
	}
	delete(r.conns, c.fd)
	unix.Close(c.fd)
	c.release()
}
