package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/retain"
	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/dom/remote"
	"github.com/vango-dev/retain/pkg/protocol"
	"github.com/vango-dev/retain/pkg/scheduler"
	"github.com/vango-dev/retain/pkg/telemetry"
)

// Session is one live connection and the component tree it drives.
type Session struct {
	ID      string
	Created time.Time

	conn     *websocket.Conn
	config   *Config
	root     component.Prefab
	loop     *scheduler.Loop
	doc      *remote.Document
	app      *retain.App
	observer *telemetry.Observer
	metrics  *telemetry.Metrics
	tracer   *telemetry.Tracer
	logger   *slog.Logger

	ctx        context.Context
	cancel     context.CancelFunc
	loopExited chan struct{}
	writeMu    sync.Mutex
	closeOnce  sync.Once

	events  atomic.Uint64
	flushed atomic.Uint64
}

func newSession(srv *Server, conn *websocket.Conn) *Session {
	id := newSessionID()
	logger := srv.logger.With("session_id", id)
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		ID:         id,
		Created:    time.Now(),
		conn:       conn,
		config:     &srv.config,
		root:       srv.root(),
		loop:       scheduler.NewLoop(logger),
		doc:        remote.New("body", remote.WithLogger(logger.With("component", "remote"))),
		metrics:    srv.metrics,
		tracer:     srv.tracer,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		loopExited: make(chan struct{}),
	}

	cfg := retain.Config{
		MaxFollowUpPasses: srv.config.MaxFollowUpPasses,
		Logger:            logger,
	}
	if s.metrics != nil || s.tracer != nil {
		s.observer = telemetry.NewObserver(ctx, s.metrics, s.tracer)
		cfg.Observer = s.observer
	}
	s.app = retain.New(s.doc, s.loop, cfg)
	s.app.OnCommit(s.flush)
	return s
}

// App returns the session's App. It may only be used from functions
// scheduled on the session loop.
func (s *Session) App() *retain.App { return s.app }

// Do runs fn on the session loop and waits for it.
func (s *Session) Do(ctx context.Context, fn func()) error {
	return s.loop.Do(ctx, fn)
}

// run drives the session until the connection ends.
func (s *Session) run() {
	defer func() {
		s.Close()
		<-s.loopExited
		if s.observer != nil {
			s.observer.Close()
		}
		if s.metrics != nil {
			s.metrics.SessionClosed()
		}
		s.logger.Info("session closed",
			"events", s.events.Load(),
			"passes", s.app.Passes(),
			"duration", time.Since(s.Created))
	}()

	if s.metrics != nil {
		s.metrics.SessionOpened()
	}
	go func() {
		defer close(s.loopExited)
		s.loop.Run(s.ctx)
	}()

	hello := &protocol.Handshake{Version: protocol.Version, Session: s.ID, Root: uint64(s.doc.Root())}
	if err := s.write(protocol.NewFrame(protocol.FrameHandshake, protocol.EncodeHandshake(hello))); err != nil {
		s.fail("write", err)
		return
	}
	s.logger.Info("session opened")

	s.loop.Schedule(func() { s.app.Mount(s.doc.Root(), s.root) })
	go s.pingLoop()
	s.readLoop()
}

// dispatch hands a client event to the session loop.
func (s *Session) dispatch(ev *protocol.Event) {
	s.events.Add(1)
	s.loop.Schedule(func() {
		fire := func() int {
			n := s.doc.HandleEvent(ev)
			if n > 0 && s.metrics != nil {
				s.metrics.EventReceived(ev.Name)
			}
			return n
		}
		if s.tracer == nil {
			fire()
			return
		}
		_, span := s.tracer.StartEvent(s.ctx, s.ID, ev.Name, uint64(ev.Target))
		telemetry.EndEvent(span, fire(), nil)
	})
}

// flush runs after every pass, on the loop goroutine.
func (s *Session) flush() {
	n, err := s.doc.Flush(s.write)
	if err != nil {
		s.fail("write", err)
		s.Close()
		return
	}
	s.flushed.Add(uint64(n))
}

// Close ends the session. Safe to call more than once and from any
// goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.loop.Close()
		s.conn.Close()
	})
}

// Done is closed once the session has been closed.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Stats is a snapshot of session counters.
type Stats struct {
	ID      string
	Created time.Time
	Events  uint64
	Ops     uint64 // mutations sent to the client
	Seq     uint64 // last patches sequence number
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	return Stats{
		ID:      s.ID,
		Created: s.Created,
		Events:  s.events.Load(),
		Ops:     s.flushed.Load(),
		Seq:     s.doc.Seq(),
	}
}

func (s *Session) fail(kind string, err error) {
	if s.ctx.Err() != nil {
		return
	}
	s.logger.Warn("websocket failure", "kind", kind, "error", errors.New("E160").Wrap(err))
	if s.metrics != nil {
		s.metrics.WebSocketError(kind)
	}
}
