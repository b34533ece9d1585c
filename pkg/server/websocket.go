package server

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/retain/internal/errors"
	"github.com/vango-dev/retain/pkg/protocol"
)

func (s *Session) readDeadline() time.Time {
	return time.Now().Add(2 * s.config.PingInterval)
}

// readLoop decodes frames until the connection fails or closes.
func (s *Session) readLoop() {
	s.conn.SetReadLimit(s.config.MaxMessageSize)
	s.conn.SetReadDeadline(s.readDeadline())
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(s.readDeadline())
	})

	for {
		mt, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.fail("read", err)
			}
			return
		}
		s.conn.SetReadDeadline(s.readDeadline())

		if mt != websocket.BinaryMessage {
			s.reject(fmt.Errorf("unexpected message type %d", mt))
			continue
		}
		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.reject(err)
			continue
		}
		if frame.Type != protocol.FrameEvent {
			s.reject(fmt.Errorf("unexpected %s frame", frame.Type))
			continue
		}
		ev, err := protocol.DecodeEvent(frame.Payload)
		if err != nil {
			s.reject(err)
			continue
		}
		s.dispatch(ev)
	}
}

// reject reports an undecodable message to the client. The connection
// stays open.
func (s *Session) reject(cause error) {
	err := errors.New("E101").Wrap(cause)
	s.logger.Warn("frame rejected", "error", err)
	if s.metrics != nil {
		s.metrics.WebSocketError("decode")
	}
	msg := &protocol.ErrorMessage{Code: err.Code, Message: err.Error()}
	if werr := s.write(protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(msg))); werr != nil {
		s.fail("write", werr)
	}
}

// write sends one frame. Frames from the loop goroutine and the read loop
// are serialised here.
func (s *Session) write(f *protocol.Frame) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (s *Session) pingLoop() {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
			s.writeMu.Unlock()
			if err != nil {
				s.fail("ping", err)
				s.Close()
				return
			}
		}
	}
}
