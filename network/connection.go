package network

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

// Link is one established connection carrying framed messages
// ReadMessage and WriteMessage may be called concurrently with each other, not with themselves
type Link interface {
	ReadMessage() (*Message, error)
	WriteMessage(msg *Message, deadline time.Time) error
	Close() error
	RemoteAddr() string
}

// streamLink frames messages over a byte stream (TCP, TLS, pipes)
type streamLink struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
}

// NewStreamLink wraps an established stream connection
func NewStreamLink(conn net.Conn, bufSize int) Link {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	return &streamLink{
		conn:   conn,
		reader: bufio.NewReaderSize(conn, bufSize),
		writer: bufio.NewWriterSize(conn, bufSize),
	}
}

func (l *streamLink) ReadMessage() (*Message, error) {
	return Decode(l.reader)
}

func (l *streamLink) WriteMessage(msg *Message, deadline time.Time) error {
	if err := l.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	if err := msg.Encode(l.writer); err != nil {
		return err
	}
	return l.writer.Flush()
}

func (l *streamLink) Close() error {
	return l.conn.Close()
}

func (l *streamLink) RemoteAddr() string {
	return l.conn.RemoteAddr().String()
}

// wsLink carries one frame per binary websocket message
type wsLink struct {
	conn *websocket.Conn
}

// NewWebSocketLink wraps an established websocket connection
func NewWebSocketLink(conn *websocket.Conn) Link {
	return &wsLink{conn: conn}
}

func (l *wsLink) ReadMessage() (*Message, error) {
	for {
		kind, data, err := l.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		r := bytes.NewReader(data)
		msg, err := Decode(r)
		if err != nil {
			return nil, fmt.Errorf("websocket frame: %w", err)
		}
		if r.Len() != 0 {
			return nil, fmt.Errorf("websocket frame: %d trailing bytes", r.Len())
		}
		return msg, nil
	}
}

func (l *wsLink) WriteMessage(msg *Message, deadline time.Time) error {
	var buf bytes.Buffer
	if err := msg.Encode(&buf); err != nil {
		return err
	}
	if err := l.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return l.conn.WriteMessage(websocket.BinaryMessage, buf.Bytes())
}

func (l *wsLink) Close() error {
	return l.conn.Close()
}

func (l *wsLink) RemoteAddr() string {
	return l.conn.RemoteAddr().String()
}
