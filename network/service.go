package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/blob-arena/core"
	"github.com/lixenwraith/blob-arena/entity"
	"github.com/lixenwraith/blob-arena/wire"
)

// Sentinel errors
var (
	ErrNotConnected     = errors.New("not connected")
	ErrQueueFull        = errors.New("send queue full")
	ErrServerDisconnect = errors.New("server closed the session")
)

// ConnState represents connection lifecycle state
type ConnState uint8

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateDisconnecting
)

// Client is the backend link run as a hub-managed service
// Transport goroutines never touch game state: decoded transactions are handed over via Batches
type Client struct {
	config *Config
	dial   func(context.Context, *Config) (Link, error)

	session  uuid.UUID
	identity entity.Identity

	link     Link
	state    atomic.Uint32 // ConnState
	lastSeen atomic.Int64  // UnixNano

	// Sequence tracking
	outSeq atomic.Uint32
	inSeq  atomic.Uint32

	sendCh  chan *Message
	batches chan wire.Batch

	// Lifecycle
	closeCh    chan struct{}
	closeOnce  sync.Once
	writerDone chan struct{}
	stopOnce   sync.Once
	graceful   atomic.Bool
	wg         sync.WaitGroup

	errMu sync.Mutex
	err   error

	dropped atomic.Uint64
}

// NewClient creates a client with a fresh session id and default config
func NewClient() *Client {
	return &Client{
		config:  DefaultConfig(),
		dial:    Dial,
		session: uuid.New(),
	}
}

// Name implements service.Service
func (c *Client) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (c *Client) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
func (c *Client) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			c.config = cfg
		}
	}
	return nil
}

// Start implements service.Service: connects and completes the handshake
func (c *Client) Start() error {
	return c.Connect(context.Background())
}

// Connect dials, sends hello and waits for the welcome carrying the local identity
func (c *Client) Connect(ctx context.Context) error {
	if !c.state.CompareAndSwap(uint32(StateDisconnected), uint32(StateConnecting)) {
		return nil // Already connected or connecting
	}

	link, err := c.dial(ctx, c.config)
	if err != nil {
		c.state.Store(uint32(StateDisconnected))
		return err
	}

	hctx, cancel := context.WithTimeout(ctx, c.config.ConnectTimeout)
	defer cancel()
	// Closing the link unblocks a handshake read past the deadline
	stop := context.AfterFunc(hctx, func() { link.Close() })

	welcome, err := c.handshake(link)
	if !stop() {
		if err == nil {
			err = hctx.Err()
		} else {
			err = fmt.Errorf("%w (%w)", hctx.Err(), err)
		}
	}
	if err != nil {
		link.Close()
		c.state.Store(uint32(StateDisconnected))
		return fmt.Errorf("handshake with %s: %w", link.RemoteAddr(), err)
	}

	c.identity = welcome.Identity
	c.link = link
	c.sendCh = make(chan *Message, c.config.SendQueueSize)
	c.batches = make(chan wire.Batch, c.config.RecvQueueSize)
	c.closeCh = make(chan struct{})
	c.writerDone = make(chan struct{})
	c.lastSeen.Store(time.Now().UnixNano())
	c.state.Store(uint32(StateConnected))

	log.Printf("network: connected to %s as %s (session %s)", link.RemoteAddr(), c.identity.Short(), c.session)

	c.wg.Add(2)
	core.Go(func() {
		defer c.wg.Done()
		c.readLoop()
	})
	core.Go(func() {
		defer c.wg.Done()
		defer close(c.writerDone)
		c.writeLoop()
	})
	if c.config.HeartbeatInterval > 0 {
		c.wg.Add(1)
		core.Go(func() {
			defer c.wg.Done()
			c.heartbeatLoop()
		})
	}
	return nil
}

func (c *Client) handshake(link Link) (wire.Welcome, error) {
	var welcome wire.Welcome

	payload, err := wire.Marshal(wire.Hello{SessionID: c.session, Token: c.config.Token})
	if err != nil {
		return welcome, err
	}
	hello := NewMessage(MsgHello, payload)
	hello.Seq = c.outSeq.Add(1)
	if err := link.WriteMessage(hello, time.Now().Add(c.config.WriteTimeout)); err != nil {
		return welcome, err
	}

	for {
		msg, err := link.ReadMessage()
		if err != nil {
			return welcome, err
		}
		c.trackInbound(msg)

		switch msg.Type {
		case MsgWelcome:
			if err := wire.Unmarshal(msg.Payload, &welcome); err != nil {
				return welcome, err
			}
			if welcome.Identity == "" {
				return welcome, errors.New("welcome without identity")
			}
			return welcome, nil
		case MsgDisconnect:
			return welcome, ErrServerDisconnect
		}
	}
}

func (c *Client) trackInbound(msg *Message) {
	if msg.Seq > c.inSeq.Load() {
		c.inSeq.Store(msg.Seq)
	}
}

// readLoop decodes inbound messages until the link fails or the client stops
func (c *Client) readLoop() {
	defer close(c.batches)
	defer c.shutdown()

	for {
		msg, err := c.link.ReadMessage()
		if err != nil {
			if !c.graceful.Load() {
				c.setErr(err)
			}
			return
		}

		c.lastSeen.Store(time.Now().UnixNano())
		c.trackInbound(msg)

		switch msg.Type {
		case MsgTransaction:
			var b wire.Batch
			if err := wire.Unmarshal(msg.Payload, &b); err != nil {
				log.Printf("network: dropping session: %v", err)
				c.setErr(err)
				return
			}
			select {
			case c.batches <- b:
			case <-c.closeCh:
				return
			}

		case MsgDisconnect:
			c.setErr(ErrServerDisconnect)
			return

		case MsgHeartbeat, MsgWelcome:

		default:
			log.Printf("network: ignoring message type 0x%02x", uint8(msg.Type))
		}
	}
}

// writeLoop sends queued messages; a graceful stop ends with a disconnect message
func (c *Client) writeLoop() {
	for {
		select {
		case <-c.closeCh:
			if c.graceful.Load() {
				bye := NewMessage(MsgDisconnect, nil)
				bye.Seq = c.outSeq.Add(1)
				bye.Ack = c.inSeq.Load()
				if err := c.link.WriteMessage(bye, time.Now().Add(c.config.WriteTimeout)); err != nil {
					log.Printf("network: disconnect not delivered: %v", err)
				}
			}
			return
		case msg := <-c.sendCh:
			if err := c.link.WriteMessage(msg, time.Now().Add(c.config.WriteTimeout)); err != nil {
				c.setErr(err)
				c.shutdown()
				return
			}
		}
	}
}

func (c *Client) heartbeatLoop() {
	ticker := time.NewTicker(c.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.closeCh:
			return
		case <-ticker.C:
			c.Send(NewMessage(MsgHeartbeat, nil))
		}
	}
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		c.state.Store(uint32(StateDisconnecting))
		close(c.closeCh)
	})
}

func (c *Client) setErr(err error) {
	c.errMu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.errMu.Unlock()
}

// Stop implements service.Service
// Sends a disconnect, closes the link and waits for the I/O goroutines
func (c *Client) Stop() error {
	if c.link == nil {
		return nil
	}

	var err error
	c.stopOnce.Do(func() {
		c.graceful.Store(true)
		c.shutdown()
		<-c.writerDone

		var errs []error
		if cerr := c.link.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("close link: %w", cerr))
		}
		c.wg.Wait()
		c.state.Store(uint32(StateDisconnected))

		if n := c.dropped.Load(); n > 0 {
			log.Printf("network: %d position reports dropped", n)
		}
		err = errors.Join(errs...)
	})
	return err
}

// Send queues a message for transmission
// Returns ErrNotConnected when the session is not established, ErrQueueFull when the queue is full
func (c *Client) Send(msg *Message) error {
	if c.State() != StateConnected {
		return ErrNotConnected
	}

	msg.Seq = c.outSeq.Add(1)
	msg.Ack = c.inSeq.Load()

	select {
	case c.sendCh <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// ReportPosition implements backend.PositionReporter
// Fire-and-forget: reports that cannot be queued are dropped
func (c *Client) ReportPosition(pos entity.Position) {
	payload, err := wire.Marshal(wire.PositionReport{Position: pos})
	if err == nil {
		err = c.Send(NewMessage(MsgReportPosition, payload))
	}
	if err != nil {
		c.dropped.Add(1)
	}
}

// Batches delivers decoded transactions in arrival order
// Closed when the connection ends
func (c *Client) Batches() <-chan wire.Batch {
	return c.batches
}

// Identity returns the local identity assigned by the welcome message
func (c *Client) Identity() entity.Identity {
	return c.identity
}

// SessionID returns the id sent in the hello message
func (c *Client) SessionID() uuid.UUID {
	return c.session
}

// State returns the connection lifecycle state
func (c *Client) State() ConnState {
	return ConnState(c.state.Load())
}

// Err returns why the connection ended, nil for a clean stop
func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

// Dropped returns the number of position reports that could not be queued
func (c *Client) Dropped() uint64 {
	return c.dropped.Load()
}

// LastSeen returns when the last inbound message arrived
func (c *Client) LastSeen() time.Time {
	return time.Unix(0, c.lastSeen.Load())
}
