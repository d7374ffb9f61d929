package console

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Common errors
var (
	// ErrClosed indicates the channel was closed and can no longer send
	ErrClosed = errors.New("console channel is closed")
	// ErrTokenExpired indicates the daemon rejected the session token; the caller must re-handshake
	ErrTokenExpired = errors.New("console session token expired")
	// ErrHandshakeFailed indicates the auth exchange did not complete
	ErrHandshakeFailed = errors.New("console handshake failed")
)

// State is the lifecycle state of a Channel.
type State int32

const (
	// StateDisconnected means no connection is open; a fresh handshake is required
	StateDisconnected State = iota
	// StateHandshaking means the connection is being established and authenticated
	StateHandshaking
	// StateConnected means frames may be sent and events are flowing
	StateConnected
	// StateClosed means the caller closed the channel; it is not reusable
	StateClosed
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateHandshaking:
		return "HANDSHAKING"
	case StateConnected:
		return "CONNECTED"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// PowerAction is a power signal sent over the channel.
type PowerAction string

const (
	// PowerStart starts the server
	PowerStart PowerAction = "start"
	// PowerStop gracefully stops the server
	PowerStop PowerAction = "stop"
	// PowerRestart restarts the server
	PowerRestart PowerAction = "restart"
	// PowerKill terminates the server process immediately
	PowerKill PowerAction = "kill"
)

// Credentials identify one console session: the daemon websocket endpoint
// and the short-lived token issued by the panel handshake call. Origin is
// sent as the Origin header; daemons reject cross-origin connections.
type Credentials struct {
	Endpoint string
	Token    string
	Origin   string
}

const (
	defaultEventBuffer      = 64
	defaultHandshakeTimeout = 10 * time.Second

	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Option configures a Channel.
type Option func(*channelOptions)

// channelOptions holds configuration options for the Channel.
type channelOptions struct {
	dialer           *websocket.Dialer
	eventBuffer      int
	handshakeTimeout time.Duration
}

// WithDialer uses a custom websocket dialer instead of the default.
func WithDialer(d *websocket.Dialer) Option {
	return func(o *channelOptions) {
		o.dialer = d
	}
}

// WithEventBuffer sets the inbound event channel capacity.
func WithEventBuffer(n int) Option {
	return func(o *channelOptions) {
		if n > 0 {
			o.eventBuffer = n
		}
	}
}

// WithHandshakeTimeout bounds the auth exchange after dialing.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(o *channelOptions) {
		o.handshakeTimeout = d
	}
}

// Channel is one persistent console connection. It owns two pump goroutines
// keeping the send and receive directions independently progressing; beyond
// those the library spawns nothing.
type Channel struct {
	conn   *websocket.Conn
	logger zerolog.Logger

	events   chan Event
	outbound chan outFrame
	done     chan struct{}

	state    atomic.Int32
	explicit atomic.Bool
	stopOnce sync.Once

	errMu sync.Mutex
	err   error
}

// Connect dials the daemon endpoint, authenticates with the session token
// and starts the read/write pumps. Cancelling ctx tears the channel down.
func Connect(ctx context.Context, creds Credentials, logger zerolog.Logger, opts ...Option) (*Channel, error) {
	if creds.Endpoint == "" || creds.Token == "" {
		return nil, fmt.Errorf("%w: endpoint and token are required", ErrHandshakeFailed)
	}

	o := &channelOptions{
		dialer:           websocket.DefaultDialer,
		eventBuffer:      defaultEventBuffer,
		handshakeTimeout: defaultHandshakeTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	c := &Channel{
		logger:   logger,
		events:   make(chan Event, o.eventBuffer),
		outbound: make(chan outFrame, 16),
		done:     make(chan struct{}),
	}
	c.state.Store(int32(StateHandshaking))

	header := http.Header{}
	if creds.Origin != "" {
		header.Set("Origin", creds.Origin)
	}

	conn, resp, err := o.dialer.DialContext(ctx, creds.Endpoint, header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		c.state.Store(int32(StateDisconnected))
		return nil, fmt.Errorf("failed to dial console endpoint: %w", err)
	}
	c.conn = conn

	if err := c.handshake(creds.Token, o.handshakeTimeout); err != nil {
		conn.Close()
		c.state.Store(int32(StateDisconnected))
		return nil, err
	}
	c.state.Store(int32(StateConnected))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.readPump(gctx) })
	g.Go(func() error { return c.writePump(gctx) })
	g.Go(func() error {
		// Unblocks the pumps when the context is cancelled or the caller
		// closes the channel; dropping the handle mid-session therefore
		// always releases the connection.
		select {
		case <-gctx.Done():
		case <-c.done:
		}
		return c.conn.Close()
	})

	go func() {
		err := g.Wait()
		c.setErr(err)
		c.stop()
		if c.explicit.Load() {
			c.state.Store(int32(StateClosed))
		} else {
			c.state.Store(int32(StateDisconnected))
		}
		close(c.events)
	}()

	return c, nil
}

// handshake sends the auth frame and waits for the daemon to acknowledge it.
func (c *Channel) handshake(token string, timeout time.Duration) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(outFrame{Event: eventAuth, Args: []string{token}}); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}

	c.conn.SetReadDeadline(time.Now().Add(timeout))
	defer c.conn.SetReadDeadline(time.Time{})

	for {
		var f inFrame
		if err := c.conn.ReadJSON(&f); err != nil {
			return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
		}
		switch f.Event {
		case eventAuthSuccess:
			return nil
		case eventTokenExpired, eventJWTError:
			return fmt.Errorf("%w: %s", ErrTokenExpired, firstArg(f))
		default:
			// Daemons may emit status frames before acknowledging auth.
			continue
		}
	}
}

// State returns the channel's current lifecycle state.
func (c *Channel) State() State {
	return State(c.state.Load())
}

// Events returns the inbound event stream. The channel is closed once the
// connection terminates for any reason; Err reports why.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// Err returns the terminal error after Events is closed. A clean close and
// a peer-initiated close both return nil.
func (c *Channel) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

// SendCommand queues a console command frame. It never blocks on prior
// frames' acknowledgement.
func (c *Channel) SendCommand(command string) error {
	return c.send(outFrame{Event: eventSendCommand, Args: []string{command}})
}

// SetPowerState queues a power action frame.
func (c *Channel) SetPowerState(action PowerAction) error {
	return c.send(outFrame{Event: eventSetState, Args: []string{string(action)}})
}

// RequestLogs asks the daemon to replay recent console output.
func (c *Channel) RequestLogs() error {
	return c.send(outFrame{Event: eventSendLogs})
}

// RequestStats asks the daemon for a resource-usage sample.
func (c *Channel) RequestStats() error {
	return c.send(outFrame{Event: eventSendStats})
}

// Reauthenticate submits a fresh session token in response to TokenExpiring.
func (c *Channel) Reauthenticate(token string) error {
	return c.send(outFrame{Event: eventAuth, Args: []string{token}})
}

// Close shuts the channel down, sending a close frame to the daemon. It is
// idempotent; the channel is not reusable afterwards.
func (c *Channel) Close() error {
	c.explicit.Store(true)
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	c.stop()
	return nil
}

func (c *Channel) stop() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}

func (c *Channel) setErr(err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	c.errMu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.errMu.Unlock()
}

func (c *Channel) send(f outFrame) error {
	if s := c.State(); s != StateConnected {
		return fmt.Errorf("%w: state %s", ErrClosed, s)
	}
	select {
	case c.outbound <- f:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

// readPump decodes inbound frames into typed events, delivering them in
// receive order. A token-expired frame terminates the pump. Stopping on
// exit covers clean peer closes, which cancel no context on their own.
func (c *Channel) readPump(ctx context.Context) error {
	defer c.stop()
	for {
		var f inFrame
		if err := c.conn.ReadJSON(&f); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			select {
			case <-c.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return fmt.Errorf("console read failed: %w", err)
		}

		if f.Event == eventTokenExpired {
			return ErrTokenExpired
		}

		ev, err := decodeEvent(f)
		if err != nil {
			c.logger.Debug().Err(err).Str("event", f.Event).Msg("Dropping malformed console frame")
			continue
		}
		if ev == nil {
			c.logger.Debug().Str("event", f.Event).Msg("Ignoring unknown console frame")
			continue
		}

		select {
		case c.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return nil
		}
	}
}

// writePump serializes outbound frames and keeps the connection alive with
// periodic pings.
func (c *Channel) writePump(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case f := <-c.outbound:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(f); err != nil {
				return fmt.Errorf("console write failed: %w", err)
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return fmt.Errorf("console ping failed: %w", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return nil
		}
	}
}
