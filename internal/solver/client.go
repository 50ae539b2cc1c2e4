package solver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru/v2"

	"sketchcad/pkg/sketch"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingEvery  = (pongWait * 9) / 10
	sendBuffer = 32
	cacheSize  = 256
)

// SolvedFunc receives a solved snapshot and its report. Called from the
// client's read goroutine; only the latest call is authoritative.
type SolvedFunc func(s *sketch.Sketch, report Report)

type request struct {
	Fingerprint string         `json:"fingerprint"`
	Sketch      *sketch.Sketch `json:"sketch"`
}

type response struct {
	Fingerprint string         `json:"fingerprint"`
	Sketch      *sketch.Sketch `json:"sketch"`
	Report      Report         `json:"report"`
}

type solved struct {
	sketch *sketch.Sketch
	report Report
}

// Client is a websocket connection to the external solver. Requests are
// fire-and-forget; responses arrive asynchronously through the SolvedFunc.
// Re-solving an unchanged snapshot is served from an LRU cache without a
// round trip.
type Client struct {
	conn     *websocket.Conn
	onSolved SolvedFunc
	cache    *lru.Cache[string, solved]
	logger   *slog.Logger

	sendCh    chan request
	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to the solver endpoint and starts the read and write
// loops
func Dial(ctx context.Context, url string, onSolved SolvedFunc) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial solver at %s: %w", url, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	cache, err := lru.New[string, solved](cacheSize)
	if err != nil {
		conn.Close()
		return nil, err
	}

	c := &Client{
		conn:     conn,
		onSolved: onSolved,
		cache:    cache,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sendCh:   make(chan request, sendBuffer),
		done:     make(chan struct{}),
	}

	go c.writeLoop()
	go c.readLoop()
	return c, nil
}

// SetLogger enables transport logging. Pass nil to silence.
func (c *Client) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.logger = l
}

// Request dispatches a sketch snapshot. A snapshot identical to a
// previously solved one is answered from cache. When the send buffer is
// full the request is dropped: only the latest snapshot matters.
func (c *Client) Request(s *sketch.Sketch) error {
	fp, err := Fingerprint(s)
	if err != nil {
		return err
	}

	if hit, ok := c.cache.Get(fp); ok {
		c.onSolved(hit.sketch.Clone(), hit.report)
		return nil
	}

	select {
	case <-c.done:
		return fmt.Errorf("solver connection closed")
	default:
	}

	select {
	case c.sendCh <- request{Fingerprint: fp, Sketch: s}:
		return nil
	default:
		c.logger.Warn("solver send buffer full, dropping snapshot")
		return nil
	}
}

// Close shuts the connection down
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return c.conn.Close()
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case req := <-c.sendCh:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Warn("solver write deadline failed", "error", err)
				return
			}
			if err := c.conn.WriteJSON(req); err != nil {
				c.logger.Warn("solver write failed", "error", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readLoop() {
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var resp response
		if err := c.conn.ReadJSON(&resp); err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Warn("solver read failed", "error", err)
			}
			return
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return
		}
		if resp.Sketch == nil {
			continue
		}

		if resp.Fingerprint != "" {
			c.cache.Add(resp.Fingerprint, solved{sketch: resp.Sketch.Clone(), report: resp.Report})
		}
		c.onSolved(resp.Sketch, resp.Report)
	}
}

// Fingerprint returns the content hash of a sketch snapshot, used as the
// solve-cache key. The operation history does not affect the hash: two
// sketches with identical geometry and constraints solve identically.
func Fingerprint(s *sketch.Sketch) (string, error) {
	trimmed := s.Clone()
	trimmed.History = nil
	data, err := json.Marshal(trimmed)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint sketch: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
