package watch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler receives one batch of movie file paths after a library scan.
type Handler func(ctx context.Context, paths []string) error

// socket is the slice of a websocket connection the listener uses.
type socket interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Listener follows one Kodi JSON-RPC websocket and feeds finished scans to a
// handler.
type Listener struct {
	address string
	handler Handler
	logger  *slog.Logger
}

// New builds a Listener for the given websocket address, typically
// ws://host:9090/jsonrpc.
func New(address string, handler Handler, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{address: address, handler: handler, logger: logger}
}

// Run connects and processes notifications until the context is cancelled or
// the connection drops.
func (l *Listener) Run(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.address, nil)
	if err != nil {
		return fmt.Errorf("connect to kodi at %s: %w", l.address, err)
	}
	l.logger.Info("listening for library updates", slog.String("address", l.address))

	// Cancellation unblocks the blocking read by closing the socket.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	defer conn.Close()

	return l.run(ctx, conn)
}

func (l *Listener) run(ctx context.Context, conn socket) error {
	var pending collector
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read notification: %w", err)
		}
		env, err := decodeEnvelope(payload)
		if err != nil {
			l.logger.Warn("undecodable message", "error", err)
			continue
		}

		switch env.Method {
		case methodOnUpdate:
			if id, ok := movieAdded(env.Params); ok {
				if pending.add(id) {
					l.logger.Debug("movie added", slog.Int64("movie_id", id))
				}
			}
		case methodOnScanFinished:
			ids := pending.drain()
			if len(ids) == 0 {
				continue
			}
			batch := uuid.NewString()
			logger := l.logger.With(slog.String("batch_id", batch))
			logger.Info("library scan finished", slog.Int("movies", len(ids)))

			paths, err := l.resolvePaths(ctx, conn, ids, &pending)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				continue
			}
			if err := l.handler(ctx, paths); err != nil {
				return fmt.Errorf("process batch %s: %w", batch, err)
			}
		}
	}
}

// resolvePaths asks Kodi for each movie's file path. Movie additions
// announced while waiting for responses land in pending for the next batch.
func (l *Listener) resolvePaths(ctx context.Context, conn socket, ids []int64, pending *collector) ([]string, error) {
	paths := make([]string, 0, len(ids))
	for _, id := range ids {
		request, err := detailsRequest(id)
		if err != nil {
			return nil, err
		}
		if err := conn.WriteMessage(websocket.TextMessage, request); err != nil {
			return nil, fmt.Errorf("request movie details: %w", err)
		}

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				return nil, fmt.Errorf("read details response: %w", err)
			}
			env, err := decodeEnvelope(payload)
			if err != nil {
				l.logger.Warn("undecodable message", "error", err)
				continue
			}
			if env.Method == methodOnUpdate {
				if added, ok := movieAdded(env.Params); ok {
					pending.add(added)
				}
				continue
			}
			if path, ok := movieFile(env); ok {
				paths = append(paths, path)
				break
			}
			if len(env.ID) != 0 {
				// Response without a usable path, likely a removed movie.
				l.logger.Warn("no file path for movie", slog.Int64("movie_id", id))
				break
			}
		}
	}
	return paths, nil
}

// collector accumulates movie ids in announcement order, dropping repeats.
type collector struct {
	order []int64
	seen  map[int64]struct{}
}

func (c *collector) add(id int64) bool {
	if c.seen == nil {
		c.seen = make(map[int64]struct{})
	}
	if _, dup := c.seen[id]; dup {
		return false
	}
	c.seen[id] = struct{}{}
	c.order = append(c.order, id)
	return true
}

func (c *collector) drain() []int64 {
	ids := c.order
	c.order = nil
	c.seen = nil
	return ids
}
