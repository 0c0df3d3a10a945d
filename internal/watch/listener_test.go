package watch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestMovieAdded(t *testing.T) {
	cases := []struct {
		name   string
		params string
		wantID int64
		wantOK bool
	}{
		{
			name:   "added movie",
			params: `{"data":{"added":true,"item":{"id":42,"type":"movie"}}}`,
			wantID: 42,
			wantOK: true,
		},
		{
			name:   "no added flag",
			params: `{"data":{"item":{"id":7,"type":"movie"}}}`,
			wantOK: false,
		},
		{
			name:   "playcount update",
			params: `{"data":{"added":false,"item":{"id":42,"type":"movie"}}}`,
			wantOK: false,
		},
		{
			name:   "episode",
			params: `{"data":{"added":true,"item":{"id":9,"type":"episode"}}}`,
			wantOK: false,
		},
		{
			name:   "garbage",
			params: `"nope"`,
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := movieAdded(json.RawMessage(tc.params))
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && id != tc.wantID {
				t.Fatalf("id = %d, want %d", id, tc.wantID)
			}
		})
	}
}

func TestDetailsRequestShape(t *testing.T) {
	payload, err := detailsRequest(42)
	if err != nil {
		t.Fatalf("detailsRequest: %v", err)
	}
	var request struct {
		JSONRPC string `json:"jsonrpc"`
		ID      string `json:"id"`
		Method  string `json:"method"`
		Params  struct {
			MovieID    int64    `json:"movieid"`
			Properties []string `json:"properties"`
		} `json:"params"`
	}
	if err := json.Unmarshal(payload, &request); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	if request.JSONRPC != "2.0" || request.ID != detailsRequestID {
		t.Fatalf("unexpected request header: %+v", request)
	}
	if request.Method != "VideoLibrary.GetMovieDetails" || request.Params.MovieID != 42 {
		t.Fatalf("unexpected request body: %+v", request)
	}
	if len(request.Params.Properties) != 1 || request.Params.Properties[0] != "file" {
		t.Fatalf("unexpected properties: %v", request.Params.Properties)
	}
}

func TestMovieFileMatchesOnlyOurRequestID(t *testing.T) {
	env, err := decodeEnvelope([]byte(`{"id":"kodisubs-getmoviedetails","result":{"moviedetails":{"file":"/movies/a.mkv"}}}`))
	if err != nil {
		t.Fatalf("decodeEnvelope: %v", err)
	}
	path, ok := movieFile(env)
	if !ok || path != "/movies/a.mkv" {
		t.Fatalf("path = %q ok = %v", path, ok)
	}

	env, err = decodeEnvelope([]byte(`{"id":"other","result":{"moviedetails":{"file":"/movies/a.mkv"}}}`))
	if err != nil {
		t.Fatalf("decodeEnvelope: %v", err)
	}
	if _, ok := movieFile(env); ok {
		t.Fatal("expected foreign response to be ignored")
	}
}

func TestCollectorDropsRepeats(t *testing.T) {
	var c collector
	if !c.add(1) || !c.add(2) || c.add(1) {
		t.Fatal("unexpected add results")
	}
	ids := c.drain()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected ids: %v", ids)
	}
	if got := c.drain(); len(got) != 0 {
		t.Fatalf("drain not empty after reset: %v", got)
	}
}

// fakeSocket feeds a scripted sequence of incoming frames and records what
// was written. A read after the script ends fails like a closed connection.
type fakeSocket struct {
	incoming []string
	written  []string
}

func (f *fakeSocket) ReadMessage() (int, []byte, error) {
	if len(f.incoming) == 0 {
		return 0, nil, errors.New("connection closed")
	}
	frame := f.incoming[0]
	f.incoming = f.incoming[1:]
	return 1, []byte(frame), nil
}

func (f *fakeSocket) WriteMessage(messageType int, data []byte) error {
	f.written = append(f.written, string(data))
	return nil
}

func (f *fakeSocket) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunDeliversBatchAfterScanFinished(t *testing.T) {
	sock := &fakeSocket{incoming: []string{
		`{"method":"VideoLibrary.OnUpdate","params":{"data":{"added":true,"item":{"id":1,"type":"movie"}}}}`,
		`{"method":"VideoLibrary.OnUpdate","params":{"data":{"added":true,"item":{"id":2,"type":"movie"}}}}`,
		`{"method":"VideoLibrary.OnScanFinished","params":{}}`,
		`{"id":"kodisubs-getmoviedetails","result":{"moviedetails":{"file":"/movies/a.mkv"}}}`,
		`{"id":"kodisubs-getmoviedetails","result":{"moviedetails":{"file":"/movies/b.mkv"}}}`,
	}}

	var batches [][]string
	listener := New("ws://example/jsonrpc", func(ctx context.Context, paths []string) error {
		batches = append(batches, paths)
		return nil
	}, discardLogger())

	err := listener.run(context.Background(), sock)
	if err == nil || !strings.Contains(err.Error(), "connection closed") {
		t.Fatalf("expected closed-connection error, got %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("expected one batch, got %d", len(batches))
	}
	if len(batches[0]) != 2 || batches[0][0] != "/movies/a.mkv" || batches[0][1] != "/movies/b.mkv" {
		t.Fatalf("unexpected batch: %v", batches[0])
	}
	if len(sock.written) != 2 {
		t.Fatalf("expected two detail requests, got %d", len(sock.written))
	}
}

func TestRunIgnoresScanFinishedWithoutAdditions(t *testing.T) {
	sock := &fakeSocket{incoming: []string{
		`{"method":"VideoLibrary.OnScanFinished","params":{}}`,
	}}

	called := false
	listener := New("ws://example/jsonrpc", func(ctx context.Context, paths []string) error {
		called = true
		return nil
	}, discardLogger())

	if err := listener.run(context.Background(), sock); err == nil {
		t.Fatal("expected error when connection ends")
	}
	if called {
		t.Fatal("handler called for empty batch")
	}
	if len(sock.written) != 0 {
		t.Fatalf("unexpected writes: %v", sock.written)
	}
}

func TestRunCollectsAdditionsDuringResolve(t *testing.T) {
	sock := &fakeSocket{incoming: []string{
		`{"method":"VideoLibrary.OnUpdate","params":{"data":{"added":true,"item":{"id":1,"type":"movie"}}}}`,
		`{"method":"VideoLibrary.OnScanFinished","params":{}}`,
		`{"method":"VideoLibrary.OnUpdate","params":{"data":{"added":true,"item":{"id":3,"type":"movie"}}}}`,
		`{"id":"kodisubs-getmoviedetails","result":{"moviedetails":{"file":"/movies/a.mkv"}}}`,
		`{"method":"VideoLibrary.OnScanFinished","params":{}}`,
		`{"id":"kodisubs-getmoviedetails","result":{"moviedetails":{"file":"/movies/c.mkv"}}}`,
	}}

	var batches [][]string
	listener := New("ws://example/jsonrpc", func(ctx context.Context, paths []string) error {
		batches = append(batches, paths)
		return nil
	}, discardLogger())

	if err := listener.run(context.Background(), sock); err == nil {
		t.Fatal("expected error when connection ends")
	}
	if len(batches) != 2 {
		t.Fatalf("expected two batches, got %d", len(batches))
	}
	if batches[0][0] != "/movies/a.mkv" || batches[1][0] != "/movies/c.mkv" {
		t.Fatalf("unexpected batches: %v", batches)
	}
}

func TestRunStopsWhenHandlerFails(t *testing.T) {
	sock := &fakeSocket{incoming: []string{
		`{"method":"VideoLibrary.OnUpdate","params":{"data":{"added":true,"item":{"id":1,"type":"movie"}}}}`,
		`{"method":"VideoLibrary.OnScanFinished","params":{}}`,
		`{"id":"kodisubs-getmoviedetails","result":{"moviedetails":{"file":"/movies/a.mkv"}}}`,
	}}

	wantErr := errors.New("database unavailable")
	listener := New("ws://example/jsonrpc", func(ctx context.Context, paths []string) error {
		return wantErr
	}, discardLogger())

	err := listener.run(context.Background(), sock)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected handler error, got %v", err)
	}
}
