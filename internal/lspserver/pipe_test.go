package lspserver

import (
	"io"
	"sync"
	"testing"

	"go.lsp.dev/jsonrpc2"
)

// memPipe is a thread-safe in-memory buffer implementing one direction
// of a jsonrpc2 stream.
type memPipe struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []byte
	closed bool
}

func newMemPipe() *memPipe {
	p := &memPipe{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

func (p *memPipe) Read(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.buf) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.buf) == 0 && p.closed {
		return 0, io.EOF
	}
	n := copy(data, p.buf)
	p.buf = p.buf[n:]
	return n, nil
}

func (p *memPipe) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, io.ErrClosedPipe
	}
	p.buf = append(p.buf, data...)
	p.cond.Signal()
	return len(data), nil
}

func (p *memPipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.cond.Broadcast()
	return nil
}

// rwc pairs a reader and writer into an io.ReadWriteCloser.
type rwc struct {
	reader io.Reader
	writer io.Writer
}

func (r rwc) Read(p []byte) (int, error)  { return r.reader.Read(p) }
func (r rwc) Write(p []byte) (int, error) { return r.writer.Write(p) }
func (r rwc) Close() error                { return nil }

// testPipe creates an in-memory connected pair of jsonrpc2 connections:
// (clientConn, serverConn).
func testPipe(t *testing.T) (jsonrpc2.Conn, jsonrpc2.Conn) {
	t.Helper()

	c2s := newMemPipe()
	s2c := newMemPipe()

	clientConn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc{reader: s2c, writer: c2s}))
	serverConn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc{reader: c2s, writer: s2c}))

	t.Cleanup(func() {
		_ = clientConn.Close()
		_ = serverConn.Close()
	})

	return clientConn, serverConn
}
