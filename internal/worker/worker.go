// Package worker runs the engine behind a request/response boundary and
// drives batch runs over many characters.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
)

// ErrClosed is returned by Call after Close.
var ErrClosed = errors.New("worker closed")

// Request names a function and carries its JSON-encoded arguments.
type Request struct {
	ID       string            `json:"id,omitempty"`
	Function string            `json:"function"`
	Args     []json.RawMessage `json:"args"`
}

// Response is the single reply to a Request.
type Response struct {
	ID string `json:"id,omitempty"`
	chai.Result[any]
}

// Handler serves one function.
type Handler func(ctx context.Context, args []json.RawMessage) (any, error)

type call struct {
	ctx   context.Context
	req   Request
	reply chan Response
}

// Worker owns one goroutine that serves requests one at a time.
type Worker struct {
	handlers map[string]Handler
	calls    chan call
	quit     chan struct{}
	done     chan struct{}
	once     sync.Once
}

// New starts a worker serving handlers.
func New(handlers map[string]Handler) *Worker {
	w := &Worker{
		handlers: handlers,
		calls:    make(chan call),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.quit:
			return
		case c := <-w.calls:
			// reply is buffered, an abandoned caller never blocks the loop
			c.reply <- w.serve(c.ctx, c.req)
		}
	}
}

func (w *Worker) serve(ctx context.Context, req Request) (resp Response) {
	resp.ID = req.ID
	defer func() {
		if r := recover(); r != nil {
			resp.Result = chai.Fail[any](fmt.Errorf("%s panicked: %v", req.Function, r))
		}
	}()

	h, ok := w.handlers[req.Function]
	if !ok {
		resp.Result = chai.Fail[any](fmt.Errorf("unknown function %q", req.Function))
		return resp
	}
	v, err := h(ctx, req.Args)
	resp.Result = chai.From(v, err)
	return resp
}

// Call sends req and waits for its response. The error is non-nil only when
// ctx ends first or the worker is closed; failures of the function itself
// come back inside the Response.
func (w *Worker) Call(ctx context.Context, req Request) (Response, error) {
	c := call{ctx: ctx, req: req, reply: make(chan Response, 1)}
	select {
	case w.calls <- c:
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-w.quit:
		return Response{}, ErrClosed
	}

	select {
	case resp := <-c.reply:
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Close stops the worker after the request in flight, if any.
func (w *Worker) Close() {
	w.once.Do(func() { close(w.quit) })
	<-w.done
}

// Arg decodes args[i] into v.
func Arg(args []json.RawMessage, i int, v any) error {
	if i >= len(args) {
		return chai.Configurationf("", "missing argument %d", i)
	}
	if err := json.Unmarshal(args[i], v); err != nil {
		return chai.Configurationf("", "argument %d: %w", i, err)
	}
	return nil
}
