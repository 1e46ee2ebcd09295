package client

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// Phase is the controller's position in the filter round trip.
type Phase int

const (
	Idle Phase = iota
	Requesting
)

// Request is one filter round trip: the gathered parameters for a grid plus
// the page to fetch.
type Request struct {
	GridId  string
	Filters url.Values
	Page    int
	Append  bool
}

// Response is the patch payload coming back from the filter endpoint.
type Response struct {
	Html          string `json:"html"`
	Pagination    string `json:"pagination"`
	FoundPosts    int    `json:"found_posts"`
	MaxPages      int    `json:"max_pages"`
	CurrentPage   int    `json:"current_page"`
	ActiveFilters string `json:"active_filters"`
	HasMore       bool   `json:"has_more"`
}

// SendFunc performs the round trip to the filter endpoint.
type SendFunc func(ctx context.Context, req Request) (*Response, error)

// PatchFunc applies a response to the page.
type PatchFunc func(req Request, resp *Response)

// Dispatcher serializes filter round trips for one grid. While a request is
// in flight, new interactions land in a single pending slot where the latest
// one supersedes anything queued before it; the slot is dispatched when the
// current request completes. The grid therefore always ends up showing the
// most recent interaction, without a burst of clicks fanning out into
// parallel requests.
type Dispatcher struct {
	mu      sync.Mutex
	phase   Phase
	pending *Request

	send    SendFunc
	patch   PatchFunc
	onError func(Request, error)
}

func NewDispatcher(send SendFunc, patch PatchFunc) *Dispatcher {
	return &Dispatcher{send: send, patch: patch}
}

// OnError installs an error callback; without one errors are dropped and the
// grid keeps its previous contents.
func (d *Dispatcher) OnError(fn func(Request, error)) {
	d.onError = fn
}

func (d *Dispatcher) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Submit schedules req. When idle the request runs immediately and drains any
// interactions queued while it was in flight; otherwise req replaces the
// pending slot and returns.
func (d *Dispatcher) Submit(ctx context.Context, req Request) {
	d.mu.Lock()
	if d.phase != Idle {
		d.pending = &req
		d.mu.Unlock()
		return
	}
	d.phase = Requesting
	d.mu.Unlock()

	for {
		resp, err := d.send(ctx, req)
		if err != nil {
			if d.onError != nil {
				d.onError(req, err)
			}
		} else if d.patch != nil {
			d.patch(req, resp)
		}

		d.mu.Lock()
		if d.pending == nil || ctx.Err() != nil {
			d.phase = Idle
			d.mu.Unlock()
			return
		}
		req = *d.pending
		d.pending = nil
		d.mu.Unlock()
	}
}

// Debouncer delays rapid successive triggers and fires only for the last one.
// Range sliders route through it so a drag does not emit a request per tick.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.delay <= 0 {
		go fn()
		return
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels a pending trigger.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
