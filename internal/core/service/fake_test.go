package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/yndnr/linearcli/internal/cli/connection"
)

// fakeAPI answers requests from per-operation queues of data payloads.
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string][]string
	errs      map[string]error
	requests  []connection.Request
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		responses: make(map[string][]string),
		errs:      make(map[string]error),
	}
}

// respond queues data payloads for an operation, served in order.
func (f *fakeAPI) respond(operation string, data ...string) *fakeAPI {
	f.responses[operation] = append(f.responses[operation], data...)
	return f
}

func (f *fakeAPI) fail(operation string, err error) *fakeAPI {
	f.errs[operation] = err
	return f
}

func (f *fakeAPI) Do(ctx context.Context, req connection.Request, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if err := f.errs[req.OperationName]; err != nil {
		return err
	}
	queue := f.responses[req.OperationName]
	if len(queue) == 0 {
		return fmt.Errorf("fakeAPI: no response queued for %s", req.OperationName)
	}
	f.responses[req.OperationName] = queue[1:]
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(queue[0]), out)
}

func (f *fakeAPI) calls(operation string) []connection.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []connection.Request
	for _, r := range f.requests {
		if r.OperationName == operation {
			out = append(out, r)
		}
	}
	return out
}

// fakeDownloader records avatar downloads.
type fakeDownloader struct {
	mu    sync.Mutex
	got   map[string]string
	fails map[string]error
}

func newFakeDownloader() *fakeDownloader {
	return &fakeDownloader{got: make(map[string]string), fails: make(map[string]error)}
}

func (d *fakeDownloader) Download(ctx context.Context, url, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fails[url]; err != nil {
		return err
	}
	d.got[path] = url
	return nil
}

// countingProgress records avatar progress calls.
type countingProgress struct {
	mu       sync.Mutex
	total    int64
	current  int64
	finished bool
}

func (p *countingProgress) SetTotal(total int64) { p.total = total }

func (p *countingProgress) Increment(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current += n
}

func (p *countingProgress) Finish() { p.finished = true }
