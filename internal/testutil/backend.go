package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Call is one request received by the fake backend.
type Call struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// JSON decodes the request body into v.
func (c Call) JSON(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(c.Body, v); err != nil {
		t.Fatalf("decode body of %s %s: %v", c.Method, c.Path, err)
	}
}

// Reply is a scripted response. Wait, when set, holds the response back
// until it is closed.
type Reply struct {
	Status int
	Body   string
	Header map[string]string
	Wait   <-chan struct{}
}

func OK(body string) Reply {
	return Reply{Status: http.StatusOK, Body: body}
}

func Status(status int, body string) Reply {
	return Reply{Status: status, Body: body}
}

// Backend is a scripted REST backend. Replies for one route are served in
// order; the last one repeats.
type Backend struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string][]Reply
	calls  []Call
}

func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{routes: make(map[string][]Reply)}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

// On scripts replies for "METHOD path". A path with a query string only
// matches requests carrying exactly that query.
func (b *Backend) On(method, path string, replies ...Reply) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = append(b.routes[method+" "+path], replies...)
	return b
}

func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CallsTo returns the calls to method and path, ignoring query strings.
func (b *Backend) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.calls = append(b.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	reply, ok := b.next(r.Method + " " + r.URL.RequestURI())
	if !ok {
		reply, ok = b.next(r.Method + " " + r.URL.Path)
	}
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"no route for ` + r.Method + ` ` + r.URL.Path + `"}`))
		return
	}

	if reply.Wait != nil {
		<-reply.Wait
	}
	for k, v := range reply.Header {
		w.Header().Set(k, v)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	w.Write([]byte(reply.Body))
}

func (b *Backend) next(key string) (Reply, bool) {
	queue, ok := b.routes[key]
	if !ok || len(queue) == 0 {
		return Reply{}, false
	}
	reply := queue[0]
	if len(queue) > 1 {
		b.routes[key] = queue[1:]
	}
	return reply, true
}
