// Package portstest scripts the generated port fakes for handler tests.
package portstest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/architeacher/storetools/internal/domain/model"
	"github.com/architeacher/storetools/internal/mocks"
)

// MethodUpload routes UploadMedia calls; their Body is the filename.
const MethodUpload = "UPLOAD"

type (
	Call struct {
		Method string
		Path   string
		Params map[string]any
		Body   any
	}

	Reply struct {
		Data   string
		Err    error
		Header http.Header
	}

	// Upstream is a FakeRESTUpstream whose request methods answer from routes
	// scripted with On. Replies are consumed in order with the last one
	// repeating. Unscripted routes answer "{}". Batch is routed as a POST to
	// <endpoint>/batch.
	Upstream struct {
		*mocks.FakeRESTUpstream

		mu      sync.Mutex
		replies map[string][]Reply
	}
)

func NewUpstream(name string) *Upstream {
	u := &Upstream{
		FakeRESTUpstream: &mocks.FakeRESTUpstream{},
		replies:          make(map[string][]Reply),
	}

	u.NameReturns(name)
	u.GetCalls(func(ctx context.Context, path string, _ map[string]any) (*model.UpstreamResponse, error) {
		return u.reply(ctx, http.MethodGet, path)
	})
	u.PostCalls(func(ctx context.Context, path string, _ any) (*model.UpstreamResponse, error) {
		return u.reply(ctx, http.MethodPost, path)
	})
	u.PutCalls(func(ctx context.Context, path string, _ any) (*model.UpstreamResponse, error) {
		return u.reply(ctx, http.MethodPut, path)
	})
	u.DeleteCalls(func(ctx context.Context, path string, _ map[string]any) (*model.UpstreamResponse, error) {
		return u.reply(ctx, http.MethodDelete, path)
	})
	u.BatchCalls(func(ctx context.Context, endpoint string, _ any) (*model.UpstreamResponse, error) {
		return u.reply(ctx, http.MethodPost, batchPath(endpoint))
	})
	u.UploadMediaCalls(func(ctx context.Context, _, _ string, _ []byte) (*model.UpstreamResponse, error) {
		return u.reply(ctx, MethodUpload, "media")
	})

	return u
}

func (u *Upstream) On(method, path string, replies ...Reply) *Upstream {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.replies[route(method, path)] = append(u.replies[route(method, path)], replies...)

	return u
}

// Calls counts the requests made to method and path.
func (u *Upstream) Calls(method, path string) int {
	n := 0
	for _, call := range u.requests() {
		if call.Method == method && call.Path == path {
			n++
		}
	}

	return n
}

// Total counts every request.
func (u *Upstream) Total() int {
	return len(u.requests())
}

// Last returns the most recent request to method and path.
func (u *Upstream) Last(method, path string) (Call, bool) {
	calls := u.requests()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method && calls[i].Path == path {
			return calls[i], true
		}
	}

	return Call{}, false
}

// requests rebuilds the recorded invocations as calls, grouped by method in
// the order each method was invoked.
func (u *Upstream) requests() []Call {
	invocations := u.Invocations()

	var calls []Call

	for _, args := range invocations["Get"] {
		calls = append(calls, Call{Method: http.MethodGet, Path: args[1].(string), Params: args[2].(map[string]any)})
	}

	for _, args := range invocations["Post"] {
		calls = append(calls, Call{Method: http.MethodPost, Path: args[1].(string), Body: args[2]})
	}

	for _, args := range invocations["Batch"] {
		calls = append(calls, Call{Method: http.MethodPost, Path: batchPath(args[1].(string)), Body: args[2]})
	}

	for _, args := range invocations["Put"] {
		calls = append(calls, Call{Method: http.MethodPut, Path: args[1].(string), Body: args[2]})
	}

	for _, args := range invocations["Delete"] {
		calls = append(calls, Call{Method: http.MethodDelete, Path: args[1].(string), Params: args[2].(map[string]any)})
	}

	for _, args := range invocations["UploadMedia"] {
		calls = append(calls, Call{Method: MethodUpload, Path: "media", Body: args[1]})
	}

	return calls
}

func (u *Upstream) reply(ctx context.Context, method, path string) (*model.UpstreamResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	reply := Reply{Data: "{}"}

	key := route(method, path)
	if queue := u.replies[key]; len(queue) > 0 {
		reply = queue[0]
		if len(queue) > 1 {
			u.replies[key] = queue[1:]
		}
	}

	if reply.Err != nil {
		return nil, reply.Err
	}

	if !json.Valid([]byte(reply.Data)) {
		return nil, fmt.Errorf("scripted reply for %s is not JSON", key)
	}

	return &model.UpstreamResponse{Status: http.StatusOK, Data: json.RawMessage(reply.Data), Header: reply.Header}, nil
}

func batchPath(endpoint string) string {
	return strings.TrimRight(endpoint, "/") + "/batch"
}

func route(method, path string) string {
	return method + " " + path
}
