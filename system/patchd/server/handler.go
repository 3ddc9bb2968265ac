package server

import (
	"context"
	"encoding/json"
	"fmt"

	"go.lsp.dev/jsonrpc2"

	"github.com/treedoc-format/go-treedoc/codec"
	"github.com/treedoc-format/go-treedoc/ir"
	"github.com/treedoc-format/go-treedoc/libdiff"
	"github.com/treedoc-format/go-treedoc/query"
)

// JSON-RPC method names.
const (
	MethodEvaluate = "treedoc/evaluate"
	MethodApply    = "treedoc/apply"
	MethodDiff     = "treedoc/diff"
)

type evaluateParams struct {
	Doc   json.RawMessage `json:"doc"`
	Query string          `json:"query"`
}

type applyParams struct {
	Doc   json.RawMessage `json:"doc"`
	Patch json.RawMessage `json:"patch"`
}

type diffParams struct {
	Old json.RawMessage `json:"old"`
	New json.RawMessage `json:"new"`
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.Spec.Log.Debug("request", "method", req.Method())
	switch req.Method() {
	case MethodEvaluate:
		return s.evaluate(ctx, reply, req)
	case MethodApply:
		return s.apply(ctx, reply, req)
	case MethodDiff:
		return s.diff(ctx, reply, req)
	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (s *Server) evaluate(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var p evaluateParams
	if err := json.Unmarshal(req.Params(), &p); err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
	}
	doc, err := codec.Decode(p.Doc)
	if err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: doc: %v", jsonrpc2.ErrInvalidParams, err))
	}
	opts := &query.Options{AllowSlice: true}
	refs, err := query.Evaluate([]*ir.Node{doc}, p.Query, opts)
	if err != nil {
		return reply(ctx, nil, err)
	}
	results := make([]json.RawMessage, 0, len(refs))
	for _, r := range refs {
		node, err := r.Read()
		if err != nil {
			return reply(ctx, nil, err)
		}
		d, err := codec.Encode(node, codec.JSON())
		if err != nil {
			return reply(ctx, nil, err)
		}
		results = append(results, d)
	}
	return reply(ctx, results, nil)
}

func (s *Server) apply(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var p applyParams
	if err := json.Unmarshal(req.Params(), &p); err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
	}
	doc, err := codec.Decode(p.Doc)
	if err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: doc: %v", jsonrpc2.ErrInvalidParams, err))
	}
	patchDoc, err := codec.Decode(p.Patch)
	if err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: patch: %v", jsonrpc2.ErrInvalidParams, err))
	}
	res, err := s.applier.Apply(doc, patchDoc)
	if err != nil {
		return reply(ctx, nil, err)
	}
	d, err := codec.Encode(res, codec.JSON())
	if err != nil {
		return reply(ctx, nil, err)
	}
	return reply(ctx, json.RawMessage(d), nil)
}

func (s *Server) diff(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var p diffParams
	if err := json.Unmarshal(req.Params(), &p); err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrInvalidParams, err))
	}
	old, err := codec.Decode(p.Old)
	if err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: old: %v", jsonrpc2.ErrInvalidParams, err))
	}
	new, err := codec.Decode(p.New)
	if err != nil {
		return reply(ctx, nil, fmt.Errorf("%w: new: %v", jsonrpc2.ErrInvalidParams, err))
	}
	d, err := codec.Encode(libdiff.Diff(old, new), codec.JSON())
	if err != nil {
		return reply(ctx, nil, err)
	}
	return reply(ctx, json.RawMessage(d), nil)
}
