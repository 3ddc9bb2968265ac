package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.lsp.dev/jsonrpc2"
)

func testServer(exts ...string) *Server {
	cfg := DefaultConfig()
	cfg.Extensions = exts
	return New(&Spec{
		Config: cfg,
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func call(t *testing.T, s *Server, method string, params any) (any, error) {
	t.Helper()
	req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), method, params)
	if err != nil {
		t.Fatal(err)
	}
	var (
		result  any
		callErr error
	)
	reply := func(_ context.Context, res interface{}, err error) error {
		result, callErr = res, err
		return nil
	}
	if err := s.handle(context.Background(), reply, req); err != nil {
		t.Fatal(err)
	}
	return result, callErr
}

func TestHandlerEvaluate(t *testing.T) {
	s := testServer()
	res, err := call(t, s, MethodEvaluate, evaluateParams{
		Doc:   json.RawMessage(`{"a": [1, 2, 3]}`),
		Query: "$.a[1:]",
	})
	if err != nil {
		t.Fatal(err)
	}
	results := res.([]json.RawMessage)
	if len(results) != 1 {
		t.Fatalf("%d results", len(results))
	}
	var got []int
	if err := json.Unmarshal(results[0], &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("got %v", got)
	}
}

func TestHandlerApply(t *testing.T) {
	s := testServer()
	res, err := call(t, s, MethodApply, applyParams{
		Doc:   json.RawMessage(`{"a": 1}`),
		Patch: json.RawMessage(`[{"op": "set", "path": "$.b", "value": 2}]`),
	})
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]int
	if err := json.Unmarshal(res.(json.RawMessage), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got["a"] != 1 || got["b"] != 2 {
		t.Errorf("got %v", got)
	}
}

func TestHandlerApplyExtension(t *testing.T) {
	params := applyParams{
		Doc:   json.RawMessage(`{"n": 3}`),
		Patch: json.RawMessage(`[{"op": "eval", "path": "$.n", "expr": "value + 1"}]`),
	}
	if _, err := call(t, testServer(), MethodApply, params); err == nil {
		t.Error("eval enabled without configuration")
	}
	res, err := call(t, testServer("eval"), MethodApply, params)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]int
	if err := json.Unmarshal(res.(json.RawMessage), &got); err != nil {
		t.Fatal(err)
	}
	if got["n"] != 4 {
		t.Errorf("got %v", got)
	}
}

func TestHandlerDiff(t *testing.T) {
	s := testServer()
	res, err := call(t, s, MethodDiff, diffParams{
		Old: json.RawMessage(`{"a": 1}`),
		New: json.RawMessage(`{"a": 2}`),
	})
	if err != nil {
		t.Fatal(err)
	}
	var ops []map[string]any
	if err := json.Unmarshal(res.(json.RawMessage), &ops); err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 || ops[0]["op"] != "set" || ops[0]["path"] != "$.a" {
		t.Errorf("got %s", res)
	}
}

func TestHandlerUnknownMethod(t *testing.T) {
	s := testServer()
	_, err := call(t, s, "treedoc/nope", nil)
	if !errors.Is(err, jsonrpc2.ErrMethodNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestHandlerBadParams(t *testing.T) {
	s := testServer()
	req, err := jsonrpc2.NewCall(jsonrpc2.NewNumberID(1), MethodApply, json.RawMessage(`"nope"`))
	if err != nil {
		t.Fatal(err)
	}
	var callErr error
	reply := func(_ context.Context, _ interface{}, err error) error {
		callErr = err
		return nil
	}
	if err := s.handle(context.Background(), reply, req); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(callErr, jsonrpc2.ErrInvalidParams) {
		t.Errorf("got %v", callErr)
	}
}
