package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStandardClient_Wraps(t *testing.T) {
	customClient := &http.Client{}
	client := NewStandardClient(customClient)
	if client.Client != customClient {
		t.Error("expected custom client to be wrapped")
	}
	if NewStandardClient(nil).Client != http.DefaultClient {
		t.Error("expected nil to fall back to http.DefaultClient")
	}
}

func TestDoJSON_RoundTrip(t *testing.T) {
	mock := NewMockHTTPClient()
	mock.AddResponse(http.StatusOK, `{"values": [[1, 2]]}`)

	var out struct {
		Values [][]float64 `json:"values"`
	}
	in := map[string]string{"helper": "ICRS_to_FK5"}
	if err := DoJSON(context.Background(), mock, http.MethodPost, "http://skylink/api/convert", in, &out); err != nil {
		t.Fatalf("DoJSON failed: %v", err)
	}
	if len(out.Values) != 1 || out.Values[0][1] != 2 {
		t.Errorf("unexpected decoded values %v", out.Values)
	}

	if mock.RequestCount() != 1 {
		t.Fatalf("got %d requests, want 1", mock.RequestCount())
	}
	req := mock.Requests[0]
	if req.Method != http.MethodPost {
		t.Errorf("method = %s", req.Method)
	}
	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %s", ct)
	}
	if mock.Bodies[0] != `{"helper":"ICRS_to_FK5"}` {
		t.Errorf("body = %s", mock.Bodies[0])
	}
}

func TestDoJSON_StatusError(t *testing.T) {
	mock := NewMockHTTPClient()
	mock.AddResponse(http.StatusNotFound, `{"error": "unknown link helper: nope"}`)
	mock.AddResponse(http.StatusBadGateway, `<html>`)

	err := DoJSON(context.Background(), mock, http.MethodGet, "http://skylink/api/helpers", nil, nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound || se.Message != "unknown link helper: nope" {
		t.Errorf("unexpected status error %+v", se)
	}

	err = DoJSON(context.Background(), mock, http.MethodGet, "http://skylink/api/helpers", nil, nil)
	if !errors.As(err, &se) || se.Message != "" {
		t.Fatalf("expected StatusError without message, got %v", err)
	}
	if se.Error() != "http status 502" {
		t.Errorf("Error() = %q", se.Error())
	}
}

func TestDoJSON_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	mock := NewMockHTTPClient().AddErrorResponse(boom)

	err := DoJSON(context.Background(), mock, http.MethodGet, "http://skylink/", nil, nil)
	if !errors.Is(err, boom) {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestDoJSON_DecodeError(t *testing.T) {
	mock := NewMockHTTPClient().AddResponse(http.StatusOK, `not json`)

	var out map[string]interface{}
	if err := DoJSON(context.Background(), mock, http.MethodGet, "http://skylink/", nil, &out); err == nil {
		t.Error("expected decode error")
	}
}

func TestDoJSON_StandardClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONOK(w, map[string]string{"path": r.URL.Path})
	}))
	defer server.Close()

	var out map[string]string
	if err := DoJSON(context.Background(), NewStandardClient(server.Client()), http.MethodGet, server.URL+"/api/helpers", nil, &out); err != nil {
		t.Fatalf("DoJSON failed: %v", err)
	}
	if out["path"] != "/api/helpers" {
		t.Errorf("path = %q", out["path"])
	}
}

func TestMockHTTPClient_DoFunc(t *testing.T) {
	mock := NewMockHTTPClient()
	mock.DoFunc = func(req *http.Request) (*http.Response, error) {
		rec := httptest.NewRecorder()
		WriteJSONError(rec, http.StatusConflict, "busy")
		return rec.Result(), nil
	}

	err := DoJSON(context.Background(), mock, http.MethodGet, "http://skylink/", nil, nil)
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 StatusError, got %v", err)
	}
}
