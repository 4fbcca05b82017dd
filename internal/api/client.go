package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/banshee-data/skylink/internal/httputil"
)

// Client calls a running skylink server.
type Client struct {
	base string
	http httputil.HTTPClient
}

// NewClient returns a client for the server at baseURL. A nil hc uses
// http.DefaultClient.
func NewClient(baseURL string, hc httputil.HTTPClient) *Client {
	if hc == nil {
		hc = httputil.NewStandardClient(nil)
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

// Helpers lists the server's link helpers.
func (c *Client) Helpers(ctx context.Context) ([]HelperInfo, error) {
	var out []HelperInfo
	err := httputil.DoJSON(ctx, c.http, http.MethodGet, c.base+"/api/helpers", nil, &out)
	return out, err
}

// Convert applies a helper remotely.
func (c *Client) Convert(ctx context.Context, req ConvertRequest) (*ConvertResponse, error) {
	var out ConvertResponse
	if err := httputil.DoJSON(ctx, c.http, http.MethodPost, c.base+"/api/convert", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Links asks the server for the links a helper would create.
func (c *Client) Links(ctx context.Context, spec LinkSpec) ([]string, error) {
	var out LinksResponse
	if err := httputil.DoJSON(ctx, c.http, http.MethodPost, c.base+"/api/links", spec, &out); err != nil {
		return nil, err
	}
	return out.Links, nil
}

// Session fetches a saved session.
func (c *Client) Session(ctx context.Context, id string) (*SessionResponse, error) {
	var out SessionResponse
	if err := httputil.DoJSON(ctx, c.http, http.MethodGet, c.base+"/api/sessions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
