package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/banshee-data/skylink/internal/plugin"
)

// Client calls the Converter service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Convert applies helper remotely and returns one array per output.
func (c *Client) Convert(ctx context.Context, helper string, dir plugin.Direction, values [][]float64, opts ...grpc.CallOption) ([][]float64, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"helper":    structpb.NewStringValue(helper),
		"direction": structpb.NewStringValue(string(dir)),
		"values":    toValues(values),
	}}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, convertMethod, in, out, opts...); err != nil {
		return nil, err
	}
	result, err := fromValues(out.GetFields()["values"])
	if err != nil {
		return nil, fmt.Errorf("decode Convert response: %w", err)
	}
	return result, nil
}

// ListHelpers returns the names of the server's helpers in category (all when empty).
func (c *Client) ListHelpers(ctx context.Context, category string, opts ...grpc.CallOption) ([]string, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if category != "" {
		in.Fields["category"] = structpb.NewStringValue(category)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, listHelpersMethod, in, out, opts...); err != nil {
		return nil, err
	}
	var names []string
	for _, h := range out.GetFields()["helpers"].GetListValue().GetValues() {
		names = append(names, h.GetStructValue().GetFields()["name"].GetStringValue())
	}
	return names, nil
}
