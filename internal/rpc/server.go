package rpc

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/banshee-data/skylink/internal/astro"
	"github.com/banshee-data/skylink/internal/link"
	"github.com/banshee-data/skylink/internal/monitoring"
	"github.com/banshee-data/skylink/internal/plugin"
)

// Ensure Server implements the gRPC interface.
var _ ConverterServer = (*Server)(nil)

// Server answers Converter calls from a plugin registry.
type Server struct {
	UnimplementedConverterServer

	registry *plugin.Registry
}

// NewServer creates a Converter server.
func NewServer(registry *plugin.Registry) *Server {
	return &Server{registry: registry}
}

// Convert applies a helper. Request fields: helper, direction (optional),
// values (list of number lists).
func (s *Server) Convert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	helper := fields["helper"].GetStringValue()
	if helper == "" {
		return nil, status.Error(codes.InvalidArgument, "helper is required")
	}
	dir, err := plugin.ParseDirection(fields["direction"].GetStringValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	values, err := fromValues(fields["values"])
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	out, err := s.registry.Apply(helper, dir, values)
	if err != nil {
		return nil, toStatus(err)
	}
	monitoring.Debugf("[gRPC] Convert %s %s: %d arrays", helper, dir, len(out))

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"helper":    structpb.NewStringValue(helper),
		"direction": structpb.NewStringValue(string(dir)),
		"values":    toValues(out),
	}}, nil
}

// ListHelpers returns every helper, optionally filtered by "category".
func (s *Server) ListHelpers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	category := req.GetFields()["category"].GetStringValue()
	var helpers []*structpb.Value
	for _, h := range s.registry.Helpers() {
		if category != "" && h.Category() != category {
			continue
		}
		in, out := h.Labels()
		helpers = append(helpers, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"name":     structpb.NewStringValue(h.Name()),
			"display":  structpb.NewStringValue(h.Display()),
			"category": structpb.NewStringValue(h.Category()),
			"arity":    structpb.NewNumberValue(float64(h.Arity())),
			"inputs":   stringList(in),
			"outputs":  stringList(out),
		}}))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"helpers": structpb.NewListValue(&structpb.ListValue{Values: helpers}),
	}}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, plugin.ErrUnknownHelper):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, plugin.ErrValueCount),
		errors.Is(err, link.ErrArity),
		errors.Is(err, astro.ErrShapeMismatch):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func stringList(ss []string) *structpb.Value {
	vals := make([]*structpb.Value, len(ss))
	for i, s := range ss {
		vals[i] = structpb.NewStringValue(s)
	}
	return structpb.NewListValue(&structpb.ListValue{Values: vals})
}

func toValues(arrays [][]float64) *structpb.Value {
	outer := make([]*structpb.Value, len(arrays))
	for i, arr := range arrays {
		inner := make([]*structpb.Value, len(arr))
		for j, v := range arr {
			inner[j] = structpb.NewNumberValue(v)
		}
		outer[i] = structpb.NewListValue(&structpb.ListValue{Values: inner})
	}
	return structpb.NewListValue(&structpb.ListValue{Values: outer})
}

func fromValues(v *structpb.Value) ([][]float64, error) {
	list := v.GetListValue()
	if list == nil {
		return nil, errors.New("values must be a list of number lists")
	}
	out := make([][]float64, len(list.GetValues()))
	for i, row := range list.GetValues() {
		inner := row.GetListValue()
		if inner == nil {
			return nil, fmt.Errorf("values[%d] must be a list of numbers", i)
		}
		out[i] = make([]float64, len(inner.GetValues()))
		for j, x := range inner.GetValues() {
			n, ok := x.GetKind().(*structpb.Value_NumberValue)
			if !ok {
				return nil, fmt.Errorf("values[%d][%d] is not a number", i, j)
			}
			out[i][j] = n.NumberValue
		}
	}
	return out, nil
}
