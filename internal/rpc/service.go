// Package rpc exposes helper conversions as the skylink.v1.Converter gRPC
// service. Messages are google.protobuf.Struct values.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName       = "skylink.v1.Converter"
	convertMethod     = "/" + serviceName + "/Convert"
	listHelpersMethod = "/" + serviceName + "/ListHelpers"
)

// ConverterServer is the server API for the Converter service.
type ConverterServer interface {
	Convert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListHelpers(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedConverterServer can be embedded for forward compatibility.
type UnimplementedConverterServer struct{}

func (UnimplementedConverterServer) Convert(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Convert not implemented")
}

func (UnimplementedConverterServer) ListHelpers(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListHelpers not implemented")
}

// RegisterConverterServer registers srv with s.
func RegisterConverterServer(s grpc.ServiceRegistrar, srv ConverterServer) {
	s.RegisterService(&converterServiceDesc, srv)
}

func convertHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConverterServer).Convert(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: convertMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConverterServer).Convert(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listHelpersHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConverterServer).ListHelpers(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: listHelpersMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConverterServer).ListHelpers(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var converterServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ConverterServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Convert",
			Handler:    convertHandler,
		},
		{
			MethodName: "ListHelpers",
			Handler:    listHelpersHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "skylink/v1/converter.proto",
}
