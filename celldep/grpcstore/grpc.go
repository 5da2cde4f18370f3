// Package grpcstore exposes a code-cell store over gRPC, for hosts that
// fetch token logic modules from a remote daemon.
package grpcstore

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// CodeCellServer is the server API for the CodeCell gRPC service.
//
// We intentionally use protobuf well-known wrapper types so this package
// does not require a protoc/codegen toolchain.
type CodeCellServer interface {
	Put(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
}

// UnimplementedCodeCellServer can be embedded to have forward compatible
// implementations.
type UnimplementedCodeCellServer struct{}

func (UnimplementedCodeCellServer) Put(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Put not implemented")
}
func (UnimplementedCodeCellServer) Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedCodeCellServer) Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Has not implemented")
}

// RegisterCodeCellServer registers the CodeCell service on a gRPC server.
func RegisterCodeCellServer(s grpc.ServiceRegistrar, srv CodeCellServer) {
	s.RegisterService(&CodeCell_ServiceDesc, srv)
}

// CodeCellClient is the client API for the CodeCell gRPC service.
type CodeCellClient interface {
	Put(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Get(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type codeCellClient struct{ cc grpc.ClientConnInterface }

func NewCodeCellClient(cc grpc.ClientConnInterface) CodeCellClient { return &codeCellClient{cc: cc} }

func (c *codeCellClient) Put(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/xdao.nft.celldep.grpcstore.v1.CodeCell/Put", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *codeCellClient) Get(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.nft.celldep.grpcstore.v1.CodeCell/Get", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *codeCellClient) Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	err := c.cc.Invoke(ctx, "/xdao.nft.celldep.grpcstore.v1.CodeCell/Has", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _CodeCell_Put_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CodeCellServer).Put(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.nft.celldep.grpcstore.v1.CodeCell/Put"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CodeCellServer).Put(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _CodeCell_Get_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CodeCellServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.nft.celldep.grpcstore.v1.CodeCell/Get"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CodeCellServer).Get(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _CodeCell_Has_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CodeCellServer).Has(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.nft.celldep.grpcstore.v1.CodeCell/Has"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CodeCellServer).Has(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// CodeCell_ServiceDesc is the grpc.ServiceDesc for the CodeCell service.
var CodeCell_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "xdao.nft.celldep.grpcstore.v1.CodeCell",
	HandlerType: (*CodeCellServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Put", Handler: _CodeCell_Put_Handler},
		{MethodName: "Get", Handler: _CodeCell_Get_Handler},
		{MethodName: "Has", Handler: _CodeCell_Has_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "codecell.proto",
}
