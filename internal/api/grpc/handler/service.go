package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProfileServiceName is the fully qualified name of the control API service.
const ProfileServiceName = "profile.Profile"

// ProfileServer is the server API for the profile.Profile service.
type ProfileServer interface {
	GetProfile(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	UpdateProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveProfile(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	PickAvatar(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CaptureAvatar(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	RemoveAvatar(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	DrainNotices(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SetPermission(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterProfileServer registers srv on s.
func RegisterProfileServer(s grpc.ServiceRegistrar, srv ProfileServer) {
	s.RegisterService(&ProfileServiceDesc, srv)
}

// ProfileServiceDesc describes the profile.Profile service. Requests and
// responses are protobuf well-known types so no generated code is needed.
var ProfileServiceDesc = grpc.ServiceDesc{
	ServiceName: ProfileServiceName,
	HandlerType: (*ProfileServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProfile", Handler: unary("GetProfile", ProfileServer.GetProfile)},
		{MethodName: "UpdateProfile", Handler: unary("UpdateProfile", ProfileServer.UpdateProfile)},
		{MethodName: "SaveProfile", Handler: unary("SaveProfile", ProfileServer.SaveProfile)},
		{MethodName: "PickAvatar", Handler: unary("PickAvatar", ProfileServer.PickAvatar)},
		{MethodName: "CaptureAvatar", Handler: unary("CaptureAvatar", ProfileServer.CaptureAvatar)},
		{MethodName: "RemoveAvatar", Handler: unary("RemoveAvatar", ProfileServer.RemoveAvatar)},
		{MethodName: "DrainNotices", Handler: unary("DrainNotices", ProfileServer.DrainNotices)},
		{MethodName: "SetPermission", Handler: unary("SetPermission", ProfileServer.SetPermission)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "profile.proto",
}

// FullMethod returns the gRPC path of a profile.Profile method.
func FullMethod(method string) string {
	return "/" + ProfileServiceName + "/" + method
}

func unary[Req any, Resp any](
	method string,
	call func(ProfileServer, context.Context, *Req) (Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ProfileServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ProfileServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
