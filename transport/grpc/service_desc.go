package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	serviceName = "connect6.Connect6Game"

	registerMethod       = "/" + serviceName + "/Register"
	makeMoveMethod       = "/" + serviceName + "/MakeMove"
	requestRematchMethod = "/" + serviceName + "/RequestRematch"
	disconnectMethod     = "/" + serviceName + "/Disconnect"
)

// Connect6GameServer is the server API of the connect6.Connect6Game service.
type Connect6GameServer interface {
	Register(in *PlayerInfo, stream grpc.ServerStreamingServer[GameEvent]) error
	MakeMove(ctx context.Context, in *Move) (*MoveResult, error)
	RequestRematch(ctx context.Context, in *RematchRequest) (*MoveResult, error)
	Disconnect(ctx context.Context, in *DisconnectRequest) (*MoveResult, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*Connect6GameServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "MakeMove",
			Handler: unaryHandler(makeMoveMethod, func(srv Connect6GameServer, ctx context.Context, in *Move) (*MoveResult, error) {
				return srv.MakeMove(ctx, in)
			}),
		},
		{
			MethodName: "RequestRematch",
			Handler: unaryHandler(requestRematchMethod, func(srv Connect6GameServer, ctx context.Context, in *RematchRequest) (*MoveResult, error) {
				return srv.RequestRematch(ctx, in)
			}),
		},
		{
			MethodName: "Disconnect",
			Handler: unaryHandler(disconnectMethod, func(srv Connect6GameServer, ctx context.Context, in *DisconnectRequest) (*MoveResult, error) {
				return srv.Disconnect(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Register",
			Handler:       registerHandler,
			ServerStreams: true,
		},
	},
	Metadata: "connect6.proto",
}

// RegisterConnect6GameServer adds the service to s.
func RegisterConnect6GameServer(s grpc.ServiceRegistrar, srv Connect6GameServer) {
	s.RegisterService(&serviceDesc, srv)
}

func unaryHandler[Req any](
	fullMethod string,
	call func(srv Connect6GameServer, ctx context.Context, in *Req) (*MoveResult, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(Connect6GameServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(Connect6GameServer), ctx, req.(*Req))
		}

		return interceptor(ctx, in, info, handler)
	}
}

func registerHandler(srv any, stream grpc.ServerStream) error {
	in := new(PlayerInfo)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}

	return srv.(Connect6GameServer).Register(in, &grpc.GenericServerStream[PlayerInfo, GameEvent]{ServerStream: stream})
}
