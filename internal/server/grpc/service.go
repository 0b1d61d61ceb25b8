package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "phoneauth.v1.PhoneAuthService"

// Full method names, as seen by interceptors.
const (
	methodIssueCode      = "/" + serviceName + "/IssueCode"
	methodConfirmCode    = "/" + serviceName + "/ConfirmCode"
	methodRefreshToken   = "/" + serviceName + "/RefreshToken"
	methodLogout         = "/" + serviceName + "/Logout"
	methodGetProfile     = "/" + serviceName + "/GetProfile"
	methodActivateInvite = "/" + serviceName + "/ActivateInvite"
)

// PhoneAuthServer is the server API of phoneauth.v1.PhoneAuthService.
// Messages are google.protobuf.Struct documents carrying the same fields as
// the JSON API.
type PhoneAuthServer interface {
	IssueCode(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConfirmCode(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Logout(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ActivateInvite(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(PhoneAuthServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, fullMethod string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PhoneAuthServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PhoneAuthServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*PhoneAuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("IssueCode", methodIssueCode, PhoneAuthServer.IssueCode),
		unaryMethod("ConfirmCode", methodConfirmCode, PhoneAuthServer.ConfirmCode),
		unaryMethod("RefreshToken", methodRefreshToken, PhoneAuthServer.RefreshToken),
		unaryMethod("Logout", methodLogout, PhoneAuthServer.Logout),
		unaryMethod("GetProfile", methodGetProfile, PhoneAuthServer.GetProfile),
		unaryMethod("ActivateInvite", methodActivateInvite, PhoneAuthServer.ActivateInvite),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "phoneauth/v1/phoneauth.proto",
}

// RegisterPhoneAuthServer registers srv on s.
func RegisterPhoneAuthServer(s grpc.ServiceRegistrar, srv PhoneAuthServer) {
	s.RegisterService(&serviceDesc, srv)
}
