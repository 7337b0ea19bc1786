package api

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"favorite-app-service/data"
	"favorite-app-service/features"
)

// The gRPC surface speaks google.protobuf.Struct so it needs no generated code.
const (
	FavoriteAppServiceName = "favoriteapp.v1.FavoriteAppService"
	predictFullMethod      = "/" + FavoriteAppServiceName + "/Predict"
	listChoicesFullMethod  = "/" + FavoriteAppServiceName + "/ListChoices"
)

// FavoriteAppService is the server side of the gRPC service.
type FavoriteAppService interface {
	Predict(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListChoices(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

var favoriteAppServiceDesc = grpc.ServiceDesc{
	ServiceName: FavoriteAppServiceName,
	HandlerType: (*FavoriteAppService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Predict", Handler: predictHandler},
		{MethodName: "ListChoices", Handler: listChoicesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "favoriteapp/v1/favoriteapp.proto",
}

// RegisterFavoriteAppService registers srv on s.
func RegisterFavoriteAppService(s grpc.ServiceRegistrar, srv FavoriteAppService) {
	s.RegisterService(&favoriteAppServiceDesc, srv)
}

func predictHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FavoriteAppService).Predict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: predictFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FavoriteAppService).Predict(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listChoicesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FavoriteAppService).ListChoices(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listChoicesFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FavoriteAppService).ListChoices(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// FavoriteAppServer serves predictions over gRPC.
type FavoriteAppServer struct {
	predictor Predictor
	choices   *data.Choices
	log       *zap.Logger
}

func NewFavoriteAppServer(predictor Predictor, choices *data.Choices, log *zap.Logger) *FavoriteAppServer {
	return &FavoriteAppServer{
		predictor: predictor,
		choices:   choices,
		log:       log,
	}
}

// Predict takes the raw form fields as a Struct: strings, numbers, or lists
// for multi-select fields.
func (s *FavoriteAppServer) Predict(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	rec := features.Normalize(valuesFromMap(req.AsMap()))

	res, err := s.predictor.Predict(rec)
	if err != nil {
		s.log.Error("prediction failed", zap.Error(err), zap.Any("record", rec))
		return nil, status.Error(codes.Internal, "prediction failed")
	}
	return toStruct(newPredictResponse(res))
}

func (s *FavoriteAppServer) ListChoices(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(s.choices)
}

// toStruct converts a JSON-tagged value into a Struct.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// FavoriteAppClient is a client for FavoriteAppService.
type FavoriteAppClient struct {
	cc grpc.ClientConnInterface
}

func NewFavoriteAppClient(cc grpc.ClientConnInterface) *FavoriteAppClient {
	return &FavoriteAppClient{cc: cc}
}

func (c *FavoriteAppClient) Predict(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, predictFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FavoriteAppClient) ListChoices(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, listChoicesFullMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
