package grpc

import (
	"context"
	"fmt"
	"log"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	enginePackage = "wealthtrack.v1"
	engineService = "EngineService"

	// EngineServiceName is the fully qualified gRPC service name
	EngineServiceName = enginePackage + "." + engineService

	// EngineProtoFile is the descriptor path EngineService is registered under
	EngineProtoFile = "wealthtrack/v1/engine.proto"
)

// Full method names of EngineService
const (
	MethodGetPortfolioSummary = "/" + EngineServiceName + "/GetPortfolioSummary"
	MethodSimulateGoal        = "/" + EngineServiceName + "/SimulateGoal"
	MethodGetDashboardSummary = "/" + EngineServiceName + "/GetDashboardSummary"
	MethodRecordTransaction   = "/" + EngineServiceName + "/RecordTransaction"
	MethodRefreshPrices       = "/" + EngineServiceName + "/RefreshPrices"
	MethodUpdatePrice         = "/" + EngineServiceName + "/UpdatePrice"
)

// EngineServiceServer is the server API for EngineService
// Every request and response is a google.protobuf.Struct; decimals travel as strings
type EngineServiceServer interface {
	GetPortfolioSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SimulateGoal(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDashboardSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshPrices(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdatePrice(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type engineCall func(EngineServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call engineCall) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EngineServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(EngineServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// EngineServiceDesc is the grpc.ServiceDesc for EngineService
var EngineServiceDesc = grpc.ServiceDesc{
	ServiceName: EngineServiceName,
	HandlerType: (*EngineServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetPortfolioSummary", Handler: unaryHandler(MethodGetPortfolioSummary, EngineServiceServer.GetPortfolioSummary)},
		{MethodName: "SimulateGoal", Handler: unaryHandler(MethodSimulateGoal, EngineServiceServer.SimulateGoal)},
		{MethodName: "GetDashboardSummary", Handler: unaryHandler(MethodGetDashboardSummary, EngineServiceServer.GetDashboardSummary)},
		{MethodName: "RecordTransaction", Handler: unaryHandler(MethodRecordTransaction, EngineServiceServer.RecordTransaction)},
		{MethodName: "RefreshPrices", Handler: unaryHandler(MethodRefreshPrices, EngineServiceServer.RefreshPrices)},
		{MethodName: "UpdatePrice", Handler: unaryHandler(MethodUpdatePrice, EngineServiceServer.UpdatePrice)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: EngineProtoFile,
}

// RegisterEngineServiceServer registers srv on s
// The file descriptor is registered too, so server reflection can describe the service
func RegisterEngineServiceServer(s grpc.ServiceRegistrar, srv EngineServiceServer) {
	if err := RegisterEngineDescriptor(); err != nil {
		log.Printf("[WARN] %s will not be described by reflection: %v", EngineServiceName, err)
	}
	s.RegisterService(&EngineServiceDesc, srv)
}

var (
	descriptorOnce sync.Once
	descriptorErr  error
)

// RegisterEngineDescriptor adds the EngineService file to protoregistry.GlobalFiles
// Calling it again returns the first result
func RegisterEngineDescriptor() error {
	descriptorOnce.Do(func() {
		fd, err := protodesc.NewFile(engineFileProto(), protoregistry.GlobalFiles)
		if err != nil {
			descriptorErr = fmt.Errorf("failed to build %s: %w", EngineProtoFile, err)
			return
		}
		if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
			descriptorErr = fmt.Errorf("failed to register %s: %w", EngineProtoFile, err)
		}
	})
	return descriptorErr
}

// engineFileProto describes EngineService with google.protobuf.Struct in and out of every method
func engineFileProto() *descriptorpb.FileDescriptorProto {
	structFile := structpb.File_google_protobuf_struct_proto
	structType := "." + string((&structpb.Struct{}).ProtoReflect().Descriptor().FullName())

	methods := make([]*descriptorpb.MethodDescriptorProto, 0, len(EngineServiceDesc.Methods))
	for _, m := range EngineServiceDesc.Methods {
		methods = append(methods, &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(m.MethodName),
			InputType:  proto.String(structType),
			OutputType: proto.String(structType),
		})
	}

	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(EngineProtoFile),
		Package:    proto.String(enginePackage),
		Dependency: []string{structFile.Path()},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{Name: proto.String(engineService), Method: methods},
		},
		Syntax: proto.String("proto3"),
	}
}

// EngineClient is a thin client for EngineService
type EngineClient struct {
	cc grpc.ClientConnInterface
}

// NewEngineClient creates a client over an established connection
func NewEngineClient(cc grpc.ClientConnInterface) *EngineClient {
	return &EngineClient{cc: cc}
}

// Call invokes one EngineService method by its full name
func (c *EngineClient) Call(ctx context.Context, fullMethod string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
