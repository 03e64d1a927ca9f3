package grpc

import (
	"context"
	"crypto/subtle"
	"log"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the authorization token from request metadata.
// The header may carry the bare token or a bearer credential ("Bearer <token>",
// scheme matched case-insensitively). Tokens are compared in constant time.
// If the token is missing or invalid, it returns status.Unauthenticated.
func AuthInterceptor(validToken string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		if subtle.ConstantTimeCompare([]byte(bearerToken(authHeaders[0])), []byte(validToken)) != 1 {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(ctx, req)
	}
}

// bearerToken strips a bearer scheme from an authorization value
func bearerToken(header string) string {
	scheme, token, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return header
}

// LoggingInterceptor logs method, duration and status code of every unary call
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		if code == codes.OK || code == codes.InvalidArgument || code == codes.NotFound {
			log.Printf("[INFO] %s %s (%s)", info.FullMethod, code, time.Since(start))
		} else {
			log.Printf("[WARN] %s %s (%s): %v", info.FullMethod, code, time.Since(start), err)
		}

		return resp, err
	}
}
