package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData is the verified identity of the caller, attached by the auth
// middleware.
type RequestData struct {
	TokenString string
	UserID      uuid.UUID
	Email       string
	Role        string
}

func (rd *RequestData) IsAdmin() bool {
	return rd != nil && rd.Role == "admin"
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
