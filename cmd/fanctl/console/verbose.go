package console

import "context"

type ctxKey int

const ctxKeyVerbose ctxKey = iota

func SetVerbose(parent context.Context, value bool) context.Context {
	return context.WithValue(parent, ctxKeyVerbose, value)
}

func IsVerbose(ctx context.Context) bool {
	value, ok := ctx.Value(ctxKeyVerbose).(bool)
	return ok && value
}
