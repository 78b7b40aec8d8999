package logger

import "log/slog"

// Error records a single error under the key "error". Nil yields an empty
// attribute, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// IdentityID records the identity identifier under the key "identity_id".
func IdentityID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("identity_id", id)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Scheme records the authentication scheme under the key "scheme".
func Scheme(name string) slog.Attr {
	return slog.String("scheme", name)
}
