package logger

import (
	"log/slog"
	"strconv"
)

// Error records err under the key "error". Nil errors produce an empty
// attr, which slog drops, so call sites need no nil check.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors records the non-nil errors as an indexed group under "errors".
// All-nil input produces an empty attr.
func Errors(errs ...error) slog.Attr {
	var group []slog.Attr
	for i, err := range errs {
		if err != nil {
			group = append(group, slog.Any(strconv.Itoa(i), err))
		}
	}
	if group == nil {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(group...)}
}

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Container records a session container name.
func Container(name string) slog.Attr {
	return slog.String("container", name)
}

// Namespace records a session data namespace.
func Namespace(name string) slog.Attr {
	return slog.String("namespace", name)
}

// Backend records the storage backend kind behind an operation.
func Backend(kind string) slog.Attr {
	return slog.String("backend", kind)
}

// Component records the subsystem emitting the message.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records a lifecycle event name.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
