// Package logger provides the structured, levelled logger for vinylstore,
// built on log/slog.
//
// The request-logging middleware stores a per-request logger (pre-tagged with
// the request ID) in the context; WithCtx retrieves it so every log line from
// a handler or service is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("product created", "product_id", p.ID)
package logger

import (
	"context"
	"log/slog"
	"os"
)

// L is the base logger. Setup replaces it; until then it logs text to stdout.
var L = slog.New(slog.NewTextHandler(os.Stdout, nil))

var mongoSink *MongoHandler

// Setup configures the base logger for the given environment.
// Production gets JSON at INFO level, everything else text at DEBUG level.
// When mongoURI is non-empty, records are additionally shipped to MongoDB.
func Setup(env, mongoURI, mongoDB string) error {
	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if mongoURI != "" {
		mh, err := NewMongoHandler(mongoURI, mongoDB, "logs")
		if err != nil {
			return err
		}
		mongoSink = mh
		handler = Tee(handler, mh)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
	return nil
}

// Close flushes and disconnects the MongoDB sink, if one was configured.
func Close() {
	if mongoSink != nil {
		mongoSink.Close()
		mongoSink = nil
	}
}

type ctxKey struct{}

// WithCtx returns the per-request logger stored in ctx by the logging
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a pre-tagged *slog.Logger into ctx. Called by the
// logging middleware; application code rarely needs it.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
