package api

import (
	"time"

	"go.uber.org/zap"
)

// CallEvent describes one completed API call.
type CallEvent struct {
	Method  string
	Path    string
	Status  int
	Latency time.Duration
	Err     error
}

// Observer receives telemetry for every API call.
type Observer interface {
	OnCallComplete(ev CallEvent)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// ZapObserver logs calls at debug level, failures at warn.
type ZapObserver struct {
	log *zap.Logger
}

func NewZapObserver(log *zap.Logger) *ZapObserver {
	return &ZapObserver{log: log}
}

func (o *ZapObserver) OnCallComplete(ev CallEvent) {
	fields := []zap.Field{
		zap.String("method", ev.Method),
		zap.String("path", ev.Path),
		zap.Int("status", ev.Status),
		zap.Duration("latency", ev.Latency),
	}
	if ev.Err != nil {
		o.log.Warn("api call failed", append(fields, zap.Error(ev.Err))...)
		return
	}
	o.log.Debug("api call", fields...)
}
