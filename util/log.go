// Package util provides the context scoped logger used by the command line
// tools.
package util

import (
	"context"
	"fmt"
	"sync"
)

type Logger struct {
	fs []logFn
	sync.Mutex
}

type logFn func(lvl Lvl, msg string)
type Lvl int

const (
	DEBUG Lvl = iota
	INFO
	WARN
	ERROR
)

func Debugf(ctx context.Context, tpl string, args ...any) { printf(ctx, DEBUG, tpl, args...) }
func Infof(ctx context.Context, tpl string, args ...any)  { printf(ctx, INFO, tpl, args...) }
func Warnf(ctx context.Context, tpl string, args ...any)  { printf(ctx, WARN, tpl, args...) }
func Errorf(ctx context.Context, tpl string, args ...any) { printf(ctx, ERROR, tpl, args...) }

func WithLogger(ctx context.Context, fs ...logFn) context.Context {
	l, ok := getLogger(ctx)
	if !ok {
		return context.WithValue(ctx, Lvl(-1), &Logger{fs: fs})
	}
	l.Lock()
	l.fs = append(l.fs, fs...)
	l.Unlock()
	return ctx
}

func WithLvl(minLvl Lvl, f logFn) logFn {
	return func(lvl Lvl, msg string) {
		if lvl >= minLvl {
			f(lvl, msg)
		}
	}
}

func getLogger(ctx context.Context) (*Logger, bool) {
	l, ok := ctx.Value(Lvl(-1)).(*Logger)
	return l, ok
}

func printf(ctx context.Context, lvl Lvl, tpl string, args ...any) {
	if l, ok := getLogger(ctx); ok {
		l.Lock()
		defer l.Unlock()
		for _, f := range l.fs {
			f(lvl, fmt.Sprintf(tpl, args...))
		}
	}
}

func (l Lvl) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		panic(fmt.Errorf("bad lvl: %d", l))
	}
}
