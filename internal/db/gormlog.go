package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"swipe-go/pkg/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// queryLogger forwards gorm output to the application logger. Missing rows
// are expected and never logged.
type queryLogger struct {
	log           logger.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newQueryLogger(log logger.Logger) *queryLogger {
	return &queryLogger{log: log.With("component", "gorm"), level: gormlogger.Warn, slowThreshold: slowQueryThreshold}
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *queryLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.log.Info("db: " + fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Warn("db: " + fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.log.Error("db: " + fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.log.InternalError("db: query failed", err, "sql", sql, "rows", rows, "elapsed", elapsed)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warn("db: slow query", "sql", sql, "rows", rows, "elapsed", elapsed, "threshold", l.slowThreshold)
	case l.level >= gormlogger.Info && l.log.Enabled(slog.LevelDebug):
		sql, rows := fc()
		l.log.Debug("db: query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
