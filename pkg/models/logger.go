package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration after which a statement is logged as a warning.
const slowQuery = 200 * time.Millisecond

// logger writes gorm's output to zerolog. Statements are logged on debug level,
// failed and slow ones on error and warning level.
type logger struct {
	Logger zerolog.Logger
}

// LogMode is a no-op, the level is controlled by zerolog.
func (l *logger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *logger) Info(_ context.Context, s string, args ...interface{}) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...interface{}) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...interface{}) {
	l.Logger.Error().Msgf(s, args...)
}

func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := map[string]interface{}{
		"sql":      sql,
		"rows":     rows,
		"duration": elapsed,
	}

	switch {
	case err != nil && !expected(err):
		l.Logger.Error().Err(err).Fields(fields).Msg("[GORM] query error")
	case elapsed > slowQuery:
		l.Logger.Warn().Fields(fields).Msg("[GORM] slow query")
	default:
		l.Logger.Debug().Fields(fields).Msg("[GORM] query")
	}
}

// expected reports errors that are outcomes of normal requests: missing
// resources, invalid input and expenses another sync created first.
func expected(err error) bool {
	return errors.Is(err, ErrResourceNotFound) || errors.Is(err, ErrInstanceAlreadyMaterialized) || errors.Is(err, ErrValidation)
}
