package logger

import (
	"io"
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// ZerologAdapter implements Logger on top of zerolog
type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	emit(z.logger.Info(), component, message, fields)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	emit(z.logger.Error().Err(err), component, "operation failed", fields)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	emit(z.logger.Warn(), component, message, fields)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	emit(z.logger.Debug(), component, message, fields)
}

// Level reports the minimum level that is written.
func (z *ZerologAdapter) Level() zerolog.Level {
	return z.logger.GetLevel()
}

// emit writes fields in key order so console lines are stable.
func emit(event *zerolog.Event, component, message string, fields map[string]interface{}) {
	event = event.Str("component", component)
	keys := lo.Keys(fields)
	slices.Sort(keys)
	for _, k := range keys {
		event = event.Interface(k, fields[k])
	}
	event.Msg(message)
}
