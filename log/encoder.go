package log

import (
	"go.uber.org/zap/zapcore"
)

type Level int8

const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	WarnLevel  = Level(zapcore.WarnLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
	FatalLevel = Level(zapcore.FatalLevel)
	PanicLevel = Level(zapcore.PanicLevel)
)

type LevelEncoder func(zapcore.Level, zapcore.PrimitiveArrayEncoder)

type CallerEncoder func(zapcore.EntryCaller, zapcore.PrimitiveArrayEncoder)

type OutputEncoder func(zapcore.EncoderConfig) zapcore.Encoder

var (
	//BracketLevelEncoder encodes the level like [INFO]
	BracketLevelEncoder LevelEncoder = func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + level.CapitalString() + "]")
	}
	CapitalLevelEncoder = LevelEncoder(zapcore.CapitalLevelEncoder)

	ShortCallerEncoder = CallerEncoder(zapcore.ShortCallerEncoder)
	FullCallerEncoder  = CallerEncoder(zapcore.FullCallerEncoder)

	JsonOutputEncoder OutputEncoder = func(config zapcore.EncoderConfig) zapcore.Encoder {
		return zapcore.NewJSONEncoder(config)
	}
	ConsoleOutputEncoder OutputEncoder = func(config zapcore.EncoderConfig) zapcore.Encoder {
		return zapcore.NewConsoleEncoder(config)
	}
)
