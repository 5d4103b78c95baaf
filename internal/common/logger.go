package common

import (
	"io"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. The json format routes slog records through a zap
// production core; text uses slog's own text handler on w.
// The returned func flushes buffered output and must be called before exit.
func NewLogger(cfg LogConfig, w io.Writer) (*slog.Logger, func()) {
	if w == nil {
		w = os.Stdout
	}

	if cfg.Format == "text" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level = slog.LevelInfo
		}
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), func() {}
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), level)
	zl := zap.New(core)

	logger := slog.New(zapslog.NewHandler(core, zapslog.WithCaller(true)))
	return logger, func() { _ = zl.Sync() }
}
