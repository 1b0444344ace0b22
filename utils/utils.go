package utils

import (
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"os"
	"path/filepath"
)

// NewLog opens (or creates) dir/name.log and returns a logger appending to it.
func NewLog(dir, name string) *zap.SugaredLogger {
	fileName := filepath.Join(dir, fmt.Sprintf("%s.log", name))
	file, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		panic(err)
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(file), zapcore.DebugLevel)
	return zap.New(core).Sugar().Named(name)
}

// NopLog is the default for components constructed without a logger.
func NopLog() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
