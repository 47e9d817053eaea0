package middleware

import (
	"io"

	applog "github.com/darkkaiser/contenthub-server/pkg/log"
	"github.com/labstack/gommon/log"
)

// Logger Echo 내부 로그(github.com/labstack/gommon/log.Logger)를 애플리케이션 로거로 전달하는 어댑터입니다.
type Logger struct {
	*applog.Logger
}

func (l Logger) Output() io.Writer {
	return l.Logger.Out
}

func (l Logger) SetOutput(w io.Writer) {
	l.Logger.SetOutput(w)
}

// Prefix, SetPrefix, SetHeader Echo 전용 출력 형식 기능은 사용하지 않습니다.
func (l Logger) Prefix() string { return "" }

func (l Logger) SetPrefix(string) {}

func (l Logger) SetHeader(string) {}

// Level 애플리케이션 로그 레벨을 Echo 로그 레벨로 변환합니다.
// 대응하는 레벨이 없는 Trace/Fatal/Panic은 OFF로 취급합니다.
func (l Logger) Level() log.Lvl {
	switch l.Logger.GetLevel() {
	case applog.DebugLevel:
		return log.DEBUG
	case applog.InfoLevel:
		return log.INFO
	case applog.WarnLevel:
		return log.WARN
	case applog.ErrorLevel:
		return log.ERROR
	default:
		return log.OFF
	}
}

// SetLevel Echo 로그 레벨을 애플리케이션 로그 레벨로 변환하여 설정합니다. OFF는 무시합니다.
func (l Logger) SetLevel(lvl log.Lvl) {
	switch lvl {
	case log.DEBUG:
		l.Logger.SetLevel(applog.DebugLevel)
	case log.INFO:
		l.Logger.SetLevel(applog.InfoLevel)
	case log.WARN:
		l.Logger.SetLevel(applog.WarnLevel)
	case log.ERROR:
		l.Logger.SetLevel(applog.ErrorLevel)
	}
}

func (l Logger) Print(i ...any)                 { l.Logger.Print(i...) }
func (l Logger) Printf(format string, a ...any) { l.Logger.Printf(format, a...) }
func (l Logger) Printj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Print() }

func (l Logger) Debug(i ...any)                 { l.Logger.Debug(i...) }
func (l Logger) Debugf(format string, a ...any) { l.Logger.Debugf(format, a...) }
func (l Logger) Debugj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Debug() }

func (l Logger) Info(i ...any)                 { l.Logger.Info(i...) }
func (l Logger) Infof(format string, a ...any) { l.Logger.Infof(format, a...) }
func (l Logger) Infoj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Info() }

func (l Logger) Warn(i ...any)                 { l.Logger.Warn(i...) }
func (l Logger) Warnf(format string, a ...any) { l.Logger.Warnf(format, a...) }
func (l Logger) Warnj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Warn() }

func (l Logger) Error(i ...any)                 { l.Logger.Error(i...) }
func (l Logger) Errorf(format string, a ...any) { l.Logger.Errorf(format, a...) }
func (l Logger) Errorj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Error() }

func (l Logger) Fatal(i ...any)                 { l.Logger.Fatal(i...) }
func (l Logger) Fatalf(format string, a ...any) { l.Logger.Fatalf(format, a...) }
func (l Logger) Fatalj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Fatal() }

func (l Logger) Panic(i ...any)                 { l.Logger.Panic(i...) }
func (l Logger) Panicf(format string, a ...any) { l.Logger.Panicf(format, a...) }
func (l Logger) Panicj(j log.JSON)              { l.Logger.WithFields(applog.Fields(j)).Panic() }
