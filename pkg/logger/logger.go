package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Logger é a interface para logging estruturado em pares chave/valor
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// SimpleLogger é uma implementação de Logger sobre o pacote log da stdlib
type SimpleLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	warnLogger  *log.Logger
	debugOn     bool
}

// NewLogger cria uma nova instância de Logger.
// Mensagens de debug só são emitidas quando LOG_LEVEL=debug.
func NewLogger() Logger {
	return &SimpleLogger{
		infoLogger:  log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime),
		errorLogger: log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime),
		debugLogger: log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime),
		warnLogger:  log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime),
		debugOn:     strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug"),
	}
}

// format monta a mensagem com os pares chave=valor ao final
func format(msg string, keysAndValues []interface{}) string {
	if len(keysAndValues) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := keysAndValues[i]
		if i+1 < len(keysAndValues) {
			b.WriteString(fmt.Sprintf(" %v=%v", key, keysAndValues[i+1]))
		} else {
			b.WriteString(fmt.Sprintf(" %v=?", key))
		}
	}
	return b.String()
}

// Info registra uma mensagem de informação
func (l *SimpleLogger) Info(msg string, keysAndValues ...interface{}) {
	l.infoLogger.Println(format(msg, keysAndValues))
}

// Error registra uma mensagem de erro
func (l *SimpleLogger) Error(msg string, keysAndValues ...interface{}) {
	l.errorLogger.Println(format(msg, keysAndValues))
}

// Debug registra uma mensagem de debug
func (l *SimpleLogger) Debug(msg string, keysAndValues ...interface{}) {
	if !l.debugOn {
		return
	}
	l.debugLogger.Println(format(msg, keysAndValues))
}

// Warn registra uma mensagem de aviso
func (l *SimpleLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.warnLogger.Println(format(msg, keysAndValues))
}
