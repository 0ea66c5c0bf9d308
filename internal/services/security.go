package services

import (
	"fmt"
	"log"
	"os"
	"time"
)

// SecurityLogger appends auth events (logins, registrations, failures) to
// a local audit file.
type SecurityLogger struct {
	file *os.File
}

// NewSecurityLogger opens the audit file; a nil-file logger is returned on
// failure and silently drops events.
func NewSecurityLogger() *SecurityLogger {
	file, err := os.OpenFile("security.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Could not open security log: %v", err)
		return &SecurityLogger{}
	}
	return &SecurityLogger{file: file}
}

// LogAuthEvent records one auth event with the client address.
func (sl *SecurityLogger) LogAuthEvent(eventType, details, ipAddress string) {
	if sl.file == nil {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf("[%s] %s - %s - IP: %s\n", timestamp, eventType, details, ipAddress)
	if _, err := sl.file.WriteString(entry); err != nil {
		log.Printf("Security log write failed: %v", err)
	}
}

// Close closes the audit file.
func (sl *SecurityLogger) Close() {
	if sl.file != nil {
		sl.file.Close()
	}
}
