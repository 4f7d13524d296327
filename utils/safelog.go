// utils/safelog.go
// ============================================================================
// SAFE LOGGING - masks personal identifiers in production logs
// ============================================================================
// Bill uploads carry emails, customer numbers and meter numbers. In
// production these are masked before they reach the log stream; in
// development everything is logged verbatim.
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

var (
	// IsProduction enables masking.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	LogLevel = getLogLevel()
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func getLogLevel() int {
	level := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch level {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// Labeled identifiers as they appear in bill text and API payloads.
	customerIDPattern = regexp.MustCompile(`(?i)(customer|consumer|account)[\s_]*(id|no|number)["':\s]*[A-Z0-9]{4,}`)
	meterPattern      = regexp.MustCompile(`(?i)(meter|device)[\s_]*(no|number)["':\s]*[A-Z0-9]{4,}`)
)

// Mask redacts identifiers when running in production.
func Mask(message string) string {
	if !IsProduction {
		return message
	}
	message = emailPattern.ReplaceAllString(message, "***@***")
	message = customerIDPattern.ReplaceAllString(message, "$1 $2: ****")
	message = meterPattern.ReplaceAllString(message, "$1 $2: ****")
	return message
}

func SafeDebug(format string, args ...interface{}) {
	if LogLevel <= LogLevelDebug {
		log.Print("🔍 " + Mask(fmt.Sprintf(format, args...)))
	}
}

func SafeInfo(format string, args ...interface{}) {
	if LogLevel <= LogLevelInfo {
		log.Print("ℹ️ " + Mask(fmt.Sprintf(format, args...)))
	}
}

func SafeWarn(format string, args ...interface{}) {
	if LogLevel <= LogLevelWarn {
		log.Print("⚠️ " + Mask(fmt.Sprintf(format, args...)))
	}
}

func SafeError(format string, args ...interface{}) {
	if LogLevel <= LogLevelError {
		log.Print("❌ " + Mask(fmt.Sprintf(format, args...)))
	}
}
