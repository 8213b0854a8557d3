// utils/safelog.go
// ============================================================================
// SAFE LOGGING - Masque les données sensibles en production
// ============================================================================
// Level-filtered logging helpers. In production, amounts, emails and full
// transaction IDs are masked before anything reaches the log output.
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

var (
	// IsProduction enables masking of sensitive values.
	IsProduction = detectProduction()

	// LogLevel filters output (DEBUG, INFO, WARN, ERROR).
	LogLevel = ParseLogLevel(os.Getenv("LOG_LEVEL"))
)

// Niveaux de log
const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func detectProduction() bool {
	return os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"
}

// ParseLogLevel maps a LOG_LEVEL value to a level; unknown values mean INFO.
func ParseLogLevel(level string) int {
	switch strings.ToUpper(strings.TrimSpace(level)) {
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

// ConfigureLogging overrides the environment-derived settings.
func ConfigureLogging(production bool, level string) {
	IsProduction = production
	LogLevel = ParseLogLevel(level)
}

// ============================================================================
// PATTERNS DE MASQUAGE
// ============================================================================

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Montants avec devise
	amountWithCurrencyRegex = regexp.MustCompile(`\b\d+([.,]\d{1,2})?\s*(€|EUR|CHF|GBP|USD|£|\$)`)

	uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// ============================================================================
// FONCTIONS DE MASQUAGE
// ============================================================================

// MaskString masks sensitive data inside a free-form message.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := emailRegex.ReplaceAllString(input, "***@***.***")
	result = amountWithCurrencyRegex.ReplaceAllString(result, "***")
	return maskUUIDs(result)
}

func maskUUIDs(s string) string {
	return uuidRegex.ReplaceAllStringFunc(s, func(uuid string) string {
		return uuid[:8] + "..."
	})
}

// MaskAmount masque un montant financier
func MaskAmount(amount float64) string {
	if IsProduction {
		return "***"
	}
	return fmt.Sprintf("%.2f", amount)
}

// MaskID keeps the first 8 characters of an ID in production.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// ============================================================================
// FONCTIONS DE LOGGING SÉCURISÉES
// ============================================================================

func SafeDebug(format string, args ...interface{}) {
	if LogLevel > LogLevelDebug {
		return
	}
	log.Printf("[DEBUG] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeInfo(format string, args ...interface{}) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[INFO] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeWarn(format string, args ...interface{}) {
	if LogLevel > LogLevelWarn {
		return
	}
	log.Printf("[WARN] %s", MaskString(fmt.Sprintf(format, args...)))
}

// SafeError is never filtered.
func SafeError(format string, args ...interface{}) {
	log.Printf("[ERROR] %s", MaskString(fmt.Sprintf(format, args...)))
}

// ============================================================================
// FONCTIONS DE LOGGING MÉTIER SPÉCIFIQUES
// ============================================================================

// LogTransactionAction logs a mutation without exposing the amount in production.
func LogTransactionAction(action string, id string, txType string, amount float64) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[Transaction] %s - ID: %s Type: %s Amount: %s",
		action,
		MaskID(id),
		txType,
		MaskAmount(amount))
}

// LogAPIRequest logs a request line. IDs in the path are shortened in production.
func LogAPIRequest(method string, path string, clientIP string, statusCode int, duration string) {
	if LogLevel > LogLevelInfo {
		return
	}
	if IsProduction {
		path = maskUUIDs(path)
	}
	log.Printf("[API] %s %s - Client: %s Status: %d Duration: %s",
		method,
		path,
		clientIP,
		statusCode,
		duration)
}

// LogWebSocket log une action WebSocket
func LogWebSocket(action string, clientIP string) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[WS] %s - Client: %s", action, clientIP)
}

// ============================================================================
// FONCTIONS UTILITAIRES
// ============================================================================

func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

// LogStartup prints the startup banner.
func LogStartup(appName string, version string, port string) {
	log.Printf("🚀 %s v%s starting...", appName, version)
	log.Printf("   Mode: %s", GetEnvMode())
	log.Printf("   Port: %s", port)
	log.Printf("   Log Level: %d", LogLevel)
	if IsProduction {
		log.Printf("   ⚠️  Production mode: Sensitive data will be masked in logs")
	}
}
