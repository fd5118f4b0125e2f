package genclient

import "strings"

// ErrorKind classifies a failed generation call for user-facing messaging.
type ErrorKind string

// Error kinds, in the order Classify checks them.
const (
	ErrTimeout ErrorKind = "timeout"
	ErrNetwork ErrorKind = "network"
	ErrServer  ErrorKind = "server"
	ErrUnknown ErrorKind = "unknown"
)

// Classify maps a generation error to its kind by inspecting the message.
// Timeout is checked first so that cancelled requests whose wrapped transport
// errors also mention the network are reported as timeouts.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrUnknown
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") || strings.Contains(msg, "deadline exceeded"):
		return ErrTimeout
	case strings.Contains(msg, "network") || strings.Contains(msg, "fetch") || strings.Contains(msg, "connection refused"):
		return ErrNetwork
	case strings.Contains(msg, "500") || strings.Contains(msg, "server"):
		return ErrServer
	default:
		return ErrUnknown
	}
}

// UserMessage returns the user-facing message for an error kind.
func UserMessage(kind ErrorKind) string {
	switch kind {
	case ErrTimeout:
		return "The request took too long to complete. Please try again."
	case ErrNetwork:
		return "We couldn't reach the server. Check your connection and try again."
	case ErrServer:
		return "Something went wrong on our end. Please try again in a moment."
	default:
		return "Something unexpected went wrong. Please try again."
	}
}
