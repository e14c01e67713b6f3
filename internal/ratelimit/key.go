package ratelimit

import (
	"fmt"
	"strings"
)

// KeyForDecision builds a limiter key for the resolved scope.
func KeyForDecision(decision Decision) string {
	if decision.Limit <= 0 {
		return ""
	}
	switch decision.Scope {
	case ScopeUser:
		if decision.UserID == 0 {
			return ""
		}
		return fmt.Sprintf("u:%d", decision.UserID)
	case ScopeAddress:
		addr := strings.TrimSpace(decision.Address)
		if addr == "" {
			return ""
		}
		return "ip:" + addr
	default:
		return ""
	}
}
