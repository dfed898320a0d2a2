package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	XAgentID = "x-agent-id"

	agentIDContextKey = "agent_id"
)

// AgentIdentity resolves the acting support agent for the request and stores
// the id in the echo context. The id comes from the X-Agent-ID header when
// present, else defaultID. This is the single place a real authentication
// mechanism would plug in; everything below it receives the id as a
// parameter.
func AgentIdentity(defaultID uint) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := defaultID
			if v := c.Request().Header.Get(XAgentID); v != "" {
				parsed, err := strconv.ParseUint(v, 10, 32)
				if err != nil || parsed == 0 {
					return echo.NewHTTPError(http.StatusBadRequest, "invalid "+XAgentID+" header")
				}
				id = uint(parsed)
			}
			c.Set(agentIDContextKey, id)
			return next(c)
		}
	}
}

// AgentID returns the id stored by AgentIdentity, zero when absent.
func AgentID(c echo.Context) uint {
	if id, ok := c.Get(agentIDContextKey).(uint); ok {
		return id
	}
	return 0
}

// GetUserID exposes the agent id as a string for request logging.
func GetUserID(c echo.Context) string {
	id := AgentID(c)
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}
