package middlewares

import (
	"strings"

	t_token "taskflow_realtime/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	//QueryToken token in query name
	QueryToken = "auth"

	//CookieToken token in cookie name
	CookieToken = "auth_token"

	//TokenMemberID get member form token, set c.locals name
	TokenMemberID = "MemberID"
	//TokenRole get role form token, set c.locals name
	TokenRole = "role"
)

// JWTMiddleware validates JWT from query, cookie or Authorization bearer header
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Query(QueryToken)

		// 如果查詢參數中沒有 token，則嘗試從 Cookie 中獲取
		if tokenStr == "" {
			tokenStr = c.Cookies(CookieToken)
		}
		if tokenStr == "" {
			tokenStr = strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		}

		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		claims, err := t_token.ParseJWT(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(TokenMemberID, claims.MemberID)
		c.Locals(TokenRole, claims.Role)

		return c.Next()
	}
}

// MemberID read verified member id set by JWTMiddleware
func MemberID(c *fiber.Ctx) string {
	id, _ := c.Locals(TokenMemberID).(string)
	return id
}
