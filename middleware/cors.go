package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	corsAllowHeaders = "Content-Type,Authorization"
	corsAllowMethods = "GET,POST,DELETE,OPTIONS"
)

// CORS answers preflight requests for any origin and also advertises the
// allowed methods and headers on every other response.
func CORS() fiber.Handler {
	preflight := cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: corsAllowHeaders,
		AllowMethods: corsAllowMethods,
	})

	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
		c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
		return preflight(c)
	}
}
