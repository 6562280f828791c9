package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/quillblog/quill/internal/pkg/session"
	"github.com/quillblog/quill/internal/pkg/usercontext"
)

// HandleAuthLogout destroys the admin session
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "session_error",
			"message": "logged out (no session)",
		})
	}

	if err := sess.Destroy(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "session_error",
			"message": fmt.Sprintf("something went wrong: %s", err),
		})
	}

	c.Locals(usercontext.KeyFromProtected, false)

	return c.JSON(fiber.Map{"message": "logged out"})
}
