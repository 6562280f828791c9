package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/quillblog/quill/app/models"
	"github.com/quillblog/quill/app/repository"
	"github.com/quillblog/quill/internal/pkg/env"
	"github.com/quillblog/quill/internal/pkg/session"
	"github.com/quillblog/quill/internal/pkg/usercontext"
)

// HandleOAuthCallback completes the Google flow and logs the admin in.
// Login is restricted to the single configured ADMIN_EMAIL; any other
// account is rejected without creating a user record.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	adminEmail := env.GetEnv("ADMIN_EMAIL", "")
	if adminEmail == "" || !strings.EqualFold(u.Email, adminEmail) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "this account is not allowed to sign in",
		})
	}

	userRepo := repository.GetGlobalRepositories().User

	appUser, err := userRepo.GetByEmail(adminEmail)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("db error: %v", err))
	}
	if appUser == nil {
		appUser = &models.User{
			Email:     adminEmail,
			Name:      firstNonEmpty(u.Name, u.NickName, "Admin"),
			Role:      models.ROLE_ADMIN,
			AvatarURL: u.AvatarURL,
		}
		if err := userRepo.Create(appUser); err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("create user failed: %v", err))
		}
	} else {
		// Refresh profile data from the provider on every login
		appUser.Name = firstNonEmpty(u.Name, u.NickName, appUser.Name)
		appUser.AvatarURL = u.AvatarURL
		appUser.Role = models.ROLE_ADMIN
		if err := userRepo.Update(appUser); err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("update user failed: %v", err))
		}
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session init failed")
	}
	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, appUser.ID)
	sess.Set(usercontext.KeyUsername, appUser.Name)
	sess.Set(usercontext.KeyIsAdmin, appUser.IsAdmin())
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session save failed")
	}

	return c.Redirect("/admin/posts", fiber.StatusSeeOther)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
