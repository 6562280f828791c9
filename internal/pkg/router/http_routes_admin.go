package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quillblog/quill/app/controllers"
	"github.com/quillblog/quill/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin)

	// Post management
	postController := controllers.GetAdminPostController()
	adminGroup.Get("/posts", postController.HandleAdminPosts)
	adminGroup.Post("/posts/store", postController.HandleAdminPostStore)
	adminGroup.Get("/posts/edit/:id", postController.HandleAdminPostEdit)
	adminGroup.Post("/posts/update/:id", postController.HandleAdminPostUpdate)
	adminGroup.Post("/posts/publish/:id", postController.HandleAdminPostPublish)
	adminGroup.Post("/posts/delete/:id", postController.HandleAdminPostDelete)

	// Taxonomy management
	taxonomyController := controllers.GetAdminTaxonomyController()
	adminGroup.Get("/categories", taxonomyController.HandleAdminCategories)
	adminGroup.Post("/categories/store", taxonomyController.HandleAdminCategoryStore)
	adminGroup.Post("/categories/update/:id", taxonomyController.HandleAdminCategoryUpdate)
	adminGroup.Post("/categories/delete/:id", taxonomyController.HandleAdminCategoryDelete)
	adminGroup.Get("/tags", taxonomyController.HandleAdminTags)
	adminGroup.Post("/tags/store", taxonomyController.HandleAdminTagStore)
	adminGroup.Post("/tags/update/:id", taxonomyController.HandleAdminTagUpdate)
	adminGroup.Post("/tags/delete/:id", taxonomyController.HandleAdminTagDelete)
}
