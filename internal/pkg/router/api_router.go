package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/quillblog/quill/app/controllers"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	v1 := api.Group("/v1")
	v1.Get("/posts", controllers.HandleBlogIndex)
	v1.Get("/posts/popular", controllers.HandleBlogPopular)
	v1.Get("/posts/recent", controllers.HandleBlogRecent)
	v1.Get("/posts/:slug", controllers.HandleBlogShow)
	v1.Get("/search", controllers.HandleBlogSearch)
	v1.Get("/categories", controllers.HandleCategoryList)
	v1.Get("/categories/:slug/posts", controllers.HandleBlogCategory)
	v1.Get("/tags", controllers.HandleTagList)
	v1.Get("/tags/:slug/posts", controllers.HandleBlogTag)
	v1.Get("/stats", controllers.HandleSiteStats)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
