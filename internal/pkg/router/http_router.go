package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quillblog/quill/app/controllers"
	"github.com/quillblog/quill/internal/pkg/middleware"
	"github.com/quillblog/quill/internal/pkg/oauth"
	"github.com/quillblog/quill/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth provider
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize admin controllers with repositories
	controllers.InitializeAdminPostController()
	controllers.InitializeAdminTaxonomyController()

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
