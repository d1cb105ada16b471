package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"recipebox/internal/auth"
	"recipebox/internal/config"
	"recipebox/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	recipeHandler *handler.RecipeHandler,
	tagHandler *handler.TagHandler,
	ingredientHandler *handler.IngredientHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Locally stored recipe images
	if cfg.StorageDriver == "local" {
		e.Static(cfg.MediaBaseURL, cfg.MediaDir)
	}

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Profile routes
	secured.GET("/me", userHandler.Me)
	secured.PATCH("/me", userHandler.UpdateMe)

	// Recipe routes
	secured.GET("/recipes", recipeHandler.List)
	secured.POST("/recipes", recipeHandler.Create)
	secured.GET("/recipes/:id", recipeHandler.Get)
	secured.PUT("/recipes/:id", recipeHandler.Put)
	secured.PATCH("/recipes/:id", recipeHandler.Patch)
	secured.DELETE("/recipes/:id", recipeHandler.Delete)
	secured.POST("/recipes/:id/image", recipeHandler.UploadImage)

	// Tag routes
	secured.GET("/tags", tagHandler.List)
	secured.POST("/tags", tagHandler.Create)
	secured.GET("/tags/:id", tagHandler.Get)
	secured.PATCH("/tags/:id", tagHandler.Patch)
	secured.DELETE("/tags/:id", tagHandler.Delete)

	// Ingredient routes
	secured.GET("/ingredients", ingredientHandler.List)
	secured.POST("/ingredients", ingredientHandler.Create)
	secured.GET("/ingredients/:id", ingredientHandler.Get)
	secured.PATCH("/ingredients/:id", ingredientHandler.Patch)
	secured.DELETE("/ingredients/:id", ingredientHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
