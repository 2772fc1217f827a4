package routes

import (
	"WasteNot-Backend/internal/api/handlers"
	"WasteNot-Backend/internal/middleware"
	"WasteNot-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	FoodHandler   handlers.FoodHandler
	AlertHandler  handlers.AlertHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.FoodItems()
	c.Alerts()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))

	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.PermanentlyDeleteFoodItem)

	foodItems.Patch("/:id/status", c.FoodHandler.UpdateFoodItemStatus)
	foodItems.Post("/:id/restore", c.FoodHandler.RestoreFoodItem)
	foodItems.Post("/:id/freshness", c.FoodHandler.ComputeFreshness)
}

func (c *Config) Alerts() {
	alerts := c.App.Group("/api/v1/alerts", c.Middleware.AuthMiddleware(c.JWTService))

	alerts.Get("/generate", c.AlertHandler.GenerateAlerts)
	alerts.Get("", c.AlertHandler.GetAlerts)
	alerts.Put("/:id/read", c.AlertHandler.MarkAlertRead)
	alerts.Delete("", c.AlertHandler.ClearAllAlerts)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Get("/suggestions", c.RecipeHandler.GetRecipeSuggestions)
	recipes.Get("/saved", c.RecipeHandler.GetSavedRecipes)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
