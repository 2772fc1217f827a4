package config

import (
	"os"
	"strconv"
	"time"

	"WasteNot-Backend/internal/api/handlers"
	"WasteNot-Backend/internal/api/routes"
	"WasteNot-Backend/internal/middleware"
	"WasteNot-Backend/internal/utils"
	"WasteNot-Backend/pkg/alert"
	"WasteNot-Backend/pkg/food"
	"WasteNot-Backend/pkg/freshness"
	"WasteNot-Backend/pkg/jwt"
	"WasteNot-Backend/pkg/llm"
	"WasteNot-Backend/pkg/recipe"
	"WasteNot-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// freshness engine
	classifier := freshness.NewClassifier(freshness.DefaultKeywords())
	estimator := freshness.NewEstimator(
		llm.NewGeminiService(),
		freshness.NewCalculator(classifier),
		freshness.NewGuardrail(classifier),
		classifier,
	)

	// Repository
	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)
	alertRepository := alert.NewAlertRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	foodService := food.NewFoodService(foodRepository, estimator)
	alertService := alert.NewAlertService(
		alertRepository,
		foodRepository,
		userRepository,
		alert.NewMailNotifier(),
		classifier,
		alertRefreshInterval(),
	)
	recipeService := recipe.NewRecipeService(recipeRepository, foodRepository, llm.NewGeminiService())

	// Handler
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	alertHandler := handlers.NewAlertHandler(alertService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// periodic alert runs
	scheduler := alert.NewScheduler(alertService, alertCronInterval())
	scheduler.Start()

	// routes
	routesConfig := routes.Config{
		App:           app,
		FoodHandler:   foodHandler,
		AlertHandler:  alertHandler,
		RecipeHandler: recipeHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func alertRefreshInterval() time.Duration {
	minutes, err := strconv.Atoi(utils.GetConfig("ALERT_REFRESH_MINUTES"))
	if err != nil || minutes < 1 {
		minutes = 10
	}
	return time.Duration(minutes) * time.Minute
}

func alertCronInterval() time.Duration {
	hours, err := strconv.Atoi(utils.GetConfig("ALERT_CRON_HOURS"))
	if err != nil || hours < 1 {
		hours = 6
	}
	return time.Duration(hours) * time.Hour
}
