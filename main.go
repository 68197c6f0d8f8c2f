package main

import (
	"os"

	"society-portal-server/routes"
	"society-portal-server/storage"
	"society-portal-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"go.uber.org/zap"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	logger := utils.NewLogger(os.Getenv("ENV"))
	defer logger.Sync()

	db := storage.InitializeDB()
	storage.InitializeRedis()
	routes.Initialize(db, logger)

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
	}

	schedulePages := app.Party("/api/schedule")
	{
		schedulePages.Get("/slots", routes.GetScheduleSlots)
	}

	vendor := app.Party("/api/vendor")
	{
		vendor.Get("/", routes.ListVendors)
		vendor.Get("/{vendorID}/slots", routes.GetVendorSlots)
		vendor.Post("/availability", accessTokenVerifierMiddleware, utils.CallerMiddleware, routes.SetVendorAvailability)
	}

	poll := app.Party("/api/poll")
	{
		poll.Get("/", routes.ListPolls)
		poll.Get("/{id:uint}/results", routes.GetPollResults)
		poll.Post("/{id:uint}/vote", accessTokenVerifierMiddleware, utils.CallerMiddleware, routes.CastPollVote)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/vendors", routes.AdminListVendors)
		admin.Post("/vendors/{vendorID}/verify", routes.AdminSetVerification)
		admin.Get("/verification-logs", routes.AdminListVerificationLogs)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, func(ctx iris.Context) {
		utils.RefreshToken(ctx, routes.LookupUserByEmail)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	logger.Info("server starting", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
