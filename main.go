package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/3NJDGZ/brain-training-api/api"
	gameapi "github.com/3NJDGZ/brain-training-api/api/game"
	api_i "github.com/3NJDGZ/brain-training-api/api/i"
	"github.com/3NJDGZ/brain-training-api/api/identity"
	"github.com/3NJDGZ/brain-training-api/config"
	"github.com/3NJDGZ/brain-training-api/infrastruture/leaderboard"
	"github.com/3NJDGZ/brain-training-api/infrastruture/repo"
	"github.com/3NJDGZ/brain-training-api/infrastruture/token"
	"github.com/3NJDGZ/brain-training-api/service"
	"github.com/3NJDGZ/brain-training-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	userRepo        i.UserRepo
	performanceRepo i.PerformanceRepo
	scoreBoard      i.Leaderboard
	jwtTokenizer    i.Tokenizer
	authService     i.Authenticator
	gameService     i.GameManager
	authController  api_i.Controller
	gameController  api_i.Controller
	router          *api.Router
	appLogger       *log.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Fatalf("%s[FATAL]%s Failed to connect to MongoDB: %v", config.LogErrorColor, config.LogColorReset, err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Fatalf("%s[FATAL]%s MongoDB ping failed: %v", config.LogErrorColor, config.LogColorReset, err)
	}
	appLogger.Printf("%s[INFO]%s Connected to MongoDB", config.LogInfoColor, config.LogColorReset)
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Fatalf("%s[FATAL]%s Redis ping failed: %v", config.LogErrorColor, config.LogColorReset, err)
	}
	appLogger.Printf("%s[INFO]%s Connected to Redis", config.LogInfoColor, config.LogColorReset)
}

func initRepos(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	performanceRepo = repo.NewPerformanceRepo(client, config.Envs.DBName, "performance")
	appLogger.Printf("%s[INFO]%s Repositories initialized", config.LogInfoColor, config.LogColorReset)
}

func initLeaderboard() {
	var err error
	scoreBoard, err = leaderboard.NewRedisLeaderboard(redisClient)
	if err != nil {
		appLogger.Fatalf("%s[FATAL]%s Creating leaderboard: %v", config.LogErrorColor, config.LogColorReset, err)
	}
	appLogger.Printf("%s[INFO]%s Leaderboard initialized", config.LogInfoColor, config.LogColorReset)
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Printf("%s[INFO]%s JWT Tokenizer initialized", config.LogInfoColor, config.LogColorReset)
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, performanceRepo, jwtTokenizer)
	if err != nil {
		appLogger.Fatalf("%s[FATAL]%s Creating auth service: %v", config.LogErrorColor, config.LogColorReset, err)
	}
	appLogger.Printf("%s[INFO]%s Auth service initialized", config.LogInfoColor, config.LogColorReset)
}

func initGameService() {
	gameLogger := log.New(os.Stdout, "[GAME] ", log.LstdFlags)
	var err error
	gameService, err = service.NewGameService(service.GameConfig{
		TileSize:         config.Envs.MazeTileSize,
		Width:            config.Envs.MazeWidth,
		Height:           config.Envs.MazeHeight,
		MinExerciseCells: config.Envs.MinExerciseCells,
		MaxExerciseCells: config.Envs.MaxExerciseCells,
	}, userRepo, performanceRepo, scoreBoard, gameLogger)
	if err != nil {
		appLogger.Fatalf("%s[FATAL]%s Creating game service: %v", config.LogErrorColor, config.LogColorReset, err)
	}
	appLogger.Printf("%s[INFO]%s Game service initialized", config.LogInfoColor, config.LogColorReset)
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	var err error
	gameController, err = gameapi.NewGameController(gameService, scoreBoard)
	if err != nil {
		appLogger.Fatalf("%s[FATAL]%s Creating game controller: %v", config.LogErrorColor, config.LogColorReset, err)
	}
	appLogger.Printf("%s[INFO]%s Controllers initialized", config.LogInfoColor, config.LogColorReset)
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, gameController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Printf("%s[INFO]%s Router initialized", config.LogInfoColor, config.LogColorReset)
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	appLogger = log.New(os.Stdout, "[APP] ", log.LstdFlags)
	gin.SetMode(config.Envs.GinMode)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initRepos(mongoClient)
	initLeaderboard()
	initJWTTokenizer()
	initAuthService()
	initGameService()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Fatalf("%s[FATAL]%s Starting server: %v", config.LogErrorColor, config.LogColorReset, err)
	}
}
