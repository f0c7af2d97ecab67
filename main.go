package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/simplemaze/api"
	"github.com/beka-birhanu/simplemaze/api/auth"
	api_i "github.com/beka-birhanu/simplemaze/api/i"
	mazeapi "github.com/beka-birhanu/simplemaze/api/maze"
	"github.com/beka-birhanu/simplemaze/config"
	"github.com/beka-birhanu/simplemaze/config/settings"
	"github.com/beka-birhanu/simplemaze/infrastruture/cache"
	"github.com/beka-birhanu/simplemaze/infrastruture/lock"
	"github.com/beka-birhanu/simplemaze/infrastruture/repo"
	"github.com/beka-birhanu/simplemaze/infrastruture/token"
	"github.com/beka-birhanu/simplemaze/logger"
	"github.com/beka-birhanu/simplemaze/service"
	"github.com/beka-birhanu/simplemaze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const lockExpiry = 30 * time.Second

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	mazeRepo       i.MazeRepo
	routeCache     i.RouteCache
	mazeLocker     i.Locker
	jwtTokenizer   i.Tokenizer
	authorizer     i.Authorizer
	mazeService    i.MazeManager
	mazeController api_i.Controller
	router         *api.Router
	appLogger      *logger.Logger
	mazeDefaults   *settings.Settings
)

func initSettings() {
	var err error
	mazeDefaults, err = settings.New(config.Envs.MazeWidth, config.Envs.MazeHeight, config.Envs.MazeCellSize, config.Envs.MazeAlgorithm)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Invalid maze defaults: %v", err))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Maze defaults: Size=%dx%d CellSize=%d Algorithm=%s",
		mazeDefaults.Width(), mazeDefaults.Height(), mazeDefaults.CellSize(), mazeDefaults.Algorithm()))
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMazeRepo(client *mongo.Client) {
	mazeRepo = repo.NewMazeRepo(client, config.Envs.DBName, "mazes")
	appLogger.Info("Maze repository initialized")
}

func initRouteCache(client *redis.Client) {
	routeCache = cache.NewRedisRouteCache(client, config.Envs.RouteCacheTTL)
	appLogger.Info("Route cache initialized")
}

func initLocker(client *redis.Client) {
	mazeLocker = lock.NewRedisLocker(client, lockExpiry)
	appLogger.Info("Maze locker initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthorizer() {
	var err error
	authorizer, err = service.NewAuth(jwtTokenizer, time.Duration(config.Envs.ShareTokenTTL)*time.Second)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating authorizer: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Authorizer initialized")
}

func initMazeService() {
	mazeLogger, err := logger.New("MAZE", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze logger: %v", err))
		os.Exit(1)
	}

	mazeService, err = service.NewMazeService(mazeRepo, routeCache, mazeLocker, authorizer, mazeLogger, &service.Options{
		Defaults: mazeDefaults,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initMazeController() {
	apiLogger, err := logger.New("API", config.ColorBlue, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating api logger: %v", err))
		os.Exit(1)
	}

	mazeController, err = mazeapi.NewMazeController(mazeService, apiLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(a i.Authorizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: auth.Authorize(a),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating app logger: %v\n", err)
		os.Exit(1)
	}

	initSettings()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initMazeRepo(mongoClient)
	initRouteCache(redisClient)
	initLocker(redisClient)
	initJWTTokenizer()
	initAuthorizer()
	initMazeService()
	initMazeController()
	initRouter(authorizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
