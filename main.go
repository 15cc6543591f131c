package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"task-manager/backend/handlers"
	"task-manager/backend/logging"
	"task-manager/backend/middleware"
	"task-manager/backend/models"
	"task-manager/backend/repositories"
	"task-manager/backend/services"
)

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
}

// mountResource wires one resource kind end to end: collection, breaker,
// ownership-scoped service and HTTP handler.
func mountResource[T any, P interface {
	*T
	models.Document
}](r *mux.Router, path string, kind services.Kind[T], db *mongo.Database) {
	store := repositories.NewMongoStore[T](db.Collection(kind.Collection), kind.Sort, newBreaker(kind.Collection+"-cb"))
	service := services.NewResourceService[T, P](kind, store)
	handlers.NewResourceHandler[T, P](service).Register(r, path)
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Task Manager backend...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "task_manager"
	}
	if os.Getenv("JWT_SECRET") == "" {
		logging.Logger.Fatal("Event ID: CONFIG_ERROR, Description: JWT_SECRET is not set in the environment variables.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)

	userStore := repositories.NewMongoUserStore(db.Collection("users"), newBreaker("users-cb"))
	if err := userStore.EnsureIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: Failed to create user indexes: %v", err)
	}
	userService := services.NewUserService(userStore)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.JWTAuthMiddleware)

	handlers.NewAuthHandler(userService).Register(api, protected)
	api.HandleFunc("/health", handlers.NewHealthHandler(func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	}).Health).Methods(http.MethodGet)

	mountResource[models.Task, *models.Task](protected, "/tasks", services.TaskKind, db)
	mountResource[models.Todo, *models.Todo](protected, "/todos", services.TodoKind, db)
	mountResource[models.Schedule, *models.Schedule](protected, "/schedules", services.ScheduleKind, db)
	mountResource[models.ShoppingList, *models.ShoppingList](protected, "/shopping", services.ShoppingListKind, db)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "5000"
	}
	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, middleware.EnableCORS(r)); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
