package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/example/dollarcard/internal/auth"
	"github.com/example/dollarcard/internal/handler"
	"github.com/example/dollarcard/internal/middleware"
	"github.com/example/dollarcard/internal/models"
	"github.com/example/dollarcard/internal/storage/sqlite"
	"github.com/example/dollarcard/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "./data/cards.db")
	bcryptCost := getEnvInt("BCRYPT_COST", bcrypt.DefaultCost)

	// Initialize SQLite storage
	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	// Bootstrap the credential snapshot. The principal set is fixed for
	// the process lifetime; there is no runtime user management.
	users, err := auth.BootstrapUsers(bcryptCost,
		auth.Credential{Username: "mich", Password: getEnv("MICH_PASSWORD", "12345"), Role: models.RoleCardOwner},
		auth.Credential{Username: "ama", Password: getEnv("AMA_PASSWORD", "12345"), Role: models.RoleCardOwner},
		auth.Credential{Username: "mark", Password: getEnv("MARK_PASSWORD", "12345"), Role: models.RoleNotOwner},
	)
	if err != nil {
		slog.Error("Failed to bootstrap users", "error", err)
		os.Exit(1)
	}
	creds, err := auth.NewSnapshotStore(users)
	if err != nil {
		slog.Error("Failed to build credential store", "error", err)
		os.Exit(1)
	}
	slog.Info("Credential store initialized", "users", len(users))

	if getEnv("DEMO_SEED", "") == "true" {
		if err := seedDemoCards(store); err != nil {
			slog.Error("Failed to seed demo cards", "error", err)
			os.Exit(1)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cards := router.Group("/dollarcards",
		middleware.BasicAuth(creds),
		middleware.RequireRole(models.RoleCardOwner),
	)
	handler.NewCardHandler(store).Register(cards)

	// Wrap with h2c so cleartext HTTP/2 clients work
	h2cHandler := h2c.NewHandler(router, &http2.Server{})

	addr := ":" + port
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
