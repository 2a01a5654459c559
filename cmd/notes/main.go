package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/sagacious/sagacious/handlers"
	"github.com/sagacious/sagacious/internal/config"
	"github.com/sagacious/sagacious/internal/database"
	"github.com/sagacious/sagacious/internal/note"
	"github.com/sagacious/sagacious/pkg/logger"
	"github.com/sagacious/sagacious/pkg/model"
	"github.com/sagacious/sagacious/pkg/web"
)

// Standalone notes service: just the notes API over MongoDB (or the
// in-memory store when MONGODB_URI is unset). No auth, cache, or metrics;
// the full composition lives in the root main.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "sagacious"
	}

	var store model.Store
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		mcfg := config.MongoDBConfig{URI: uri, Database: dbName, Timeout: 10 * time.Second}
		client, err := database.ConnectOnce(context.Background(), mcfg)
		if err != nil {
			logger.Warnf("failed to connect to MongoDB: %v", err)
		} else {
			defer func() { _ = client.Disconnect(context.Background()) }()
			store = model.NewMongoStore(client)
		}
	}
	if store == nil {
		store = model.NewMemoryStore()
		logger.Warn("using in-memory store; data will not survive restarts")
	}

	repo := model.NewRepository(store, model.NewBinding(dbName, "notes"))
	svc := note.NewService(repo)

	server := web.New()
	handlers.NewNoteHandler(svc, nil).Register(server)

	port := web.DefaultPort
	if v := os.Getenv("NOTES_SERVICE_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			logger.Fatalf("invalid NOTES_SERVICE_PORT %q: %v", v, err)
		}
		port = p
	}

	logger.Infof("starting standalone notes service on port %d", port)
	if err := server.RunPort(port); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
