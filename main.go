package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"website-mcp-server/internal/application"
	"website-mcp-server/internal/domain"
	"website-mcp-server/internal/infrastructure"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration; a missing file falls back to defaults.
	config, err := domain.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully")

	// Template catalog provider
	var store domain.TemplateStore
	switch config.Templates.Provider {
	case "sqlite":
		log.Printf("Opening SQLite template catalog at %s", config.Templates.Path)
		sqliteStore, err := infrastructure.NewSQLiteStore(config.Templates.Path)
		if err != nil {
			log.Fatalf("Failed to open template catalog: %v", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
	default:
		store = infrastructure.NewMemoryStore()
	}
	log.Printf("Template catalog initialized (%s provider)", config.Templates.Provider)

	// Website pipeline: generator plus the stubbed deployer
	generator := infrastructure.NewSiteGenerator()
	deployer := infrastructure.NewVercelDeployer(config.Deploy)
	if config.Deploy.Token != "" {
		log.Println("Deploy token configured (unused by the stub deployer)")
	}

	// Tool handlers and router
	catalogHandler := application.NewCatalogHandler(store)
	websiteHandler := application.NewWebsiteHandler(generator, deployer)
	router := application.NewRequestRouter(catalogHandler, websiteHandler)
	log.Printf("Request router initialized with %d tool(s)", len(router.ListAllTools()))

	// Dispatcher
	server := application.NewServer(router, config)

	// Transport
	var transport domain.Transport
	switch config.Transport.Type {
	case "stdio":
		log.Println("Initializing stdio transport")
		transport = domain.NewStdioTransport(server)
	case "http":
		log.Printf("Initializing HTTP transport on %s:%d", config.Transport.HTTP.Host, config.Transport.HTTP.Port)
		transport = application.NewHTTPFront(config, server, websiteHandler)
	default:
		log.Fatalf("Invalid transport type: %s", config.Transport.Type)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	if err := transport.Start(ctx); err != nil {
		log.Fatalf("Failed to start transport: %v", err)
	}
	log.Printf("MCP server started successfully (%s transport)", config.Transport.Type)

	// On stdio, exit when stdin closes; otherwise wait for a signal.
	if stdio, ok := transport.(*domain.StdioTransport); ok {
		select {
		case sig := <-sigChan:
			log.Printf("Received signal: %v", sig)
			cancel()
		case <-stdio.Done():
			log.Println("Input stream closed")
		}
	} else {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
	}

	log.Println("Closing server...")
	if err := transport.Close(); err != nil {
		log.Printf("Error during server shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server shutdown complete")
}
