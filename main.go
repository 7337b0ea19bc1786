package main

import (
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"favorite-app-service/api"
	"favorite-app-service/config"
	"favorite-app-service/data"
	"favorite-app-service/logger"
	"favorite-app-service/model"
	"favorite-app-service/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logr.Sync()

	// The model must be loaded before any listener opens.
	loaded, err := model.Load(model.Options{
		ModelPath:         cfg.ModelPath,
		MetadataPath:      cfg.MetadataPath,
		SharedLibraryPath: cfg.OnnxRuntimeLib,
	})
	if err != nil {
		logr.Fatal("Failed to load model", zap.String("path", cfg.ModelPath), zap.Error(err))
	}
	defer loaded.Close()
	logr.Info("Model loaded",
		zap.String("path", cfg.ModelPath),
		zap.String("kind", loaded.Metadata.Kind),
		zap.Strings("classes", loaded.Metadata.Classes),
	)

	choices, err := data.LoadChoices(cfg.ChoicesPath)
	if err != nil {
		logr.Fatal("Failed to load choices", zap.Error(err))
	}

	page, err := api.NewPage(choices)
	if err != nil {
		logr.Fatal("Failed to parse templates", zap.Error(err))
	}

	inferenceService := service.NewInferenceService(loaded.Scorer,
		service.WithPrecision(cfg.Precision),
		service.WithFinalStep(cfg.ResolveFinalStep(loaded.Metadata.FinalStep)),
		service.WithLogger(logr.Named("inference")),
	)

	restServer := api.NewRouter(inferenceService, page, choices, logr.Named("http"))

	var grpcServer *grpc.Server
	if cfg.GRPCAddr != "" {
		grpcServer = grpc.NewServer()
		api.RegisterFavoriteAppService(grpcServer,
			api.NewFavoriteAppServer(inferenceService, choices, logr.Named("grpc")))

		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logr.Fatal("Failed to listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
		}
		go func() {
			logr.Info("Starting gRPC server", zap.String("addr", cfg.GRPCAddr))
			if err := grpcServer.Serve(lis); err != nil {
				logr.Fatal("Failed to serve gRPC", zap.Error(err))
			}
		}()
	}

	go func() {
		logr.Info("Starting Fiber server", zap.String("addr", cfg.HTTPAddr))
		if err := restServer.Listen(cfg.HTTPAddr); err != nil {
			logr.Fatal("Failed to serve Fiber", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("Shutting down")

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err := restServer.Shutdown(); err != nil {
		logr.Error("Fiber shutdown failed", zap.Error(err))
	}
}
