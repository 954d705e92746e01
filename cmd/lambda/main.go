package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"extract-store/internal/config"
	"extract-store/internal/repository"
	"extract-store/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	blobs, closeBlobs, err := repository.OpenBlobRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("storage init", zap.Error(err))
	}
	defer closeBlobs()

	// Lambda no expone /metrics; las metricas quedan deshabilitadas.
	extractSvc := service.NewExtractService(logger, blobs, cfg.BucketName, service.StorageKeyer{Suffix: cfg.KeySuffix}, nil)
	lambda.Start(newAPIGatewayHandler(extractSvc))
}
