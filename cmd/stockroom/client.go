package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"

	"github.com/jacentio/stockroom/cascade"
	"github.com/jacentio/stockroom/store"
	"github.com/jacentio/stockroom/warehouse"
)

// app holds what every command needs, built once per invocation.
type app struct {
	logger   *slog.Logger
	store    *store.Store
	products *warehouse.ProductService
	articles *warehouse.ArticleService
}

func newLogger(level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run", uuid.NewString()[:8])
}

// newDynamoClient loads AWS credentials the usual way. A non-empty
// endpoint points the client at DynamoDB Local.
func newDynamoClient(ctx context.Context, s settings) (*dynamodb.Client, error) {
	var opts []func(*config.LoadOptions) error
	if s.Region != "" {
		opts = append(opts, config.WithRegion(s.Region))
	}
	if s.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(s.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
		}
	}), nil
}

func newApp(client store.API, s settings, logger *slog.Logger) *app {
	st := store.New(client, store.Config{TablePrefix: s.TablePrefix},
		cascade.NewEngine(cascade.DefaultRegistry, logger))
	return &app{
		logger:   logger,
		store:    st,
		products: warehouse.NewProductService(st, logger),
		articles: warehouse.NewArticleService(st, logger),
	}
}
