// Package main runs the products table stream handler on AWS Lambda.
//
// The function is subscribed to the products table stream with
// NEW_AND_OLD_IMAGES. STOCKROOM_TABLE_PREFIX must match the prefix the
// tables were written with.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/viper"

	"github.com/jacentio/stockroom/store"
	"github.com/jacentio/stockroom/stream"
)

func main() {
	v := viper.New()
	v.SetEnvPrefix("STOCKROOM")
	v.SetDefault("table_prefix", store.DefaultConfig().TablePrefix)
	v.AutomaticEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	s := store.New(dynamodb.NewFromConfig(cfg), store.Config{
		TablePrefix: v.GetString("table_prefix"),
	})
	h := stream.NewHandler(s, logger)

	lambda.Start(h.HandleReferenceChanges)
}
