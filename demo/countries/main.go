package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/saturnines/nexus-gql/pkg/config"
	"github.com/saturnines/nexus-gql/pkg/errors"
	"github.com/saturnines/nexus-gql/pkg/observability"
	"github.com/saturnines/nexus-gql/pkg/transport/graphql"
)

const defaultQuery = `query Country($code: ID!) { country(code: $code) { name capital currency } }`

func main() {
	configPath := flag.String("config", "demo/countries/countries.yaml", "transport config file")
	queryFile := flag.String("query-file", "", "read the query document from this file")
	code := flag.String("code", "DE", "country code variable")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not loaded:", err)
	}

	cfg, err := config.NewDefaultLoader().Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		log.Fatal("Failed to set up logger:", err)
	}
	defer logger.Sync()

	document := defaultQuery
	if *queryFile != "" {
		raw, err := os.ReadFile(*queryFile)
		if err != nil {
			log.Fatal(err)
		}
		document = string(raw)
	}

	transport, err := graphql.NewFromConfig(cfg, logger)
	if err != nil {
		log.Fatal("Failed to create transport:", err)
	}

	op := graphql.NewRequest(document,
		graphql.WithVariable("code", *code),
		graphql.WithAutoPersistedID(),
	)

	var (
		resp    *graphql.Response
		sendErr error
	)
	task, err := transport.Send(context.Background(), op, func(r *graphql.Response, err error) {
		resp, sendErr = r, err
	})
	if err != nil {
		log.Fatal(err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		logger.Info("interrupted, cancelling request")
		task.Cancel()
	}()

	task.Wait()
	if task.Cancelled() {
		fmt.Println("cancelled")
		return
	}

	if sendErr != nil {
		var terr *graphql.TransportError
		if errors.As(sendErr, &terr) {
			logger.Error("request failed", zap.Stringer("kind", terr.Kind), zap.Int("status", terr.StatusCode))
		}
		log.Fatal(sendErr)
	}

	for _, gqlErr := range resp.Errors() {
		logger.Warn("graphql error", zap.String("message", gqlErr.Message))
	}

	data, _ := resp.Data()
	var pretty interface{}
	_ = json.Unmarshal(data, &pretty)
	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}
