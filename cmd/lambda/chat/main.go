package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"fitcoach-api/internal/config"
	"fitcoach-api/pkg/lambda"
	"fitcoach-api/pkg/server"
)

var container *server.Container

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	container, err = server.NewContainer(cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func main() {
	awslambda.Start(lambda.Adapt(container.ChatHandler.Handle))
}
