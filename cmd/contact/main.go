package main

import (
	"os"
	"time"

	"go.uber.org/zap"

	"kanam-academy-backend/pkg/contactform"
	"kanam-academy-backend/pkg/logger"
)

func main() {
	if err := logger.Init(logger.Options{Level: "warn", Format: "console", ServiceName: "contact-cli"}); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cli := commandLine{
		out: os.Stdout,
		newTransport: func(endpoint string) contactform.Transport {
			return contactform.NewHTTPTransport(endpoint, 30*time.Second)
		},
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Log.Error("contact command failed", zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}
}
