package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/df07/go-optics-workbench/pkg/material"
	"github.com/df07/go-optics-workbench/pkg/workbench"
	"github.com/df07/go-optics-workbench/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	catalogPath := flag.String("catalog", "", "Optional YAML material catalog merged over the built-in one")
	dev := flag.Bool("dev", false, "Use a human-readable development logger")
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Printf("Error creating logger: %v", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	catalog := material.Default()
	if *catalogPath != "" {
		extra, err := material.LoadFile(*catalogPath)
		if err != nil {
			sugar.Errorw("failed to load material catalog", "path", *catalogPath, "error", err)
			os.Exit(1)
		}
		catalog = catalog.Merge(extra)
		sugar.Infow("merged material catalog", "path", *catalogPath, "materials", catalog.Len())
	}

	bench := workbench.New(workbench.WithCatalog(catalog), workbench.WithLogger(sugar))
	webServer := server.New(bench, sugar, *port)

	sugar.Infow("optics workbench web server", "url", "http://localhost", "port", *port)

	if err := webServer.Start(); err != nil {
		sugar.Errorw("server stopped", "error", err)
		os.Exit(1)
	}
}
