package main

import (
	"github.com/rise-and-shine/bucketfs/app"
	"github.com/rise-and-shine/bucketfs/cfgloader"
	"github.com/rise-and-shine/bucketfs/observability/logger"
)

func main() {
	cfg := cfgloader.MustLoad[app.Config]()

	err := app.Run(cfg)
	if err != nil {
		logger.Fatalx(err)
	}
}
