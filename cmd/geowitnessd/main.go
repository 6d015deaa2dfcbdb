/*
Copyright © 2025 Geowitness Authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"log"
	"os"

	"github.com/geowitness/geowitness/pkg/api"
	"github.com/geowitness/geowitness/pkg/config"
	"github.com/geowitness/geowitness/pkg/logging"
	"github.com/geowitness/geowitness/pkg/version"
)

func main() {
	logging.SetDefaultStructuredLogger("geowitnessd", version.BuildVersion)

	cfg, err := config.Load(os.Getenv("GEOWITNESS_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	if err := api.Serve(cfg); err != nil {
		log.Fatal(err)
	}
}
