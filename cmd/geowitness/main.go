/*
Copyright © 2025 Geowitness Authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import "github.com/geowitness/geowitness/pkg/cli"

func main() {
	cli.Execute()
}
