// Package main is the entry point for the confsource daemon.
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/kart-io/confsource/internal/confsource"
)

func main() {
	confsource.NewApp().Run()
}
