// Command server runs the webhack HTTP API.
//
// @title       webhack API
// @version     1.0
// @description Crawls a site and scores its pages for SEO, security headers, performance and accessibility.
// @BasePath    /
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Priyanka-kale21/webhack/internal/app"
)

// run is a variable so it can be overridden in tests.
var run = app.Run

// exitFunc is a variable wrapping os.Exit so it can be overridden in tests.
var exitFunc = os.Exit

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("error: %v\n", err)
		exitFunc(1)
		return
	}
	fmt.Println("Server shut down cleanly")
}
