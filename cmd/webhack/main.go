// Package main provides the webhack command line.
//
// Usage:
//
//	webhack audit https://example.com --max-pages 10 --format markdown
//	webhack version
package main

func main() {
	Execute()
}
