// Package main provides the entry point for the exotimeline CLI.
//
// exotimeline downloads the Open Exoplanet Catalogue, keeps the planets with
// a known mass, semi-major axis and discovery year, and renders an animation
// of the discoveries over time.
//
// Usage:
//
//	exotimeline fetch
//	exotimeline render --output frames
//	exotimeline history
//
// See --help for all available options.
package main

func main() {
	Execute()
}
