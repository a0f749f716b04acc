/*
Package svgslice slices an SVG sprite sheet holding a grid of icons into
individual SVG documents, one per grid cell.

Each path element of the sheet is placed on the grid by the first coordinate
of its drawing commands; paths are neither clipped nor merged. Every cell
produces a standalone document whose viewBox is the cell itself and which
carries a copy of the sheet's style block.

The package provides a command line interface. To check the supported flags type:

	$ svgslice --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/svgslice"
	)

	func main() {
		s := svgslice.NewSlicer()
		s.Columns, s.Rows = 8, 5

		res, err := s.Extract("sprite.svg", "icons")
		if err != nil {
			fmt.Printf("Error slicing the sprite sheet: %s", err.Error())
			return
		}
		fmt.Printf("%d icons written", len(res.Files))
	}
*/
package svgslice
