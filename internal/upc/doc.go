// Package upc implements UPC-A validation, physical-size mapping and
// barcode rendering.
//
// The bar pattern itself comes from github.com/boombuler/barcode: a UPC-A
// code is encoded as EAN-13 with a leading zero, which also makes the
// encoder verify the check digit. This package is responsible for turning a
// requested physical size into encoder parameters and for compositing the
// encoder output onto a pixel-exact canvas (PNG) or document (SVG).
package upc
