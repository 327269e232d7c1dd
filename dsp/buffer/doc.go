// Package buffer provides pooled float64 scratch memory for hot loops such
// as per-segment spectral work. Public APIs elsewhere take plain []float64;
// a Buffer never escapes the function that borrowed it.
package buffer
