// Package table reads and writes the planet table produced by the fetch
// command and consumed by the render command.
//
// The table is plain text: a single comment line naming the columns,
// followed by one row per planet with mass (Jupiter masses), semi-major axis
// (au) and discovery year, each formatted as %.4e and separated by a space.
package table
