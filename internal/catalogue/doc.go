// Package catalogue downloads and parses the Open Exoplanet Catalogue.
//
// The catalogue is a (usually gzip-compressed) XML document of systems,
// binaries, stars and planets. Every planet element at any depth is turned
// into a model.CatalogueEntry; Filter then keeps the entries that have a
// mass, a semi-major axis and a discovery year no earlier than 1990.
//
// Client fetches the document over HTTP, optionally through a SOCKS5 proxy
// and with per-source headers. Cache stores downloaded documents on disk,
// keyed by a BLAKE2b digest of the source URL.
package catalogue
