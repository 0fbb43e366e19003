package catalogue

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/nao1215/exotimeline/internal/model"
)

const planetElement = "planet"

// gzipMagic is the header of every gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// planetXML mirrors the direct children of a planet element that are used.
// Elements such as mass may carry error attributes; only the text is read.
// Repeated children are collected so that the first one wins, as with the
// alternative names of a planet.
type planetXML struct {
	Names           []string `xml:"name"`
	Mass            []string `xml:"mass"`
	SemimajorAxis   []string `xml:"semimajoraxis"`
	DiscoveryYear   []string `xml:"discoveryyear"`
	DiscoveryMethod []string `xml:"discoverymethod"`
}

// first returns the text of the first of repeated elements, or "".
func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

// Parse reads every planet element, at any depth, from a catalogue
// document. A gzip-compressed document is decompressed transparently.
func Parse(r io.Reader) ([]model.CatalogueEntry, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(gzipMagic))
	if err == nil && bytes.Equal(magic, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCatalogue, err)
		}
		defer zr.Close()
		return parseXML(zr)
	}
	return parseXML(br)
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) ([]model.CatalogueEntry, error) {
	return Parse(bytes.NewReader(data))
}

func parseXML(r io.Reader) ([]model.CatalogueEntry, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var entries []model.CatalogueEntry
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCatalogue, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != planetElement {
			continue
		}

		var p planetXML
		if err := dec.DecodeElement(&p, &start); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCatalogue, err)
		}
		entry, err := p.entry()
		if err != nil {
			return nil, fmt.Errorf("planet %d (%s): %w", len(entries)+1, p.name(), err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (p planetXML) name() string {
	if len(p.Names) == 0 {
		return "unnamed"
	}
	return first(p.Names)
}

func (p planetXML) entry() (model.CatalogueEntry, error) {
	e := model.CatalogueEntry{
		Name:            first(p.Names),
		DiscoveryMethod: first(p.DiscoveryMethod),
	}

	var err error
	if e.Mass, err = parseValue("mass", first(p.Mass)); err != nil {
		return e, err
	}
	if e.SemimajorAxis, err = parseValue("semimajoraxis", first(p.SemimajorAxis)); err != nil {
		return e, err
	}
	if e.DiscoveryYear, err = parseValue("discoveryyear", first(p.DiscoveryYear)); err != nil {
		return e, err
	}
	return e, nil
}

// parseValue returns nil for empty text.
func parseValue(field, text string) (*float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil //nolint:nilnil // absent value is not an error
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidValue, field, text)
	}
	return &v, nil
}
