package main

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/ebms-as4/engine/ebms"
)

// locateElement scans doc for the first element matching name and returns
// its raw bytes, start tag through end tag inclusive.
func locateElement(doc []byte, name ebms.QName) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))

	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("element %s not found: %w", name.Local, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != name.Local || se.Name.Space != name.Space {
			continue
		}
		if err := dec.Skip(); err != nil {
			return nil, fmt.Errorf("skip %s: %w", name.Local, err)
		}
		end := dec.InputOffset()
		return doc[start:end], nil
	}
}
