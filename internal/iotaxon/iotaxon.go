// Package iotaxon builds the set of taxon identifiers belonging to a
// target organism class from an NCBI taxonomy dump (nodes.dmp).
//
// nodes.dmp is tab-delimited with "|" separator tokens between
// fields; splitting on tabs puts the taxon id in column 0 and the
// organism-type (division) code in column 8.
package iotaxon

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// columns of nodes.dmp after a tab split
const (
	colTaxonID  = 0
	colTypeCode = 8
)

// TaxonSet is an immutable set of taxon identifiers. It is built once
// per run and read-only thereafter.
type TaxonSet map[string]struct{}

// Has reports whether the taxon id is in the set.
func (t TaxonSet) Has(id string) bool {
	_, ok := t[id]
	return ok
}

// TaxaOfType returns every first-column identifier whose organism-type
// field equals typeCode. Rows too short to carry a type field are
// ignored. No match yields an empty set, not an error.
func TaxaOfType(r io.Reader, typeCode string) (TaxonSet, error) {
	res := make(TaxonSet)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) <= colTypeCode {
			continue
		}
		if fields[colTypeCode] == typeCode {
			res[fields[colTaxonID]] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Load reads a taxonomy dump file and returns the taxa of the given
// organism type.
func Load(path, typeCode string) (TaxonSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, TaxonomyFileError(path, err)
	}
	defer f.Close()

	res, err := TaxaOfType(f, typeCode)
	if err != nil {
		return nil, TaxonomyFileError(path, err)
	}
	return res, nil
}
