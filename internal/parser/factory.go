// Package parser provides a factory over the statement parsers so commands
// can select one by name.
package parser

import (
	"fmt"

	"atamur/ynab-csv/internal/camtparser"
	"atamur/ynab-csv/internal/models"
	"atamur/ynab-csv/internal/mt940parser"
	"atamur/ynab-csv/internal/releasesparser"
	"atamur/ynab-csv/internal/revolutparser"
	"atamur/ynab-csv/internal/visecaparser"
)

// Type identifies a statement parser.
type Type string

// Supported parser types.
const (
	TypeCAMT     Type = "camt"
	TypeMT940    Type = "mt940"
	TypeViseca   Type = "viseca"
	TypeRevolut  Type = "revolut"
	TypeReleases Type = "releases"
)

// Get returns the parser for the given type.
func Get(t Type) (models.Parser, error) {
	switch t {
	case TypeCAMT:
		return camtparser.NewAdapter(), nil
	case TypeMT940:
		return mt940parser.NewAdapter(), nil
	case TypeViseca:
		return visecaparser.NewAdapter(), nil
	case TypeRevolut:
		return revolutparser.NewAdapter(), nil
	case TypeReleases:
		return releasesparser.NewAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown parser type: %s", t)
	}
}
