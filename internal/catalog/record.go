package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Metadata holds the ФСБЦ catalog-level attributes. It is filled
// incrementally while the matching tags close during a parse and is
// immutable afterwards.
type Metadata struct {
	ApprovingActNumber string
	ApprovingActDate   string
}

// ResourceRecord is one normalized ФСБЦ leaf: the resource itself plus a
// flattened copy of the hierarchy that was open at the moment its tag
// closed. All fields are strings, catalog values are presentation text
// and are not guaranteed numeric.
type ResourceRecord struct {
	CategoryType string

	BookCode    string
	BookName    string
	PartCode    string
	PartName    string
	SectionCode string
	SectionName string
	GroupCode   string
	GroupName   string

	Code        string
	Name        string
	MeasureUnit string
	Cost        string
	OptCost     string
}

// Validate reports whether the record carries the fields required for it
// to be emitted. Records failing validation are dropped and counted.
func (r ResourceRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required),
		validation.Field(&r.Name, validation.Required),
	)
}
