package catalog

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// GesnMetadata holds the ГЭСН catalog-level attributes. Every field is
// optional and filled opportunistically as the matching elements are seen.
type GesnMetadata struct {
	PriceLevel   string
	BaseName     string
	DecreeName   string
	CategoryType string
	CodePrefix   string
}

// GesnWorkResource is one consumed-resource line attached to a labor norm.
type GesnWorkResource struct {
	Code        string
	EndName     string
	Quantity    string
	MeasureUnit string
}

// GesnWorkRecord is one normalized labor norm with its five-level
// hierarchy flattened in, the work-content description lines and the
// consumed-resource list in source order, and the optional
// overhead/profit markers.
type GesnWorkRecord struct {
	SbornikCode   string
	SbornikName   string
	OtdelCode     string
	OtdelName     string
	RazdelCode    string
	RazdelName    string
	PodrazdelCode string
	PodrazdelName string
	TableCode     string
	TableName     string

	NameGroupBegin string
	Code           string
	EndName        string
	MeasureUnit    string
	FullName       string

	ContentItems []string
	Resources    []GesnWorkResource

	Nr string
	Sp string
}

// Validate reports whether the work carries the fields required for it to
// be emitted.
func (w GesnWorkRecord) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Code, validation.Required),
	)
}

// FullName derives a work's display name from the surrounding name-group
// fragment and its own end name: the trimmed concatenation when the end
// name is present, the fragment alone otherwise.
func FullName(nameGroupBegin, endName string) string {
	if endName == "" {
		return nameGroupBegin
	}
	return strings.TrimSpace(nameGroupBegin + " " + endName)
}
