// Package walink rewrites contact-export tables with WhatsApp deep links.
package walink

// Column names used by the standard contact-export layout.
const (
	DefaultSourceColumn = "Phone 1 - Value"
	DefaultTargetColumn = "Website 1 - Value"
)

// DefaultCountryCode is the international prefix for generated links.
const DefaultCountryCode = "91"

// Options configures the row processor.
type Options struct {
	// SourceColumn holds the raw phone text. Matched case-sensitively.
	SourceColumn string
	// TargetColumn receives the generated link, overwriting any value.
	TargetColumn string
	// CountryCode is the fixed international prefix in generated links.
	CountryCode string
}

// DefaultOptions returns options for the standard export layout.
func DefaultOptions() Options {
	return Options{
		SourceColumn: DefaultSourceColumn,
		TargetColumn: DefaultTargetColumn,
		CountryCode:  DefaultCountryCode,
	}
}
