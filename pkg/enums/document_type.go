package enums

import "fmt"

// DocumentType classifies a store verification document.
type DocumentType string

const (
	DocumentTypeLicense        DocumentType = "license"
	DocumentTypeTaxCertificate DocumentType = "tax_certificate"
	DocumentTypeInsurance      DocumentType = "insurance"
	DocumentTypeOther          DocumentType = "other"
)

var validDocumentTypes = []DocumentType{
	DocumentTypeLicense,
	DocumentTypeTaxCertificate,
	DocumentTypeInsurance,
	DocumentTypeOther,
}

// String implements fmt.Stringer.
func (d DocumentType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DocumentType.
func (d DocumentType) IsValid() bool {
	for _, candidate := range validDocumentTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDocumentType converts raw input into a DocumentType.
func ParseDocumentType(value string) (DocumentType, error) {
	for _, candidate := range validDocumentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q", value)
}
