package models

import (
	dErrors "worklink/pkg/domain-errors"
)

// Agency document slots.
const (
	DocBusinessLicense      = "businessLicense"
	DocTaxCertificate       = "taxCertificate"
	DocInsuranceCertificate = "insuranceCertificate"
)

// Maid document slots.
const (
	DocPassportCopy       = "passportCopy"
	DocMedicalCertificate = "medicalCertificate"
	DocPoliceClearance    = "policeClearance"
)

// Sponsor document slots.
const (
	DocIDCopy         = "idCopy"
	DocProofOfAddress = "proofOfAddress"
)

// documentSet holds the named document-URL slots of one profile variant.
// Slots store opaque URLs produced by the external blob store; the aggregate
// never sees document bytes and never validates content, only slot names.
type documentSet struct {
	allowed []string
	urls    map[string]string
}

func newDocumentSet(slots ...string) documentSet {
	return documentSet{allowed: slots, urls: make(map[string]string, len(slots))}
}

func (d *documentSet) set(docType, url string) error {
	if !d.isAllowed(docType) {
		return dErrors.Newf(dErrors.CodeInvalidDocumentType, "unknown document type %q", docType)
	}
	d.urls[docType] = url
	return nil
}

func (d *documentSet) isAllowed(docType string) bool {
	for _, slot := range d.allowed {
		if slot == docType {
			return true
		}
	}
	return false
}

func (d *documentSet) get(docType string) string { return d.urls[docType] }

func (d *documentSet) has(docType string) bool { return d.urls[docType] != "" }

// toMap copies the populated slots for serialization.
func (d *documentSet) toMap() map[string]string {
	if len(d.urls) == 0 {
		return nil
	}
	out := make(map[string]string, len(d.urls))
	for slot, url := range d.urls {
		out[slot] = url
	}
	return out
}

func (d *documentSet) fromMap(m map[string]string) {
	for slot, url := range m {
		if d.isAllowed(slot) {
			d.urls[slot] = url
		}
	}
}
