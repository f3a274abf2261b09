// Package privacy provides the de-identification primitives for patient
// records: deterministic masking of display fields and the reversible
// codec applied to the diagnosis before persistence.
package privacy

import (
	"fmt"
	"hash/fnv"
)

// stableHash is a seedless FNV-1a digest, stable across runs and processes.
// Masked values must survive restarts so the re-anonymization sweep is
// idempotent; a process-randomized hash would silently rewrite every row.
func stableHash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// MaskName derives the anonymized display name for a raw patient name.
// Deterministic and total; any input, including empty, produces a result.
func MaskName(name string) string {
	return fmt.Sprintf("ANON_%04d", stableHash(name)%10000)
}

// MaskContact keeps only the last four digit characters of a contact string.
// A contact with no digits at all masks to "XXX-XXX-0000"; one with fewer
// than four digits keeps just the digits it has.
func MaskContact(contact string) string {
	var digits []byte
	for i := 0; i < len(contact); i++ {
		if contact[i] >= '0' && contact[i] <= '9' {
			digits = append(digits, contact[i])
		}
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	if len(digits) == 0 {
		return "XXX-XXX-0000"
	}
	return "XXX-XXX-" + string(digits)
}

// MaskDiagnosis derives the masked diagnosis code for a raw diagnosis text.
func MaskDiagnosis(diagnosis string) string {
	return fmt.Sprintf("MASKED_%06d", stableHash(diagnosis)%1000000)
}
