// Package identity derives the pseudo-identity used to correlate CRM records
// for a lead before any verified contact field (phone, email) exists. The key
// is a deterministic hash of the normalized address, so repeated calls for
// the same address target the same CRM record; collisions between distinct
// addresses are an accepted limitation.
package identity

import (
	"fmt"
	"hash/fnv"
	"strings"
)

const placeholderDomain = "placeholder.lead"

// NormalizeAddress lowercases, trims, and collapses internal whitespace runs
// to single spaces. Addresses differing only in case or spacing normalize to
// the same string.
func NormalizeAddress(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}

// PseudoIdentity returns the derived stand-in key for an address. It is
// recomputed on every use, never cached across address edits.
func PseudoIdentity(address string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(NormalizeAddress(address)))
	return h.Sum32()
}

// PlaceholderEmail builds the deterministic match-key email for a partial
// lead. Upserting by this address-derived email is what makes create
// idempotent: the same address always targets the same CRM record.
func PlaceholderEmail(address string) string {
	return fmt.Sprintf("partial_%d@%s", PseudoIdentity(address), placeholderDomain)
}
