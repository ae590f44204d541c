package services

import (
	"strconv"
	"strings"
)

type IdentifierKind int

const (
	IdentifierEmail IdentifierKind = iota
	IdentifierID
)

// MemberIdentifier is the tagged form of the "email or user id" parameter
// accepted when adding a project member.
type MemberIdentifier struct {
	Kind  IdentifierKind
	Email string
	ID    uint64
}

// ParseMemberIdentifier disambiguates a raw identifier with a single rule:
// anything containing '@' is an email, everything else is a user id.
// Returns false when the value is neither a plausible email nor a numeric id.
func ParseMemberIdentifier(raw string) (MemberIdentifier, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return MemberIdentifier{}, false
	}

	if strings.Contains(raw, "@") {
		return MemberIdentifier{Kind: IdentifierEmail, Email: raw}, true
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return MemberIdentifier{}, false
	}
	return MemberIdentifier{Kind: IdentifierID, ID: id}, true
}
