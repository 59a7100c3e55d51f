package extract

import (
	"strings"

	"github.com/hashmire/serializ3r/internal/model"
	"github.com/hashmire/serializ3r/internal/patterns"
)

// FieldExtractor splits credential lines and assigns tokens to roles
type FieldExtractor struct{}

// NewFieldExtractor creates a new field extractor
func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{}
}

// SplitFields splits a line into trimmed tokens. With a detected delimiter
// the line splits on it and empty pieces are dropped. Without one the line
// splits on whitespace runs, except that a single-token result keeps the
// whole trimmed line intact.
func (x *FieldExtractor) SplitFields(line, delimiter string) []string {
	if delimiter == "" {
		fields := strings.Fields(line)
		if len(fields) == 1 {
			return []string{strings.TrimSpace(line)}
		}
		return fields
	}

	var fields []string
	for _, part := range strings.Split(line, delimiter) {
		part = strings.TrimSpace(part)
		if part != "" {
			fields = append(fields, part)
		}
	}
	return fields
}

// HashKindOf identifies a token's hash format. Kinds are tested in strict
// precedence order; the order only matters for the 32-hex MD5/NTLM
// collision, which always resolves to MD5.
func (x *FieldExtractor) HashKindOf(token string) model.HashKind {
	token = strings.TrimSpace(token)

	switch {
	case patterns.IsBCrypt(token):
		return model.HashBCrypt
	case patterns.IsSHA512(token):
		return model.HashSHA512
	case patterns.IsSHA256(token):
		return model.HashSHA256
	case patterns.IsSHA1(token):
		return model.HashSHA1
	case patterns.IsMD5(token):
		// Could equally be NTLM; no context to disambiguate
		return model.HashMD5
	default:
		return model.HashUnknown
	}
}

// AssignRoles maps tokens to credential roles using fixed precedence:
// email, then hash, then username (only while no email was seen), then
// password. Each role is filled at most once; leftover tokens are dropped.
func (x *FieldExtractor) AssignRoles(tokens []string) *model.CredentialEntry {
	entry := &model.CredentialEntry{}

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if entry.Email == "" && patterns.IsEmail(token) {
			entry.Email = token
			continue
		}

		kind := x.HashKindOf(token)
		if entry.PasswordHash == "" && kind != model.HashUnknown {
			entry.PasswordHash = token
			entry.HashType = kind
			continue
		}

		if entry.Username == "" && entry.Email == "" && patterns.IsUsername(token) {
			entry.Username = token
			continue
		}

		if entry.Password == "" && kind == model.HashUnknown {
			entry.Password = token
		}
	}

	return entry
}

// Parse splits a line with the detected delimiter and assigns roles
func (x *FieldExtractor) Parse(line, delimiter string) *model.CredentialEntry {
	return x.AssignRoles(x.SplitFields(line, delimiter))
}
