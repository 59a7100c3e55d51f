package model

import "encoding/json"

// LineLabel classifies a single line of a credential dump
type LineLabel int

const (
	LabelGarbage LineLabel = iota
	LabelValidCredential
	LabelHeader
	LabelFooter
	LabelComment
	LabelSeparator
)

func (l LineLabel) String() string {
	switch l {
	case LabelValidCredential:
		return "valid_credential"
	case LabelHeader:
		return "header"
	case LabelFooter:
		return "footer"
	case LabelComment:
		return "comment"
	case LabelSeparator:
		return "separator"
	default:
		return "garbage"
	}
}

// HashKind identifies the format of a password hash
type HashKind int

const (
	HashUnknown HashKind = iota
	HashMD5
	HashSHA1
	HashSHA256
	HashSHA512
	HashBCrypt
	HashNTLM // Shares MD5's 32-hex surface form; never chosen without external context
)

func (k HashKind) String() string {
	switch k {
	case HashMD5:
		return "md5"
	case HashSHA1:
		return "sha1"
	case HashSHA256:
		return "sha256"
	case HashSHA512:
		return "sha512"
	case HashBCrypt:
		return "bcrypt"
	case HashNTLM:
		return "ntlm"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the kind as its string tag
func (k HashKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// CredentialEntry is one normalized record extracted from a dump line.
// Unset optional fields are omitted from the serialized form; SourceLine
// is diagnostic only and never serialized.
type CredentialEntry struct {
	Email            string            `json:"email,omitempty"`
	Username         string            `json:"username,omitempty"`
	Password         string            `json:"password,omitempty"`
	PasswordHash     string            `json:"password_hash,omitempty"`
	HashType         HashKind          `json:"hash_type,omitempty"`
	Salt             string            `json:"salt,omitempty"`
	AdditionalFields map[string]string `json:"additional_fields,omitempty"`

	// Metadata
	Confidence     float64 `json:"confidence"`
	LineNumber     int     `json:"line_number"`
	DetectedFormat string  `json:"detected_format"`
	SourceLine     string  `json:"-"`
}

// HasData reports whether at least one credential field was extracted
func (e *CredentialEntry) HasData() bool {
	return e.Email != "" || e.Username != "" || e.Password != "" || e.PasswordHash != ""
}

// RunStats aggregates counters over one normalization run
type RunStats struct {
	TotalLines            int `json:"total_lines"`
	ValidCredentials      int `json:"valid_credentials"`
	FilteredLowConfidence int `json:"filtered_low_confidence"`
	Errors                int `json:"errors"`
}

// Add merges the counters from another run into this one
func (s *RunStats) Add(other RunStats) {
	s.TotalLines += other.TotalLines
	s.ValidCredentials += other.ValidCredentials
	s.FilteredLowConfidence += other.FilteredLowConfidence
	s.Errors += other.Errors
}

// SuccessRate returns the fraction of input lines that produced credentials
func (s RunStats) SuccessRate() float64 {
	if s.TotalLines == 0 {
		return 0
	}
	return float64(s.ValidCredentials) / float64(s.TotalLines)
}
