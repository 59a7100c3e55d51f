// Package patterns is the static matcher library used by feature
// extraction, classification, and field-role assignment. All matchers are
// compiled once at package init.
package patterns

import "regexp"

// Delimiters lists the candidate field separators in precedence order.
// When occurrence counts tie, the first-listed candidate wins; downstream
// field counts depend on this order being stable.
var Delimiters = []string{":", "|", ";", "\t", ",", " - ", "--", "=="}

var (
	// Substring matchers used by feature extraction
	emailSearch  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	md5Search    = regexp.MustCompile(`\b[a-fA-F0-9]{32}\b`)
	sha1Search   = regexp.MustCompile(`\b[a-fA-F0-9]{40}\b`)
	sha256Search = regexp.MustCompile(`\b[a-fA-F0-9]{64}\b`)

	// Full-token matchers used by role assignment
	emailToken  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	md5Token    = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)
	sha1Token   = regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	sha256Token = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)
	sha512Token = regexp.MustCompile(`^[a-fA-F0-9]{128}$`)
	bcryptToken = regexp.MustCompile(`^\$2[ayb]\$[0-9]{2}\$[./A-Za-z0-9]{53}$`)
	username    = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,32}$`)

	// Noise matchers for headers, footers, and dump banners
	separatorLine = regexp.MustCompile(`^[\s\-=*#]+$`)
	fieldNames    = regexp.MustCompile(`(?i)^(username|email|password|hash|user|pass|login)`)
	dumpVocab     = regexp.MustCompile(`(?i)(database|dump|leak|breach|combo)`)
)

// HasEmail reports whether the line contains an email anywhere
func HasEmail(line string) bool { return emailSearch.MatchString(line) }

// HasMD5 reports whether the line contains a 32-hex-char run
func HasMD5(line string) bool { return md5Search.MatchString(line) }

// HasSHA1 reports whether the line contains a 40-hex-char run
func HasSHA1(line string) bool { return sha1Search.MatchString(line) }

// HasSHA256 reports whether the line contains a 64-hex-char run
func HasSHA256(line string) bool { return sha256Search.MatchString(line) }

// IsEmail matches a whole token against the email form
func IsEmail(token string) bool { return emailToken.MatchString(token) }

// IsMD5 matches a whole token against the 32-hex form (also NTLM's surface)
func IsMD5(token string) bool { return md5Token.MatchString(token) }

// IsSHA1 matches a whole token against the 40-hex form
func IsSHA1(token string) bool { return sha1Token.MatchString(token) }

// IsSHA256 matches a whole token against the 64-hex form
func IsSHA256(token string) bool { return sha256Token.MatchString(token) }

// IsSHA512 matches a whole token against the 128-hex form
func IsSHA512(token string) bool { return sha512Token.MatchString(token) }

// IsBCrypt matches a whole token against $2[ayb]$NN$ plus 53 base64-like chars
func IsBCrypt(token string) bool { return bcryptToken.MatchString(token) }

// IsUsername matches a whole token of 3-32 letters, digits, '.', '_', '-'
func IsUsername(token string) bool { return username.MatchString(token) }

// IsSeparatorLine reports whether the line consists only of whitespace
// and the characters - = * #
func IsSeparatorLine(line string) bool { return separatorLine.MatchString(line) }

// IsNoise reports whether any noise matcher fires: separator-only lines,
// field-name headers, or dump-related vocabulary
func IsNoise(line string) bool {
	return separatorLine.MatchString(line) ||
		fieldNames.MatchString(line) ||
		dumpVocab.MatchString(line)
}
