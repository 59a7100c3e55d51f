package model

// Features is the fixed-shape feature record computed from one cleaned line.
// It is ephemeral: recomputed (or fetched from the duplicate-line cache) per
// line and discarded after classification.
type Features struct {
	Length    int
	HasEmail  bool
	HasMD5    bool
	HasSHA1   bool
	HasSHA256 bool

	// Character-class ratios in [0,1], all zero for the empty line
	AlphaRatio      float64
	DigitRatio      float64
	SpecialRatio    float64
	WhitespaceRatio float64

	// Delimiter is empty when no candidate occurs in the line,
	// in which case FieldCount is 1
	Delimiter  string
	FieldCount int

	// Shannon entropy over the character-frequency distribution
	Entropy float64
}
