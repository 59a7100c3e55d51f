package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashmire/serializ3r/internal/model"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(model.DefaultConfig(), nil)
}

func TestCleanLine(t *testing.T) {
	n := newTestNormalizer()

	cases := []struct {
		in   string
		want string
	}{
		{"  user:pass  ", "user:pass"},
		{"user:pass\x00", "user:pass"},
		{"a\t\tb   c", "a b c"},
		{"", ""},
		{"   \t  ", ""},
	}
	for _, tc := range cases {
		if got := n.CleanLine(tc.in); got != tc.want {
			t.Errorf("CleanLine(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestCleanLine_InvalidBytesReplaced(t *testing.T) {
	n := newTestNormalizer()

	got := n.CleanLine("user:pa\xffss")
	if !strings.Contains(got, "�") {
		t.Errorf("expected replacement rune in %q", got)
	}
	if strings.Contains(got, "\xff") {
		t.Errorf("invalid byte survived cleaning: %q", got)
	}
}

func TestNormalizeLine_EmailPassword(t *testing.T) {
	n := newTestNormalizer()

	entry := n.NormalizeLine("user@example.com:password123", 1)
	if entry == nil {
		t.Fatal("expected an entry")
	}
	if entry.Email != "user@example.com" {
		t.Errorf("unexpected email: %q", entry.Email)
	}
	if entry.Password != "password123" {
		t.Errorf("unexpected password: %q", entry.Password)
	}
	if entry.PasswordHash != "" || entry.HashType != model.HashUnknown {
		t.Errorf("unexpected hash fields: %+v", entry)
	}
	if entry.Confidence < 0.6 {
		t.Errorf("expected confidence >= 0.6, got %f", entry.Confidence)
	}
	if entry.LineNumber != 1 {
		t.Errorf("expected line number 1, got %d", entry.LineNumber)
	}
	if entry.DetectedFormat != "email:password" {
		t.Errorf("unexpected detected format: %q", entry.DetectedFormat)
	}
	if entry.SourceLine != "user@example.com:password123" {
		t.Errorf("unexpected source line: %q", entry.SourceLine)
	}
}

func TestNormalizeLine_EmailHash(t *testing.T) {
	n := newTestNormalizer()

	entry := n.NormalizeLine("user@example.com:5f4dcc3b5aa765d61d8327deb882cf99", 7)
	if entry == nil {
		t.Fatal("expected an entry")
	}
	if entry.Email != "user@example.com" {
		t.Errorf("unexpected email: %q", entry.Email)
	}
	if entry.PasswordHash != "5f4dcc3b5aa765d61d8327deb882cf99" {
		t.Errorf("unexpected hash: %q", entry.PasswordHash)
	}
	if entry.HashType != model.HashMD5 {
		t.Errorf("expected md5, got %s", entry.HashType)
	}
	if entry.DetectedFormat != "email:hash" {
		t.Errorf("unexpected detected format: %q", entry.DetectedFormat)
	}
}

func TestNormalizeLine_UsernamePassword(t *testing.T) {
	n := newTestNormalizer()

	entry := n.NormalizeLine("john_doe:secretpass", 2)
	if entry == nil {
		t.Fatal("expected an entry")
	}
	if entry.Username != "john_doe" {
		t.Errorf("unexpected username: %q", entry.Username)
	}
	if entry.Password != "secretpass" {
		t.Errorf("unexpected password: %q", entry.Password)
	}
	if entry.DetectedFormat != "username:password" {
		t.Errorf("unexpected detected format: %q", entry.DetectedFormat)
	}
}

func TestNormalizeLine_NonCredentials(t *testing.T) {
	n := newTestNormalizer()

	for _, line := range []string{
		"",
		"   ",
		"================================",
		"DATABASE DUMP 2023",
		"ab",
	} {
		if entry := n.NormalizeLine(line, 1); entry != nil {
			t.Errorf("%q: expected no entry, got %+v", line, entry)
		}
	}
}

func TestClassifyLine_Diagnostic(t *testing.T) {
	n := newTestNormalizer()

	label, confidence := n.ClassifyLine("================================")
	if label != model.LabelSeparator {
		t.Errorf("expected separator, got %s", label)
	}
	if confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %f", confidence)
	}

	label, _ = n.ClassifyLine("  user@example.com:password123\n")
	if label != model.LabelValidCredential {
		t.Errorf("expected valid credential, got %s", label)
	}
}

func TestNormalizeStream_Counters(t *testing.T) {
	n := newTestNormalizer()

	input := strings.Join([]string{
		"DATABASE DUMP 2023",               // header, no entry
		"================================", // separator, no entry
		"user@example.com:password123",     // accepted
		"",                                 // blank, no entry
		"john_doe:secretpass",              // confidence 0.6, filtered at 0.7
		"user2@example.com:5f4dcc3b5aa765d61d8327deb882cf99", // accepted
	}, "\n")

	var out bytes.Buffer
	stats, err := n.NormalizeStream(context.Background(), strings.NewReader(input), &out, 0.7)
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}

	if stats.TotalLines != 6 {
		t.Errorf("expected 6 total lines, got %d", stats.TotalLines)
	}
	if stats.ValidCredentials != 2 {
		t.Errorf("expected 2 valid credentials, got %d", stats.ValidCredentials)
	}
	if stats.FilteredLowConfidence != 1 {
		t.Errorf("expected 1 filtered line, got %d", stats.FilteredLowConfidence)
	}
	if stats.Errors != 0 {
		t.Errorf("expected no errors, got %d", stats.Errors)
	}
	if stats.ValidCredentials+stats.FilteredLowConfidence > stats.TotalLines {
		t.Error("accepted plus filtered must not exceed total lines")
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output records, got %d", len(lines))
	}
}

func TestNormalizeStream_OutputOrderAndShape(t *testing.T) {
	n := newTestNormalizer()

	input := strings.Join([]string{
		"a@example.com:pw111111",
		"noise line without anything useful?!",
		"b@example.com:pw222222",
		"c@example.com:pw333333",
	}, "\n")

	var out bytes.Buffer
	_, err := n.NormalizeStream(context.Background(), strings.NewReader(input), &out, 0.5)
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}

	raw := strings.TrimSpace(out.String())
	if strings.Contains(raw, "source_line") {
		t.Error("serialized output must never contain source_line")
	}
	if strings.Contains(raw, "additional_fields") {
		t.Error("empty additional_fields must be omitted")
	}

	lastLine := 0
	for _, line := range strings.Split(raw, "\n") {
		var record struct {
			Email      string  `json:"email"`
			LineNumber int     `json:"line_number"`
			Confidence float64 `json:"confidence"`
		}
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("invalid JSONL record %q: %v", line, err)
		}
		if record.LineNumber <= lastLine {
			t.Errorf("line numbers must increase: %d after %d", record.LineNumber, lastLine)
		}
		lastLine = record.LineNumber
		if record.Confidence < 0 || record.Confidence > 1 {
			t.Errorf("confidence %f out of range", record.Confidence)
		}
	}
}

func TestNormalizeStream_NoLineLengthCap(t *testing.T) {
	n := newTestNormalizer()

	// An oversized garbage line between two credentials: the run must
	// count it, keep going, and still emit both credentials
	long := strings.Repeat("a", 17*1024*1024)
	input := "user@example.com:password123\n" + long + "\nother@example.com:password456\n"

	var out bytes.Buffer
	stats, err := n.NormalizeStream(context.Background(), strings.NewReader(input), &out, 0.5)
	if err != nil {
		t.Fatalf("stream failed on oversized line: %v", err)
	}

	if stats.TotalLines != 3 {
		t.Errorf("expected 3 total lines, got %d", stats.TotalLines)
	}
	if stats.ValidCredentials != 2 {
		t.Errorf("expected 2 valid credentials, got %d", stats.ValidCredentials)
	}
	if stats.Errors != 0 {
		t.Errorf("an oversized line is not an error, got %d", stats.Errors)
	}

	raw := out.String()
	if !strings.Contains(raw, "user@example.com") || !strings.Contains(raw, "other@example.com") {
		t.Error("expected both credentials in output")
	}
}

func TestNormalizeStream_NoTrailingNewline(t *testing.T) {
	n := newTestNormalizer()

	var out bytes.Buffer
	stats, err := n.NormalizeStream(context.Background(), strings.NewReader("user@example.com:password123"), &out, 0.5)
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	if stats.TotalLines != 1 || stats.ValidCredentials != 1 {
		t.Errorf("unexpected stats for unterminated last line: %+v", stats)
	}
}

func TestNormalizeLineSafe_RecoversPanic(t *testing.T) {
	n := newTestNormalizer()
	n.config = nil // force a panic inside per-line processing

	entry, err := n.normalizeLineSafe("user@example.com:password123", 3)
	if err == nil {
		t.Fatal("expected an error from the recovered panic")
	}
	if entry != nil {
		t.Errorf("expected no entry, got %+v", entry)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected the line number in the error, got %v", err)
	}
}

func TestNormalizeStream_PerLineFailureIsolation(t *testing.T) {
	n := newTestNormalizer()
	n.config = nil // every line panics during cleaning

	input := "user@example.com:password123\njohn_doe:secretpass\nx\n"

	var out bytes.Buffer
	stats, err := n.NormalizeStream(context.Background(), strings.NewReader(input), &out, 0.5)
	if err != nil {
		t.Fatalf("per-line failures must not abort the run: %v", err)
	}

	if stats.TotalLines != 3 {
		t.Errorf("expected 3 total lines, got %d", stats.TotalLines)
	}
	if stats.Errors != 3 {
		t.Errorf("expected 3 errors, got %d", stats.Errors)
	}
	if stats.ValidCredentials != 0 || stats.FilteredLowConfidence != 0 {
		t.Errorf("failed lines must produce nothing: %+v", stats)
	}
	if out.Len() != 0 {
		t.Errorf("expected empty output, got %q", out.String())
	}
}

func TestNormalizeStream_DuplicateLinesWithCache(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = true
	cached := NewNormalizer(cfg, nil)

	cfgNo := model.DefaultConfig()
	cfgNo.Cache.Enabled = false
	uncached := NewNormalizer(cfgNo, nil)

	line := "user@example.com:password123"
	input := strings.Repeat(line+"\n", 50)

	var outA, outB bytes.Buffer
	statsA, err := cached.NormalizeStream(context.Background(), strings.NewReader(input), &outA, 0.5)
	if err != nil {
		t.Fatalf("cached stream failed: %v", err)
	}
	statsB, err := uncached.NormalizeStream(context.Background(), strings.NewReader(input), &outB, 0.5)
	if err != nil {
		t.Fatalf("uncached stream failed: %v", err)
	}

	if statsA != statsB {
		t.Errorf("cache must not change stats: %+v vs %+v", statsA, statsB)
	}
	if outA.String() != outB.String() {
		t.Error("cache must not change output")
	}
}

func TestNormalizeFile(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "dump.txt")
	outputPath := filepath.Join(dir, "out.jsonl")

	content := "user@example.com:password123\n================\njohn_doe:secretpass\n"
	if err := os.WriteFile(inputPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	n := newTestNormalizer()
	stats, err := n.NormalizeFile(context.Background(), inputPath, outputPath, 0.5)
	if err != nil {
		t.Fatalf("normalize file failed: %v", err)
	}

	if stats.TotalLines != 3 {
		t.Errorf("expected 3 total lines, got %d", stats.TotalLines)
	}
	if stats.ValidCredentials != 2 {
		t.Errorf("expected 2 valid credentials, got %d", stats.ValidCredentials)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 2 {
		t.Errorf("expected 2 output records, got %d", len(lines))
	}
}

func TestNormalizeFile_MissingInputIsFatal(t *testing.T) {
	dir := t.TempDir()
	n := newTestNormalizer()

	_, err := n.NormalizeFile(context.Background(), filepath.Join(dir, "absent.txt"), filepath.Join(dir, "out.jsonl"), 0.5)
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestDetectFormat(t *testing.T) {
	entry := &model.CredentialEntry{Email: "a@b.co", Password: "x"}
	if got := detectFormat(entry, "|"); got != "email|password" {
		t.Errorf("unexpected format: %q", got)
	}
	if got := detectFormat(entry, ""); got != "email:password" {
		t.Errorf("expected ':' fallback join, got %q", got)
	}

	empty := &model.CredentialEntry{}
	if got := detectFormat(empty, ":"); got != "unknown" {
		t.Errorf("expected unknown, got %q", got)
	}
}
