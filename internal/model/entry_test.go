package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCredentialEntry_Serialization(t *testing.T) {
	entry := CredentialEntry{
		Email:          "user@example.com",
		Password:       "secret",
		Confidence:     0.8,
		LineNumber:     3,
		DetectedFormat: "email:password",
		SourceLine:     "user@example.com:secret",
	}

	data, err := json.Marshal(&entry)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	out := string(data)

	if strings.Contains(out, "source_line") {
		t.Error("source_line must never be serialized")
	}
	if strings.Contains(out, "username") {
		t.Error("unset username must be omitted")
	}
	if strings.Contains(out, "password_hash") {
		t.Error("unset password_hash must be omitted")
	}
	if strings.Contains(out, "hash_type") {
		t.Error("hash_type must be omitted without a hash")
	}
	if strings.Contains(out, "additional_fields") {
		t.Error("empty additional_fields must be omitted")
	}
	if !strings.Contains(out, `"confidence":0.8`) {
		t.Errorf("expected confidence in output, got %s", out)
	}
	if !strings.Contains(out, `"line_number":3`) {
		t.Errorf("expected line_number in output, got %s", out)
	}
}

func TestCredentialEntry_HashTypeTag(t *testing.T) {
	entry := CredentialEntry{
		PasswordHash:   "5f4dcc3b5aa765d61d8327deb882cf99",
		HashType:       HashMD5,
		Confidence:     0.9,
		LineNumber:     1,
		DetectedFormat: "hash",
	}

	data, err := json.Marshal(&entry)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"hash_type":"md5"`) {
		t.Errorf("expected hash_type tag md5, got %s", data)
	}
}

func TestCredentialEntry_HasData(t *testing.T) {
	empty := CredentialEntry{Confidence: 0.9, LineNumber: 1}
	if empty.HasData() {
		t.Error("entry without credential fields must report no data")
	}

	withUser := CredentialEntry{Username: "admin"}
	if !withUser.HasData() {
		t.Error("entry with username must report data")
	}
}

func TestHashKindStrings(t *testing.T) {
	cases := map[HashKind]string{
		HashMD5:     "md5",
		HashSHA1:    "sha1",
		HashSHA256:  "sha256",
		HashSHA512:  "sha512",
		HashBCrypt:  "bcrypt",
		HashNTLM:    "ntlm",
		HashUnknown: "unknown",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Errorf("expected %q, got %q", want, kind.String())
		}
	}
}

func TestLineLabelStrings(t *testing.T) {
	if LabelValidCredential.String() != "valid_credential" {
		t.Errorf("unexpected label string: %s", LabelValidCredential)
	}
	if LabelSeparator.String() != "separator" {
		t.Errorf("unexpected label string: %s", LabelSeparator)
	}
	if LabelGarbage.String() != "garbage" {
		t.Errorf("unexpected label string: %s", LabelGarbage)
	}
}

func TestRunStats_AddAndSuccessRate(t *testing.T) {
	a := RunStats{TotalLines: 10, ValidCredentials: 4, FilteredLowConfidence: 2, Errors: 1}
	b := RunStats{TotalLines: 5, ValidCredentials: 1}

	a.Add(b)

	if a.TotalLines != 15 || a.ValidCredentials != 5 || a.FilteredLowConfidence != 2 || a.Errors != 1 {
		t.Errorf("unexpected merged stats: %+v", a)
	}

	rate := a.SuccessRate()
	if rate < 0.33 || rate > 0.34 {
		t.Errorf("expected success rate around 1/3, got %f", rate)
	}

	var zero RunStats
	if zero.SuccessRate() != 0 {
		t.Error("empty run must have zero success rate")
	}
}
