// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sanitize

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"
	"sync"
)

const (
	RedactionPrefix = "REDACTED-"

	// RedactionMap is the name of the file that maps redacted values to their original values
	RedactionMap = "sensitive-do-not-share-redaction-map.csv"
)

type regexPlan struct {
	regex       *regexp.Regexp
	preprocess  func(string) string
	postprocess func(string) string
}

var ipv4Regex = regexPlan{regex: regexp.MustCompile(`[[:digit:]]{1,3}\.[[:digit:]]{1,3}\.[[:digit:]]{1,3}\.[[:digit:]]{1,3}`)}
var userData = regexPlan{regex: regexp.MustCompile(`"user_data":\s+"[A-Za-z0-9=+]+"`)}
var sshAuthKeys = regexPlan{regex: regexp.MustCompile(`ssh-rsa\s+[A-Za-z0-9=+ \-/@]+`)}
var bearerToken = regexPlan{
	regex: regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-._~+/]+=*`),
	preprocess: func(s string) string {
		return strings.TrimSpace(s[len("bearer"):])
	},
	postprocess: func(s string) string {
		return "Bearer " + s
	},
}

var defaultPlans = []regexPlan{ipv4Regex, userData, sshAuthKeys, bearerToken}

// Redactor replaces sensitive values with a short one way hash and remembers
// every value it has replaced.  It is safe for concurrent use.
type Redactor struct {
	plans []regexPlan

	mutex      sync.Mutex
	knownNames map[string]string
	redacted   map[string]string
}

// NewRedactor returns a Redactor with the default set of patterns
func NewRedactor() *Redactor {
	return &Redactor{
		plans:      defaultPlans,
		knownNames: map[string]string{},
		redacted:   map[string]string{},
	}
}

// AddKnownName registers a literal value, such as a node name, that is
// redacted wherever it appears.
func (r *Redactor) AddKnownName(name string) {
	if name == "" {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.knownNames[name]; !ok {
		r.knownNames[name] = RedactionPrefix + GetShortSha256Hash(name)
	}
}

// Redact returns a copy of data with all sensitive values replaced.
// Bytes that don't match a pattern are left exactly as they were.
func (r *Redactor) Redact(data []byte) []byte {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	out := data
	names := make([]string, 0, len(r.knownNames))
	for n := range r.knownNames {
		names = append(names, n)
	}
	// longest first so that a name containing another name wins
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	for _, n := range names {
		if bytes.Contains(out, []byte(n)) {
			r.redacted[n] = r.knownNames[n]
			out = bytes.ReplaceAll(out, []byte(n), []byte(r.knownNames[n]))
		}
	}

	for _, plan := range r.plans {
		out = plan.regex.ReplaceAllFunc(out, func(match []byte) []byte {
			return []byte(r.apply(plan, string(match)))
		})
	}
	return out
}

// apply processes a single match according to the plan.  The mutex must be held.
func (r *Redactor) apply(plan regexPlan, s string) string {
	if plan.preprocess != nil {
		s = plan.preprocess(s)
	}
	s = r.redact(s)
	if plan.postprocess != nil {
		return plan.postprocess(s)
	}
	return s
}

// redact returns the replacement for s, recording new values
func (r *Redactor) redact(s string) string {
	if v, ok := r.redacted[s]; ok {
		return v
	}
	v := RedactionPrefix + GetShortSha256Hash(s)
	r.redacted[s] = v
	return v
}

// RedactionMapCSV renders every value redacted so far as CSV rows of
// "redacted,original", sorted by the redacted value.
func (r *Redactor) RedactionMapCSV() ([]byte, error) {
	r.mutex.Lock()
	rows := make([][]string, 0, len(r.redacted))
	for orig, red := range r.redacted {
		rows = append(rows, []string{red, orig})
	}
	r.mutex.Unlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Count returns the number of distinct values redacted so far
func (r *Redactor) Count() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.redacted)
}

// GetShortSha256Hash generates the one way hash for the input string and returns the first 8 characters of that hash
func GetShortSha256Hash(line string) string {
	hashedVal := sha256.Sum256([]byte(line))
	return hex.EncodeToString(hashedVal[:])[0:8]
}
