package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Header encodes a timestamp and one or more candidate signatures:
//
//	t=1712345678,v1=5257a869e7...,v1=0aa1b2c3d4...
//
// A signature is valid when any candidate equals HMAC-SHA256(secret,
// "{t}.{body}") and the timestamp is within the replay tolerance.
const (
	Header           = "X-Payment-Signature"
	schemeVersion    = "v1"
	DefaultTolerance = 5 * time.Minute
)

var (
	ErrMissingHeader   = errors.New("missing signature header")
	ErrMalformedHeader = errors.New("malformed signature header")
	ErrStaleTimestamp  = errors.New("signature timestamp outside tolerance")
	ErrNoMatch         = errors.New("no matching signature")
)

type Verifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret:    []byte(secret),
		tolerance: DefaultTolerance,
		now:       time.Now,
	}
}

// WithClock overrides the wall clock, for tests.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// Verify authenticates the raw request body against the signature header.
// Any parse failure is a verification failure, never a skip.
func (v *Verifier) Verify(body []byte, header string) error {
	if header == "" {
		return ErrMissingHeader
	}

	var timestamp int64
	var candidates []string
	seenTimestamp := false

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || value == "" {
			return ErrMalformedHeader
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return ErrMalformedHeader
			}
			timestamp = ts
			seenTimestamp = true
		case schemeVersion:
			candidates = append(candidates, value)
		}
	}
	if !seenTimestamp || len(candidates) == 0 {
		return ErrMalformedHeader
	}

	if age := v.now().Sub(time.Unix(timestamp, 0)); age > v.tolerance || age < -v.tolerance {
		return ErrStaleTimestamp
	}

	expected := Compute(v.secret, timestamp, body)
	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}
	return ErrNoMatch
}

// Compute returns the hex HMAC-SHA256 of "{t}.{body}".
func Compute(secret []byte, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
