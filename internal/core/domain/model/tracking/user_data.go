package tracking

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// UserData identifies the shopper behind an event. Values are normalised on
// construction; PII fields are hashed only when serialised for delivery.
type UserData struct {
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	ZipCode         string `json:"zip_code,omitempty"`
	Country         string `json:"country,omitempty"`
	ExternalID      string `json:"external_id,omitempty"`
	ClientIPAddress string `json:"client_ip_address,omitempty"`
	ClientUserAgent string `json:"client_user_agent,omitempty"`
	FBP             string `json:"fbp,omitempty"`
	FBC             string `json:"fbc,omitempty"`
}

// Normalized trims and lower-cases identifying fields and reduces the phone number
// to digits. Client context fields are only trimmed.
func (u UserData) Normalized() UserData {
	lower := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return UserData{
		Email:           lower(u.Email),
		Phone:           digitsOnly(u.Phone),
		FirstName:       lower(u.FirstName),
		LastName:        lower(u.LastName),
		City:            lower(u.City),
		State:           lower(u.State),
		ZipCode:         lower(u.ZipCode),
		Country:         lower(u.Country),
		ExternalID:      lower(u.ExternalID),
		ClientIPAddress: strings.TrimSpace(u.ClientIPAddress),
		ClientUserAgent: strings.TrimSpace(u.ClientUserAgent),
		FBP:             strings.TrimSpace(u.FBP),
		FBC:             strings.TrimSpace(u.FBC),
	}
}

// Merge fills empty fields of u from other.
func (u UserData) Merge(other UserData) UserData {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return UserData{
		Email:           pick(u.Email, other.Email),
		Phone:           pick(u.Phone, other.Phone),
		FirstName:       pick(u.FirstName, other.FirstName),
		LastName:        pick(u.LastName, other.LastName),
		City:            pick(u.City, other.City),
		State:           pick(u.State, other.State),
		ZipCode:         pick(u.ZipCode, other.ZipCode),
		Country:         pick(u.Country, other.Country),
		ExternalID:      pick(u.ExternalID, other.ExternalID),
		ClientIPAddress: pick(u.ClientIPAddress, other.ClientIPAddress),
		ClientUserAgent: pick(u.ClientUserAgent, other.ClientUserAgent),
		FBP:             pick(u.FBP, other.FBP),
		FBC:             pick(u.FBC, other.FBC),
	}
}

// Hashed returns the Conversions API user_data object: PII as SHA-256 hex digests,
// client context in clear text.
func (u UserData) Hashed() map[string]any {
	n := u.Normalized()
	out := map[string]any{}
	hashed := map[string]string{
		"em":          n.Email,
		"ph":          n.Phone,
		"fn":          n.FirstName,
		"ln":          n.LastName,
		"ct":          n.City,
		"st":          n.State,
		"zp":          n.ZipCode,
		"country":     n.Country,
		"external_id": n.ExternalID,
	}
	for key, value := range hashed {
		if value != "" {
			out[key] = []string{HashSHA256(value)}
		}
	}
	plain := map[string]string{
		"client_ip_address": n.ClientIPAddress,
		"client_user_agent": n.ClientUserAgent,
		"fbp":               n.FBP,
		"fbc":               n.FBC,
	}
	for key, value := range plain {
		if value != "" {
			out[key] = value
		}
	}
	return out
}

// HashSHA256 returns the lowercase hex digest of value.
func HashSHA256(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
