package fetch

import (
	"encoding/hex"
	"net/url"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// Kind separates cache namespaces.
type Kind string

const (
	KindPage   Kind = "get"
	KindSearch Kind = "search"
	KindIndex  Kind = "index"
)

// Key identifies a cached page.
//
// Page keys are stable. Search and index keys carry the fetch date, since
// those listings only stay valid for a day.
type Key struct {
	Kind     Kind
	Host     string
	Endpoint string
	Params   url.Values
	Date     time.Time // zero for stable keys
}

// PageKey returns the stable key for a direct page fetch.
func PageKey(host, endpoint string, params url.Values) Key {
	return Key{Kind: KindPage, Host: host, Endpoint: endpoint, Params: params}
}

// DatedKey returns a key that expires at the end of the calendar day of now.
func DatedKey(kind Kind, host, endpoint string, params url.Values, now time.Time) Key {
	return Key{Kind: kind, Host: host, Endpoint: endpoint, Params: params, Date: now}
}

// String renders the key as a file-name-safe string, prefixed by its kind.
func (k Key) String() string {
	parts := []string{string(k.Kind), k.Host}
	if k.Date.IsZero() {
		parts = append(parts, strings.ReplaceAll(k.Endpoint, "/", "_"))
	} else {
		parts = append(parts, k.Date.Format("2006-01-02"), url.PathEscape(k.Endpoint))
	}
	if len(k.Params) > 0 {
		// Hashed so long queries cannot produce over-long file names.
		sum := blake3.Sum256([]byte(k.Params.Encode()))
		parts = append(parts, hex.EncodeToString(sum[:]))
	}
	return strings.Join(parts, "__")
}
