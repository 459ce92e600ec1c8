package rest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	oauthVersion         = "1.0"
	oauthSignatureMethod = "HMAC-SHA256"
)

// OAuth1Signer signs each request with a one-legged OAuth 1.0a HMAC-SHA256 signature
// carried in the Authorization header. Query parameters of the request are part of
// the signed parameter set.
type OAuth1Signer struct {
	ConsumerKey    string
	ConsumerSecret string

	now   func() time.Time
	nonce func() string
}

func NewOAuth1Signer(consumerKey, consumerSecret string) *OAuth1Signer {
	return &OAuth1Signer{
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		now:            time.Now,
		nonce:          newNonce,
	}
}

func (s *OAuth1Signer) Name() string { return "oauth1" }

func (s *OAuth1Signer) Authenticate(req *http.Request) error {
	oauthParams := map[string]string{
		"oauth_consumer_key":     s.ConsumerKey,
		"oauth_nonce":            s.nonce(),
		"oauth_signature_method": oauthSignatureMethod,
		"oauth_timestamp":        strconv.FormatInt(s.now().Unix(), 10),
		"oauth_version":          oauthVersion,
	}

	oauthParams["oauth_signature"] = s.Sign(req.Method, req.URL, oauthParams)

	req.Header.Set("Authorization", authorizationHeader(oauthParams))

	return nil
}

// Sign returns the base64 HMAC-SHA256 signature of the request described by method,
// target and the oauth_* parameters.
func (s *OAuth1Signer) Sign(method string, target *url.URL, oauthParams map[string]string) string {
	mac := hmac.New(sha256.New, []byte(percentEncode(s.ConsumerSecret)+"&"))
	mac.Write([]byte(SignatureBaseString(method, target, oauthParams)))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignatureBaseString builds METHOD&enc(normalized URL)&enc(sorted parameters).
// Parameters are sorted by encoded name, then by encoded value.
func SignatureBaseString(method string, target *url.URL, oauthParams map[string]string) string {
	type pair struct{ key, value string }

	pairs := make([]pair, 0, len(oauthParams)+len(target.Query()))

	for key, value := range oauthParams {
		if key == "oauth_signature" {
			continue
		}

		pairs = append(pairs, pair{percentEncode(key), percentEncode(value)})
	}

	for key, values := range target.Query() {
		for _, value := range values {
			pairs = append(pairs, pair{percentEncode(key), percentEncode(value)})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}

		return pairs[i].value < pairs[j].value
	})

	encoded := make([]string, len(pairs))
	for i, p := range pairs {
		encoded[i] = p.key + "=" + p.value
	}

	return strings.ToUpper(method) + "&" +
		percentEncode(normalizeURL(target)) + "&" +
		percentEncode(strings.Join(encoded, "&"))
}

func normalizeURL(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())

	if port := u.Port(); port != "" && !(scheme == "http" && port == "80") && !(scheme == "https" && port == "443") {
		host += ":" + port
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	return scheme + "://" + host + path
}

func authorizationHeader(oauthParams map[string]string) string {
	keys := make([]string, 0, len(oauthParams))
	for key := range oauthParams {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, percentEncode(key)+`="`+percentEncode(oauthParams[key])+`"`)
	}

	return "OAuth " + strings.Join(parts, ", ")
}

// percentEncode applies RFC 3986 encoding: only unreserved characters stay literal.
func percentEncode(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)

			continue
		}

		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}

	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	default:
		return false
	}
}

func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
