package rest

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedSigner() *OAuth1Signer {
	signer := NewOAuth1Signer("ck_test", "cs_secret")
	signer.now = func() time.Time { return time.Unix(1700000000, 0) }
	signer.nonce = func() string { return "abc123nonce" }

	return signer
}

func TestOAuth1Signer_GoldenSignature(t *testing.T) {
	t.Parallel()

	req, err := http.NewRequest(http.MethodGet,
		"HTTP://Shop.Local:8080/wp-json/wc/v3/products?per_page=10&status=publish&search=blue+shirt+%26+hat", nil)
	require.NoError(t, err)

	require.NoError(t, fixedSigner().Authenticate(req))

	require.Equal(t,
		`OAuth oauth_consumer_key="ck_test", oauth_nonce="abc123nonce", `+
			`oauth_signature="dKsvip45PCx1iSd%2B1LNwQkFh5s9lbBbDV947D4lmn3M%3D", `+
			`oauth_signature_method="HMAC-SHA256", oauth_timestamp="1700000000", oauth_version="1.0"`,
		req.Header.Get("Authorization"),
	)
}

func TestSignatureBaseString(t *testing.T) {
	t.Parallel()

	target, err := url.Parse("http://shop.local:8080/wp-json/wc/v3/products?per_page=10&status=publish&search=blue+shirt+%26+hat")
	require.NoError(t, err)

	base := SignatureBaseString("get", target, map[string]string{
		"oauth_consumer_key":     "ck_test",
		"oauth_nonce":            "abc123nonce",
		"oauth_signature_method": "HMAC-SHA256",
		"oauth_timestamp":        "1700000000",
		"oauth_version":          "1.0",
		"oauth_signature":        "ignored",
	})

	require.Equal(t,
		"GET&http%3A%2F%2Fshop.local%3A8080%2Fwp-json%2Fwc%2Fv3%2Fproducts&"+
			"oauth_consumer_key%3Dck_test%26oauth_nonce%3Dabc123nonce%26oauth_signature_method%3DHMAC-SHA256%26"+
			"oauth_timestamp%3D1700000000%26oauth_version%3D1.0%26per_page%3D10%26"+
			"search%3Dblue%2520shirt%2520%2526%2520hat%26status%3Dpublish",
		base,
	)
}

func TestSignatureBaseString_SortsByNameBeforeValue(t *testing.T) {
	t.Parallel()

	target, err := url.Parse("http://shop.local/wp-json/wc/v3/orders?a-b=2&a=1&a=0")
	require.NoError(t, err)

	base := SignatureBaseString(http.MethodGet, target, nil)

	require.True(t, strings.HasSuffix(base, "&a%3D0%26a%3D1%26a-b%3D2"), base)
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{raw: "http://shop.local:80/wp-json/wc/v3/", want: "http://shop.local/wp-json/wc/v3/"},
		{raw: "https://SHOP.example.com:443/x?y=1", want: "https://shop.example.com/x"},
		{raw: "http://shop.local:8080", want: "http://shop.local:8080/"},
		{raw: "http://shop.local/a%20b", want: "http://shop.local/a%20b"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()

			u, err := url.Parse(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.want, normalizeURL(u))
		})
	}
}

func TestPercentEncode(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"abc-._~XYZ09": "abc-._~XYZ09",
		"a b":          "a%20b",
		"a+b":          "a%2Bb",
		"a&b=c":        "a%26b%3Dc",
		"é":            "%C3%A9",
		"*":            "%2A",
	}

	for in, want := range cases {
		require.Equal(t, want, percentEncode(in), in)
	}
}

func TestOAuth1Signer_FreshNonceAndTimestampPerRequest(t *testing.T) {
	t.Parallel()

	signer := NewOAuth1Signer("ck", "cs")

	headers := make(map[string]struct{})

	for range 3 {
		req, err := http.NewRequest(http.MethodGet, "http://shop.local/wp-json/wc/v3/products", nil)
		require.NoError(t, err)
		require.NoError(t, signer.Authenticate(req))

		headers[req.Header.Get("Authorization")] = struct{}{}
	}

	require.Len(t, headers, 3)
}
