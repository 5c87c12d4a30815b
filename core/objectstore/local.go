package objectstore

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/logger"
)

// Local is the local implementation of the objectstore Driver. Instead of
// delegating to S3 it signs upload URLs under a base URL with an HMAC, so
// the local server can verify them itself.
type Local struct {
	baseURL url.URL
	secret  []byte
}

// NewLocal returns a new Local. If secret is nil a random one is generated;
// that can only work in a single instance configuration.
func NewLocal(baseURL url.URL, secret []byte) *Local {
	if secret == nil {
		logger.Default().Warn("No secret provided to sign URLs, a random one will be generated")
		logger.Default().Warn("This can only work when running in a single instance configuration")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic(err)
		}
	}
	return &Local{baseURL: baseURL, secret: secret}
}

// PresignPut returns a signed URL for a PUT of key, valid until expireIn has
// passed
func (l *Local) PresignPut(ctx context.Context, key, contentType string, expireIn time.Duration) (string, error) {
	expiry := time.Now().Add(expireIn).Unix()
	u := l.baseURL
	v := url.Values{}
	v.Set("key", key)
	v.Set("contentType", contentType)
	v.Set("expiry", strconv.FormatInt(expiry, 10))
	v.Set("signature", l.sign(key, contentType, expiry))
	u.RawQuery = v.Encode()
	return u.String(), nil
}

// Verify checks a signed URL's signature and expiry and returns the key it
// was issued for.
func (l *Local) Verify(rawURL string) (key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	v := u.Query()
	key = v.Get("key")
	expiry, err := strconv.ParseInt(v.Get("expiry"), 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid expiry: %w", err)
	}
	if time.Now().Unix() > expiry {
		return "", errors.New("URL has expired")
	}
	expected := l.sign(key, v.Get("contentType"), expiry)
	if !hmac.Equal([]byte(expected), []byte(v.Get("signature"))) {
		return "", errors.New("invalid signature")
	}
	return key, nil
}

func (l *Local) sign(key, contentType string, expiry int64) string {
	mac := hmac.New(sha256.New, l.secret)
	fmt.Fprintf(mac, "%s\n%s\n%d", key, contentType, expiry)
	return hex.EncodeToString(mac.Sum(nil))
}
