package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
)

// flashCookie is the cookie name carrying the pending flash message.
const flashCookie = "resume_site_flash"

// Flash is a one-shot feedback message rendered on the next page view.
// Category maps to the alert style: "success", "info", "danger".
type Flash struct {
	Message  string `json:"m"`
	Category string `json:"c"`
}

// SetFlash stores a flash in a signed cookie. The value is
// base64(json) + "." + hex(hmac-sha256), verified on read so a tampered
// cookie is silently dropped.
func SetFlash(c *gin.Context, secret string, f Flash) {
	payload, err := json.Marshal(f)
	if err != nil {
		return
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	value := encoded + "." + sign(secret, encoded)
	c.SetCookie(flashCookie, value, 300, "/", "", false, true)
}

// PopFlash returns the pending flash, if any, and clears the cookie.
// Unsigned or tampered cookies yield nil.
func PopFlash(c *gin.Context, secret string) *Flash {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	// Clear regardless of validity: flashes are one-shot.
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	encoded, mac, ok := strings.Cut(value, ".")
	if !ok {
		return nil
	}
	if !hmac.Equal([]byte(mac), []byte(sign(secret, encoded))) {
		return nil
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(payload, &f); err != nil {
		return nil
	}
	return &f
}

func sign(secret, data string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
