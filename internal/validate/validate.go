// Package validate provides the pure input checks used by the intake
// workflow: email address shape and mail configuration presence. Both are
// total functions; neither performs network lookups.
package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/donhackett/go-resume-site/internal/config"
)

// emailRE accepts local@domain.tld: no whitespace or '@' inside either part,
// at least one dot in the domain, and a final label that is alphabetic with
// length >= 2. Syntactic only; no MX verification.
var emailRE = regexp.MustCompile(`^[^@\s]+@(?:[^@\s.]+\.)+[A-Za-z]{2,}$`)

// WellFormedEmail reports whether s looks like a deliverable address.
func WellFormedEmail(s string) bool {
	return s != "" && emailRE.MatchString(s)
}

// MissingMailKeys returns the names of required mail settings that are empty.
// The required set mirrors what a send actually needs up front: the relay
// host, port, and the default sender identity.
func MissingMailKeys(mc config.MailConfig) []string {
	var missing []string
	if strings.TrimSpace(mc.Server) == "" {
		missing = append(missing, "MAIL_SERVER")
	}
	if mc.Port == 0 {
		missing = append(missing, "MAIL_PORT")
	}
	if strings.TrimSpace(mc.DefaultSender) == "" {
		missing = append(missing, "MAIL_DEFAULT_SENDER")
	}
	return missing
}

// MailConfigPresent checks that every required mail key carries a value.
// It logs exactly which keys are missing and never fails hard, so startup
// in a mail-less environment still proceeds (sends will report failure at
// dispatch time instead).
func MailConfigPresent(mc config.MailConfig, log zerolog.Logger) bool {
	missing := MissingMailKeys(mc)
	if len(missing) > 0 {
		log.Warn().
			Str("missing", strings.Join(missing, ", ")).
			Msg("mail configuration incomplete")
		return false
	}
	log.Info().
		Str("server", mc.Server+":"+strconv.Itoa(mc.Port)).
		Msg("mail configuration present")
	return true
}
