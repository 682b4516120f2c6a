package param

import (
	"net/http"
	"regexp"

	log "github.com/sirupsen/logrus"
)

// when requesting a param, also validate it against a regexp to ensure it is what we expect
var wordRegexp = regexp.MustCompile(`^[\w]+$`)
var nameRegexp = regexp.MustCompile(`^[-.\w]+$`)
var dateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
var paramRegexp = map[string]*regexp.Regexp{
	// changelog params
	"filter": regexp.MustCompile(`^(all|helm|docker|breaking)$`),
	// load test params
	"type":      nameRegexp,
	"startDate": dateRegexp,
	"endDate":   dateRegexp,
	"tab":       wordRegexp,
	// refresh
	"force": regexp.MustCompile(`^(true|false)$`),
}

// SafeRead returns the value of a query parameter only if it matches the given regexp.
// this should be used to validate query parameters that are not otherwise validated.
func SafeRead(req *http.Request, name string) string {
	re, ok := paramRegexp[name]
	if !ok {
		log.Fatalf("code BUG: request for unknown param %s", name) // revive:disable-line:deep-exit
	}
	value := req.URL.Query().Get(name)
	if value == "" || re.MatchString(value) {
		return value
	}
	log.Warnf("invalid value for %s param: %q", name, value)
	return ""
}
