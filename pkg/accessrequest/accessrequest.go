package accessrequest

import (
	"net/url"
	"strings"

	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"
)

const SuccessMessage = "Access request submitted successfully! We will get back to you within 24-48 hours."

// Option is one checkbox offered by the form.
type Option struct {
	Value string
	Label string
}

var (
	AccessTypes = []Option{
		{Value: "helm", Label: "Helm charts"},
		{Value: "docker", Label: "Docker images"},
		{Value: "source", Label: "Source repository"},
		{Value: "support", Label: "Enterprise support"},
	}
	Agreements = []Option{
		{Value: "terms", Label: "I agree to the terms of service"},
		{Value: "security", Label: "I agree to follow the security guidelines"},
	}
)

// Request is a submitted access request. Nothing is persisted or sent.
type Request struct {
	ReferenceID string   `form:"-"`
	Name        string   `form:"name" validate:"required"`
	Email       string   `form:"email" validate:"required,email"`
	Company     string   `form:"company" validate:"required"`
	Role        string   `form:"role"`
	Environment string   `form:"environment"`
	UseCase     string   `form:"useCase"`
	AccessTypes []string `form:"accessTypes" validate:"min=1,dive,oneof=helm docker source support"`
	Agreements  []string `form:"agreements" validate:"min=1"`
}

var (
	decoder  = form.NewDecoder()
	validate = validator.New()
)

// Decode reads a request from submitted form values and assigns it a
// reference id. Fields that cannot be decoded are dropped and reported in
// the returned error; the request itself is always usable.
func Decode(values url.Values) (*Request, error) {
	kept := url.Values{}
	dropped := sets.New[string]()
	for field, group := range groupByField(values) {
		if err := decoder.Decode(&Request{}, group); err != nil {
			log.WithError(err).WithField("field", field).Debug("dropping undecodable form field")
			dropped.Insert(field)
			continue
		}
		for key, vals := range group {
			kept[key] = vals
		}
	}

	req := &Request{}
	if err := decoder.Decode(req, kept); err != nil {
		req = &Request{}
		dropped.Insert(sets.List(sets.KeySet(groupByField(kept)))...)
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Company = strings.TrimSpace(req.Company)
	req.ReferenceID = uuid.NewString()

	if dropped.Len() > 0 {
		return req, errors.Errorf("dropped undecodable form fields: %s", strings.Join(sets.List(dropped), ", "))
	}
	return req, nil
}

// groupByField splits values by the field they address, so "accessTypes" and
// "accessTypes[3]" land in the same group.
func groupByField(values url.Values) map[string]url.Values {
	groups := map[string]url.Values{}
	for key, vals := range values {
		field := key
		if i := strings.IndexAny(key, "[."); i >= 0 {
			field = key[:i]
		}
		if groups[field] == nil {
			groups[field] = url.Values{}
		}
		groups[field][key] = vals
	}
	return groups
}

// Missing returns the fields that failed validation. It is informational
// only; an incomplete request is still accepted.
func (r *Request) Missing() []string {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

// Submit accepts the request. Submission always succeeds: there is no
// backend behind the form.
func Submit(r *Request) string {
	logger := log.WithFields(log.Fields{
		"reference":   r.ReferenceID,
		"accessTypes": r.AccessTypes,
		"agreements":  len(r.Agreements),
	})
	if missing := r.Missing(); len(missing) > 0 {
		logger.WithField("missing", missing).Warning("access request is incomplete")
	}
	logger.Info("access request received")
	return SuccessMessage
}
