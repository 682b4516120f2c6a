package accesshtml

import (
	"fmt"
	"net/http"
	"time"

	"github.com/composio/docsite/pkg/accessrequest"
	"github.com/composio/docsite/pkg/html/generichtml"
)

const (
	Title  = "Request Access - Composio Self-Hosted"
	FormID = "accessRequestForm"
)

func field(name, label, inputType string, required bool) generichtml.HTMLElement {
	input := generichtml.HTMLElement{
		Element: "input",
		Params:  map[string]string{"type": inputType, "id": name, "name": name},
	}
	if required {
		input.Params["required"] = "required"
	}
	return generichtml.NewElement("div", "form-group",
		generichtml.HTMLElement{Element: "label", Params: map[string]string{"for": name}, HTMLItems: []generichtml.HTMLItem{generichtml.Text(label)}},
		input,
	)
}

func checkboxes(name, legend string, options []accessrequest.Option) generichtml.HTMLElement {
	set := generichtml.NewElement("fieldset", "checkbox-group", generichtml.NewTextElement("legend", "", legend))
	for _, opt := range options {
		set.HTMLItems = append(set.HTMLItems, generichtml.NewElement("label", "checkbox-label",
			generichtml.HTMLElement{
				Element: "input",
				Params:  map[string]string{"type": "checkbox", "name": name, "value": opt.Value},
			},
			generichtml.Text(" "+opt.Label),
		))
	}
	return set
}

// FormHTML renders an empty access request form.
func FormHTML() string {
	useCase := generichtml.NewElement("div", "form-group",
		generichtml.HTMLElement{Element: "label", Params: map[string]string{"for": "useCase"}, HTMLItems: []generichtml.HTMLItem{generichtml.Text("Use case")}},
		generichtml.HTMLElement{Element: "textarea", Params: map[string]string{"id": "useCase", "name": "useCase", "rows": "4"}},
	)
	environment := generichtml.NewElement("div", "form-group",
		generichtml.HTMLElement{Element: "label", Params: map[string]string{"for": "environment"}, HTMLItems: []generichtml.HTMLItem{generichtml.Text("Target environment")}},
		generichtml.HTMLElement{
			Element: "select",
			Params:  map[string]string{"id": "environment", "name": "environment"},
			HTMLItems: []generichtml.HTMLItem{
				generichtml.HTMLElement{Element: "option", Params: map[string]string{"value": "gke"}, Text: "GKE"},
				generichtml.HTMLElement{Element: "option", Params: map[string]string{"value": "eks"}, Text: "EKS"},
				generichtml.HTMLElement{Element: "option", Params: map[string]string{"value": "aks"}, Text: "AKS"},
				generichtml.HTMLElement{Element: "option", Params: map[string]string{"value": "other"}, Text: "Other Kubernetes"},
			},
		},
	)
	submit := generichtml.HTMLElement{
		Element:   "button",
		Params:    map[string]string{"class": "btn btn-primary", "type": "submit"},
		HTMLItems: []generichtml.HTMLItem{generichtml.Icon("fas fa-paper-plane"), generichtml.Text(" Submit Request")},
	}

	return generichtml.HTMLElement{
		Element: "form",
		Params:  map[string]string{"id": FormID, "class": "access-form", "method": "post", "action": "/access-request"},
		HTMLItems: []generichtml.HTMLItem{
			field("name", "Full name", "text", true),
			field("email", "Work email", "email", true),
			field("company", "Company", "text", true),
			field("role", "Role", "text", false),
			environment,
			useCase,
			checkboxes("accessTypes", "Access needed", accessrequest.AccessTypes),
			checkboxes("agreements", "Agreements", accessrequest.Agreements),
			submit,
		},
	}.ToHTML()
}

// PrintAccessRequestHTMLReport writes the access request page. The form is
// always rendered empty; notifications report the outcome of a submission.
func PrintAccessRequestHTMLReport(w http.ResponseWriter, req *http.Request, loadedAt time.Time, notifications ...generichtml.Notification) {
	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	generichtml.WritePageStart(w, req.URL.Path, "access-request", Title)
	for _, n := range notifications {
		fmt.Fprintln(w, n.ToHTML())
	}

	fmt.Fprintf(w, `
<section class="page-header %s">
  <h1><i class="fas fa-key"></i> Request Access</h1>
  <p>Tell us about your deployment and we will share registry and chart credentials.</p>
</section>
`, generichtml.RevealClass)
	fmt.Fprintln(w, FormHTML())

	generichtml.WritePageEnd(w, loadedAt)
}
