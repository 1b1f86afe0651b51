package document

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"advoqat/models"
)

type registeredTemplate struct {
	meta models.DocumentTemplate
	body *template.Template
}

// templateRegistry holds the built-in templates keyed by ID. Rendering uses
// missingkey=error so a template never silently emits "<no value>".
var templateRegistry = map[string]registeredTemplate{
	"demand-letter": {
		meta: models.DocumentTemplate{
			ID:          "demand-letter",
			Name:        "Demand Letter",
			Description: "Formal demand for payment or action before litigation.",
			Fields:      []string{"sender_name", "recipient_name", "amount", "deadline", "matter"},
			Price:       15.00,
		},
		body: mustParse("demand-letter", `{{.sender_name}}

To: {{.recipient_name}}

RE: {{.matter}}

This letter constitutes a formal demand for {{.amount}} in connection with the matter described above. Payment or a written response is required no later than {{.deadline}}. Failure to respond by that date may result in legal action being taken without further notice.

Sincerely,
{{.sender_name}}`),
	},
	"nda": {
		meta: models.DocumentTemplate{
			ID:          "nda",
			Name:        "Non-Disclosure Agreement",
			Description: "Mutual confidentiality agreement between two parties.",
			Fields:      []string{"party_one", "party_two", "effective_date", "term_years"},
			Price:       20.00,
		},
		body: mustParse("nda", `NON-DISCLOSURE AGREEMENT

This Agreement is entered into on {{.effective_date}} between {{.party_one}} and {{.party_two}} (together, the "Parties").

1. Each Party agrees to hold in strict confidence all Confidential Information disclosed by the other Party.
2. Confidential Information shall not be disclosed to any third party without prior written consent.
3. This Agreement remains in effect for {{.term_years}} year(s) from the effective date.

Agreed and accepted:

{{.party_one}}

{{.party_two}}`),
	},
	"lease-termination": {
		meta: models.DocumentTemplate{
			ID:          "lease-termination",
			Name:        "Lease Termination Notice",
			Description: "Tenant's notice of intent to terminate a residential lease.",
			Fields:      []string{"tenant_name", "landlord_name", "property_address", "termination_date"},
			Price:       10.00,
		},
		body: mustParse("lease-termination", `NOTICE OF LEASE TERMINATION

To: {{.landlord_name}}

Please be advised that the undersigned tenant of the premises located at {{.property_address}} hereby gives notice of intent to terminate the lease effective {{.termination_date}}.

The tenant requests a final walkthrough inspection and return of the security deposit as provided by law.

{{.tenant_name}}`),
	},
}

func mustParse(name, body string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=error").Parse(body))
}

// ListTemplates returns the registered templates sorted by name.
func (s *DefaultDocumentService) ListTemplates() []models.DocumentTemplate {
	out := make([]models.DocumentTemplate, 0, len(templateRegistry))
	for _, t := range templateRegistry {
		out = append(out, t.meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// renderTemplate renders the template identified by templateID with the given
// fields. All declared fields must be present and non-empty.
func renderTemplate(templateID string, fields map[string]string) (registeredTemplate, string, error) {
	tmpl, ok := templateRegistry[templateID]
	if !ok {
		return registeredTemplate{}, "", ErrUnknownTemplate
	}
	for _, f := range tmpl.meta.Fields {
		if fields[f] == "" {
			return registeredTemplate{}, "", fmt.Errorf("missing template field %q", f)
		}
	}
	data := make(map[string]any, len(fields))
	for k, v := range fields {
		data[k] = v
	}
	var buf bytes.Buffer
	if err := tmpl.body.Execute(&buf, data); err != nil {
		return registeredTemplate{}, "", fmt.Errorf("failed to render template %s: %w", templateID, err)
	}
	return tmpl, buf.String(), nil
}
