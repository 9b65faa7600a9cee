package dashboard

import (
	"fmt"
	"html/template"
	"strings"
)

// entryTemplate renders one order record entry. The three buttons are
// addressed by order reference through data attributes; whatever surface
// hosts the log wires them to EditSession.Open, SubmitController.Send and
// Log.ToggleRaw.
const entryTemplate = `<div class="order-entry" data-orderref="{{.OrderRef}}">
  <div class="order-header">
    <h3>Utopia Order Data</h3>
    <div class="order-actions">
      <button data-action="edit" data-orderref="{{.OrderRef}}">Edit</button>
      <button data-action="send" data-orderref="{{.OrderRef}}">Send to PowerCode</button>
      <button data-action="toggle-raw" data-orderref="{{.OrderRef}}">{{if .RawVisible}}Hide JSON{{else}}View JSON{{end}}</button>
    </div>
  </div>
  <dl class="order-summary">
    <dt>Status</dt><dd>{{.Status}}</dd>
    <dt>Order Source</dt><dd>{{.OrderSource}}</dd>
    <dt>Service Plan</dt><dd>{{.ServicePlan}}</dd>
  </dl>
{{- with .Customer}}
  <div class="customer-block">
    <h4>Customer Information</h4>
    <div>Name: {{.Name}}</div>
    <div>Email: {{.Email}}</div>
    <div>Phone: {{.Phone}}</div>
  </div>
{{- end}}
{{- with .Address}}
  <div class="address-block">
    <h4>Service Address</h4>
    <div>Site ID: {{.SiteID}}</div>
    <div>Address: {{.Address}}</div>
    {{- if .Apt}}
    <div>Apt: {{.Apt}}</div>
    {{- end}}
    <div>City: {{.City}}, {{.State}} {{.Zip}}</div>
  </div>
{{- end}}
{{- if .Items}}
  <div class="items-block">
    <h4>Order Items</h4>
    <ol>
    {{- range .Items}}
      <li>{{.Description}} — Quantity: {{.Quantity}} | Cost: {{.TotalCost}}</li>
    {{- end}}
    </ol>
  </div>
{{- end}}
{{- if .RawVisible}}
  <div class="raw-json" data-orderref="{{.OrderRef}}">
    <pre>{{.RawJSON}}</pre>
  </div>
{{- end}}
</div>`

var entryTmpl = template.Must(template.New("entry").Parse(entryTemplate))

// RenderEntry produces the markup for one record entry from its view model.
func RenderEntry(v EntryView) (string, error) {
	var b strings.Builder
	if err := entryTmpl.Execute(&b, v); err != nil {
		return "", fmt.Errorf("render entry %s: %w", v.OrderRef, err)
	}
	return b.String(), nil
}
