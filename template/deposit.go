package template

import (
	"github.com/flosch/pongo2/v6"
	"github.com/hellodex/daofin-dashboard/view"
)

var depositsTemplate = `{% autoescape off %}
{{ size }} deposits:
{% for d in deposits %}
{{ d.Voter }} deposited {{ d.Amount }} {{ d.Symbol }}
|--Snapshot block: {{ d.SnapshotBlock }}
{%- if d.TxLink %}
|--Tx: {{ d.TxLink }}{% endif %}
{% endfor %}{% endautoescape %}`

func RenderDeposits(rows []view.DepositRow) (string, error) {
	return render("deposits", depositsTemplate, pongo2.Context{
		"deposits": rows,
		"size":     len(rows),
	})
}

var depositStatusTemplate = `{% autoescape off %}Deposit {{ status }}{% if tx %}
|--Tx: {{ tx }}{% endif %}{% if reason %}
|--Reason: {{ reason }}{% endif %}
{% endautoescape %}`

func RenderDepositStatus(s view.DepositStatus) (string, error) {
	ctx := pongo2.Context{
		"status": s.State.String(),
		"tx":     s.TxHash,
		"reason": "",
	}
	if s.Err != nil {
		ctx["reason"] = s.Err.Err.Error()
	}
	return render("deposit status", depositStatusTemplate, ctx)
}
