package template

import (
	"github.com/flosch/pongo2/v6"
	"github.com/hellodex/daofin-dashboard/model"
	"github.com/hellodex/daofin-dashboard/view"
)

var proposalDetailsTemplate = `{% autoescape off %}
{{ d.Title }}
Published by {{ d.Publisher }} ({{ d.PublisherLink }})
{%- if not d.MetadataResolved %}
(metadata unavailable)
{%- endif %}

Summary:
{{ d.Summary }}

Description:
{{ d.Description|striptags }}

Actions:
{%- for a in d.Actions %}
|--{{ a.Value }} {{ a.Symbol }} -> {{ a.To }}{% if a.InvalidAction %}
|  invalid action {{ a.Data }}{% endif %}
{%- empty %}
|--none
{%- endfor %}

Duration:
|--Now: {{ d.Durations.Now|date:"Mon, 02 Jan 2006 15:04:05 MST" }}
|--Start Date: {{ d.Durations.Start|date:"Mon, 02 Jan 2006 15:04:05 MST" }}
|--End Date: {{ d.Durations.End|date:"Mon, 02 Jan 2006 15:04:05 MST" }}
{%- if d.Eligibility.Voter %}

Voting Eligibility ({{ d.Eligibility.Voter|shortenAddress }}):
|--Has Deposit? {% if d.Eligibility.HasDeposit %}Yes{% else %}No{% endif %}
|--Deposited: {{ d.Eligibility.DepositAmount }} {{ d.Symbol }}
|--Has Voted on proposal no. {{ d.PluginProposalID }}? {% if d.Eligibility.HasVoted %}Yes{% else %}No{% endif %}
|--Vote: {% if d.CanVote %}available{% else %}unavailable{% endif %}
|--Deposit: {% if d.CanDeposit %}available{% else %}unavailable{% endif %}
{%- endif %}
{% endautoescape %}`

func RenderProposalDetails(d view.ProposalDetails) (string, error) {
	return render("proposal details", proposalDetailsTemplate, pongo2.Context{"d": d})
}

var proposalListTemplate = `{% autoescape off %}
{{ size }} proposals:
{% for p in proposals %}
#{{ p.PluginProposalID }} {% if p.MetadataResolved %}{{ p.Metadata.Title }}{% else %}{{ p.ID }}{% endif %}{% if p.Executed %} [executed]{% endif %}
|--Creator: {{ p.Creator|shortenAddress }}
|--Start: {{ p.StartDate|formatDate:"proposals" }}
|--End: {{ p.EndDate|formatDate:"proposals" }}
|--Actions: {{ p.Actions|length }}
{% endfor %}{% endautoescape %}`

func RenderProposalList(proposals []model.Proposal) (string, error) {
	return render("proposal list", proposalListTemplate, pongo2.Context{
		"proposals": proposals,
		"size":      len(proposals),
	})
}
