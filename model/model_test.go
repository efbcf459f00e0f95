package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalSubgraphProposals(t *testing.T) {
	data := []byte(`{"pluginProposals":[{
		"id":"0xplugin_0x2","pluginProposalId":"2","creator":"0xabc","metadata":"ipfs://cid",
		"startDate":"1700000000","endDate":"1700600000","creationBlockNumber":"120","snapshotBlock":"119",
		"executed":false,"potentiallyExecutable":true,
		"actions":[{"id":"a","to":"0xdef","value":"1000000000000000000","data":"0x"},{"id":"b","to":"0xdef","value":"0","data":"0x12"}],
		"dao":{"id":"0xdao"}}]}`)

	r, err := UnmarshalSubgraphProposals(data)
	require.NoError(t, err)
	require.Len(t, r.PluginProposals, 1)

	p := NewProposal(r.PluginProposals[0])
	assert.Equal(t, int64(1700000000), p.StartDate)
	assert.Equal(t, int64(1700600000), p.EndDate)
	assert.Equal(t, int64(120), p.CreationBlockNumber)
	assert.Equal(t, int64(119), p.SnapshotBlock)
	assert.True(t, p.PotentiallyExecutable)
	assert.Equal(t, "0xdao", p.Dao.ID)
	assert.Equal(t, "ipfs://cid", p.MetadataURI)
	assert.False(t, p.MetadataResolved)
	assert.Equal(t, "0xplugin_0x2", p.Title())

	require.Len(t, p.Actions, 2)
	assert.Equal(t, "1000000000000000000", p.Actions[0].Value.String())
	assert.True(t, p.Actions[0].IsTransfer())
	assert.False(t, p.Actions[1].IsTransfer())

	p.Metadata = ProposalMetadata{Title: "Resolved"}
	p.MetadataResolved = true
	assert.Equal(t, "Resolved", p.Title())
}

func TestUnmarshalDeposits(t *testing.T) {
	r, err := UnmarshalDeposits([]byte(`{"pluginDeposits":[{"id":"d1","voter":"0xabc","amount":"250000000000000000","snapshotBlock":"42","txHash":"0x01"}]}`))
	require.NoError(t, err)
	require.Len(t, r.PluginDeposits, 1)

	d := r.PluginDeposits[0]
	assert.Equal(t, "0.25", d.Amount.Shift(-18).String())
	assert.Equal(t, int64(42), d.SnapshotBlockNumber())
}

func TestUnmarshalProposalMetadata(t *testing.T) {
	m, err := UnmarshalProposalMetadata([]byte(`{"title":"T","summary":"S","description":"D","resources":[{"name":"forum","url":"https://forum.example.org"}],"media":{"logo":"ipfs://logo"}}`))
	require.NoError(t, err)
	assert.Equal(t, "T", m.Title)
	require.Len(t, m.Resources, 1)
	assert.Equal(t, "forum", m.Resources[0].Name)
	require.NotNil(t, m.Media)
	assert.Equal(t, "ipfs://logo", m.Media.Logo)

	_, err = UnmarshalProposalMetadata([]byte(`not json`))
	assert.Error(t, err)
}
