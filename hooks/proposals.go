package hooks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hellodex/daofin-dashboard/client"
	"github.com/hellodex/daofin-dashboard/logger"
	"github.com/hellodex/daofin-dashboard/model"
	"github.com/hellodex/daofin-dashboard/networks"
	"github.com/hellodex/daofin-dashboard/session"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var ErrProposalNotFound = errors.New("proposal not found")

// UseDaoProposals lists the proposals of a plugin installation with their
// metadata resolved. A metadata failure only affects its own proposal.
func UseDaoProposals(ctx context.Context, s *session.Context, daoAddress, pluginAddress string) *Resource[string, []model.Proposal] {
	r := NewResource(ctx, "useDaoProposals", FetchDaoProposals)
	return bind(s, r, networks.PluginInstallationID(daoAddress, pluginAddress))
}

// UseDaoProposal loads one proposal by its subgraph id.
func UseDaoProposal(ctx context.Context, s *session.Context, proposalID string) *Resource[string, model.Proposal] {
	r := NewResource(ctx, "useDaoProposal", FetchDaoProposal, WithSkip[string, model.Proposal](emptyKey))
	return bind(s, r, proposalID)
}

func FetchDaoProposals(ctx context.Context, c *client.Client, pluginID string) ([]model.Proposal, error) {
	if c.GraphQL == nil {
		return nil, client.ErrClientNotReady
	}

	var out model.SubgraphProposals
	err := c.GraphQL.Request(ctx, client.ProposalsQuery, map[string]any{"pluginId": pluginID}, &out)
	if err != nil {
		return nil, fmt.Errorf("fetch proposals: %w", err)
	}

	proposals := lo.Map(out.PluginProposals, func(sp model.SubgraphProposal, _ int) model.Proposal {
		return model.NewProposal(sp)
	})

	var wg sync.WaitGroup
	for i := range proposals {
		wg.Add(1)
		go func(p *model.Proposal) {
			defer wg.Done()
			resolveMetadata(ctx, c, p)
		}(&proposals[i])
	}
	wg.Wait()

	return proposals, nil
}

func FetchDaoProposal(ctx context.Context, c *client.Client, proposalID string) (model.Proposal, error) {
	if c.GraphQL == nil {
		return model.Proposal{}, client.ErrClientNotReady
	}

	var out model.SubgraphProposalResp
	err := c.GraphQL.Request(ctx, client.ProposalQuery, map[string]any{"proposalId": proposalID}, &out)
	if err != nil {
		return model.Proposal{}, fmt.Errorf("fetch proposal %s: %w", proposalID, err)
	}
	if out.PluginProposal == nil {
		return model.Proposal{}, fmt.Errorf("%w: %s", ErrProposalNotFound, proposalID)
	}

	p := model.NewProposal(*out.PluginProposal)
	resolveMetadata(ctx, c, &p)
	return p, nil
}

// resolveMetadata fills p.Metadata from IPFS. On failure the proposal keeps
// its raw reference and records the cause.
func resolveMetadata(ctx context.Context, c *client.Client, p *model.Proposal) {
	metadata, err := fetchMetadata(ctx, c, p.MetadataURI)
	if err != nil {
		log.Warn().Func(logger.WithCategory(logger.CategoryIPFS)).Err(err).Str("proposal", p.ID).Str("metadata", p.MetadataURI).Msg("metadata unresolved")
		p.MetadataErr = err
		return
	}
	p.Metadata = metadata
	p.MetadataResolved = true
}

func fetchMetadata(ctx context.Context, c *client.Client, ref string) (model.ProposalMetadata, error) {
	if c.IPFS == nil {
		return model.ProposalMetadata{}, client.ErrClientNotReady
	}
	cid, err := client.ResolveIpfsCid(ref)
	if err != nil {
		return model.ProposalMetadata{}, err
	}
	raw, err := c.IPFS.FetchString(ctx, cid)
	if err != nil {
		return model.ProposalMetadata{}, err
	}
	metadata, err := model.UnmarshalProposalMetadata([]byte(raw))
	if err != nil {
		return model.ProposalMetadata{}, fmt.Errorf("parse metadata %s: %w", cid, err)
	}
	return metadata, nil
}
