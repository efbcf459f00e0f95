package main

import (
	"fmt"
	"time"

	"github.com/hellodex/daofin-dashboard/hooks"
	"github.com/hellodex/daofin-dashboard/networks"
	"github.com/hellodex/daofin-dashboard/template"
	"github.com/hellodex/daofin-dashboard/view"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func proposalsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "proposals",
		Short: "List the proposals of the plugin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := hooks.UseDaoProposals(cmd.Context(), a.session, a.cfg.Dao.Address, a.cfg.Dao.PluginAddress)
			defer r.Close()
			r.Wait()

			v := r.View()
			if v.Err != nil {
				return v.Err
			}
			out, err := template.RenderProposalList(v.Data)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func proposalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "proposal <number>",
		Short: "Show one proposal with the voter's eligibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := cast.ToInt64E(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("invalid proposal number %q", args[0])
			}
			proposalID := networks.PluginProposalID(a.cfg.Dao.PluginAddress, n)

			r := hooks.UseDaoProposal(cmd.Context(), a.session, proposalID)
			defer r.Close()
			agg := view.NewAggregator(cmd.Context(), a.session, proposalID, a.voter)
			defer agg.Close()
			r.Wait()
			agg.Wait()

			v := r.View()
			if v.Err != nil {
				return v.Err
			}
			details := view.NewProposalDetails(v.Data, a.session.Network(), agg.Snapshot(), time.Now())
			out, err := template.RenderProposalDetails(details)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func depositsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deposits",
		Short: "List the deposits made to the plugin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.session.Client()
			if c == nil {
				return fmt.Errorf("not connected")
			}
			r := hooks.UseDeposits(cmd.Context(), a.session, c.PluginID)
			defer r.Close()
			r.Wait()

			v := r.View()
			if v.Err != nil {
				return v.Err
			}
			out, err := template.RenderDeposits(view.NewDepositRows(v.Data, a.session.Network()))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func depositCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Deposit native currency to become eligible to vote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.session.Client()
			if c == nil {
				return fmt.Errorf("not connected")
			}

			var confirmer view.Confirmer
			if a.rpc != nil {
				confirmer = a.rpc
			}
			w := view.NewDepositWorkflow(c.Methods, confirmer)
			unsubscribe := w.Subscribe(func(s view.DepositStatus) {
				if out, err := template.RenderDepositStatus(s); err == nil {
					fmt.Fprint(cmd.OutOrStdout(), out)
				}
			})
			defer unsubscribe()

			return w.Submit(cmd.Context(), args[0])
		},
	}
}

func networkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "network",
		Short: "Show the connected network and check the node's chain id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			network := a.session.Network()
			chain := a.registry.Chain(network)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (chain id %d, %s)\n", chain.Name, chain.ID, networks.TranslateToNetworkishName(network))
			fmt.Fprintf(cmd.OutOrStdout(), "explorer: %s\n", chain.Explorer)
			if chain.IPFS != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "ipfs: %s\n", chain.IPFS)
			}

			if a.rpc == nil {
				return nil
			}
			node, err := a.rpc.Network(cmd.Context())
			if err != nil {
				return fmt.Errorf("check %s: %w", a.rpc.Endpoint(), err)
			}
			if node != network {
				return fmt.Errorf("node at %s serves %s, not %s", a.rpc.Endpoint(), node, network)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "node: %s ok\n", a.rpc.Endpoint())
			return nil
		},
	}
}
