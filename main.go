package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hellodex/daofin-dashboard/config"
	"github.com/hellodex/daofin-dashboard/logger"
	"github.com/hellodex/daofin-dashboard/networks"
	"github.com/hellodex/daofin-dashboard/rpc"
	"github.com/hellodex/daofin-dashboard/session"
	"github.com/hellodex/daofin-dashboard/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		logger.StdLogger().Error().Err(err).Send()
		os.Exit(1)
	}
}

// app is what every subcommand runs against.
type app struct {
	cfg      *config.Config
	registry *networks.Registry
	session  *session.Context
	rpc      *rpc.Client
	voter    string
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		voter      string
		network    string
		a          = &app{}
	)

	cmd := &cobra.Command{
		Use:           "daofin",
		Short:         "Daofin governance dashboard",
		Long:          "Reads proposals, deposits and voter eligibility of a Daofin plugin installation on XDC networks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context(), configPath, network, voter)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML), defaults to $"+config.ConfigPathEnv+" or "+config.DefaultConfigPath)
	cmd.PersistentFlags().StringVar(&voter, "voter", "", "Wallet address to check eligibility for")
	cmd.PersistentFlags().StringVar(&network, "network", "", "Network to connect to (apothem, xdc)")

	cmd.AddCommand(
		proposalsCmd(a),
		proposalCmd(a),
		depositsCmd(a),
		depositCmd(a),
		networkCmd(a),
	)
	return cmd
}

func (a *app) init(ctx context.Context, configPath, network, voter string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if network != "" {
		cfg.Env.Network = network
	}
	level := cfg.Env.LogLevel
	if cfg.Env.Debug {
		level = "debug"
	}
	logger.Init(level)

	a.cfg = cfg
	a.voter = voter
	a.registry = networks.Default.WithIPFS(cfg.Endpoints.IPFS)
	for id, ns := range a.registry.DuplicateChainIDs() {
		log.Warn().Func(logger.WithCategory(logger.CategoryNetwork)).Int64("chainId", id).Interface("networks", ns).Msg("chain id registered more than once")
	}

	if cfg.Endpoints.RPC != "" {
		a.rpc = rpc.NewClient(cfg.Endpoints.RPC).WithTimeout(cfg.Endpoints.Timeout)
		a.rpc.MaxRetries = cfg.Deposit.ConfirmRetries
		a.rpc.RetryInterval = cfg.Deposit.ConfirmInterval
	}

	contents := newContentStore(ctx, cfg)
	a.session = session.New(session.NewFactory(cfg, a.registry, contents))
	return a.session.Connect(networks.ToSupportedNetwork(cfg.Env.Network), voter)
}

// newContentStore caches IPFS content in memory, backed by redis when one is
// configured and reachable.
func newContentStore(ctx context.Context, cfg *config.Config) store.ContentStore {
	local := store.NewMemoryStore(cfg.Cache.TTL)
	if cfg.Cache.RedisAddr == "" {
		return local
	}

	shared := store.NewRedisStore(store.NewRedisClient(cfg.Cache.RedisAddr, cfg.Cache.RedisPass, cfg.Cache.RedisDb), cfg.Cache.TTL)
	if err := shared.Ping(ctx); err != nil {
		log.Warn().Func(logger.WithCategory(logger.CategoryStore)).Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("redis unavailable, using memory cache only")
		return local
	}
	return store.Tiered{Local: local, Shared: shared}
}
