package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/tcgpocket/internal/config"
	"github.com/peterkuimelis/tcgpocket/internal/store"
	"github.com/peterkuimelis/tcgpocket/internal/web"
)

var spectateCfg config.Spectate

var spectateCmd = &cobra.Command{
	Use:   "spectate",
	Short: "Serve the spectator web UI",
	Long:  `Serve the card catalog, stored results, and live bot-vs-bot matches over HTTP and WebSocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := spectateCfg.Validate(); err != nil {
			return err
		}
		c, decks, err := spectateCfg.Sources.Load()
		if err != nil {
			return err
		}
		opts := web.Options{Catalog: c, Decks: decks, Delay: spectateCfg.Delay}
		if spectateCfg.DBPath != "" {
			st, err := store.Open(spectateCfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()
			opts.Store = st
		}

		log.Printf("tcgpocket spectator listening on %s", spectateCfg.Addr)
		return web.NewServer(opts).ListenAndServe(spectateCfg.Addr)
	},
}

func init() {
	if err := config.ParseEnv(&spectateCfg); err != nil {
		config.Exitf("spectate: %v", err)
	}
	f := spectateCmd.Flags()
	addSourceFlags(spectateCmd, &spectateCfg.Sources)
	f.StringVar(&spectateCfg.Addr, "addr", spectateCfg.Addr, "HTTP listen address")
	f.DurationVar(&spectateCfg.Delay, "delay", spectateCfg.Delay, "pause between streamed events")
	f.StringVar(&spectateCfg.DBPath, "db", spectateCfg.DBPath, "SQLite results file (enables /api/results)")
	rootCmd.AddCommand(spectateCmd)
}
