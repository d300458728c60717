package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PANELCTL")
	v.AutomaticEnv()
	v.SetDefault("SERVER", "localhost:8080")

	root := &cobra.Command{
		Use:           "panelctl",
		Short:         "Client for the perspective-panel conversation service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("server", v.GetString("SERVER"), "host:port of the panel API")
	root.PersistentFlags().String("session", "", "session id (random when empty)")

	root.AddCommand(newSendCmd())
	root.AddCommand(newChatCmd())

	return root
}

func connFlags(cmd *cobra.Command) (server, sessionID string) {
	server, _ = cmd.Flags().GetString("server")
	sessionID, _ = cmd.Flags().GetString("session")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return server, sessionID
}
