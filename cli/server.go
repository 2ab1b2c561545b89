package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpnesseling/adbw/commands"
	"github.com/rpnesseling/adbw/daemon"
	"github.com/rpnesseling/adbw/server"
	"github.com/spf13/cobra"
)

var (
	serverListen string
	serverCORS   bool
	serverDaemon bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "JSON-RPC server commands",
	Long:  `Commands for managing the adbw JSON-RPC server.`,
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the JSON-RPC server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr := serverListen
		if listenAddr == "" {
			listenAddr = commands.Config().ServerListen
		}
		enableCORS := serverCORS || commands.Config().ServerCORS

		if serverDaemon && !daemon.IsChild() {
			_, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Printf("Server daemon spawned, attempting to listen on %s\n", listenAddr)
			return nil
		}

		srv, err := server.New(server.Options{
			Addr:       listenAddr,
			EnableCORS: enableCORS,
			Token:      server.LoadToken(),
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		return srv.Start()
	},
}

var serverStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running server",
	Long:  `Connects to the server and sends server.shutdown via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serverListen
		if addr == "" {
			addr = commands.Config().ServerListen
		}

		if err := daemon.KillServer(addr, server.LoadToken()); err != nil {
			return err
		}

		fmt.Println("Server shutdown command sent successfully")
		return nil
	},
}

var serverTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the API token",
	Long:  `Manage the bearer token clients must send when one is stored. The token lives in the OS keyring.`,
}

var serverTokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a new API token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := server.GenerateToken()
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

var serverTokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored API token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := server.ShowToken()
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

var serverTokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored API token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.ClearToken(); err != nil {
			return err
		}
		fmt.Println("Token cleared, the server now accepts unauthenticated requests")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.AddCommand(serverStartCmd)
	serverCmd.AddCommand(serverStopCmd)
	serverCmd.AddCommand(serverTokenCmd)

	serverTokenCmd.AddCommand(serverTokenGenerateCmd)
	serverTokenCmd.AddCommand(serverTokenShowCmd)
	serverTokenCmd.AddCommand(serverTokenClearCmd)

	serverCmd.PersistentFlags().StringVar(&serverListen, "listen", "", "address to listen on or connect to (default from config)")
	serverStartCmd.Flags().BoolVar(&serverCORS, "cors", false, "enable CORS support")
	serverStartCmd.Flags().BoolVar(&serverDaemon, "daemon", false, "run the server in the background")
}
