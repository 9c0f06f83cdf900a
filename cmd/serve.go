package cmd

import (
	"fmt"

	mcpserver "github.com/mrivarola/ofertas/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting Ofertas MCP server on stdio...")

	return mcpserver.Serve(mcpserver.Deps{
		Store:  st,
		Client: buildClient(),
	})
}
