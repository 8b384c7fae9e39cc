package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lyricpipe/web"
)

var (
	serveBind string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front end",
	Long: `Serve starts the browser front end for searching sites, viewing songs and
repairing songs whose stanzas do not line up.

Example:
  lyricpipe serve --bind 0.0.0.0 --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveBind, "bind", "", "Address to bind (default: config server.bind)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: config server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	server := cfg.Server
	if serveBind != "" {
		server.Bind = serveBind
	}
	if servePort != 0 {
		server.Port = servePort
	}

	reg, closeStore, err := openRegistry()
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := web.New(reg, cfg.DefaultSite, cfg.FontSize)
	if err != nil {
		return err
	}

	addr := server.Addr()
	fmt.Fprintf(os.Stdout, "Serving on http://%s\n", addr)
	return srv.ListenAndServe(cmd.Context(), addr)
}
