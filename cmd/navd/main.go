// Command navd serves a navigable-location graph over HTTP. It scatters
// nodes inside configured bounds, keeps them out of blocked zones loaded
// from GeoJSON, wires arcs priced by terrain noise, and answers proximity
// and steering queries against the frozen graph.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "navd",
		Short: "navigation graph server",
	}
	root.AddCommand(ServeCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// ServeCmd returns the serve subcommand.
func ServeCmd() *cobra.Command {
	var configFile string
	c := &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configFile)
		},
	}
	c.Flags().StringVar(&configFile, "config", "navd.hjson", "config file")
	return c
}

func runServe(configFile string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using config file and environment")
	}
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}

	log.Println("========================================")
	log.Println("🚀 Navigation Graph Server")
	log.Println("========================================")

	server, err := NewServer(cfg)
	if err != nil {
		return err
	}
	return server.Run()
}
