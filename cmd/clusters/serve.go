package main

import (
	"github.com/haijima/clusters/internal/server"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewServeCmd(v *viper.Viper, _ afero.Fs) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "serve"
	cmd.Short = "Serve the analysis over HTTP"
	cmd.RunE = func(cmd *cobra.Command, _ []string) error { return runServe(cmd, v) }

	cmd.Flags().String("port", "5000", "The `port` to listen on")
	_ = v.BindEnv("port", "PORT")

	return cmd
}

func runServe(cmd *cobra.Command, v *viper.Viper) error {
	addr := ":" + v.GetString("port")
	router := server.NewRouter(server.NewHandler(server.NewMetrics()))
	return server.ListenAndServe(cmd.Context(), addr, router)
}
