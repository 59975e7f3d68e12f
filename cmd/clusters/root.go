package main

import (
	"github.com/haijima/cobrax"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRootCmd(v *viper.Viper, fs afero.Fs) *cobra.Command {
	cmd := cobrax.NewRoot(v)
	cmd.Use = "clusters"
	cmd.Short = "clusters finds the connected components of an undirected graph"
	cmd.Version = cobrax.VersionFunc()
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return cobrax.RootPersistentPreRunE(cmd, v, fs, args)
	}

	cmd.AddCommand(NewAnalyzeCmd(v, fs))
	cmd.AddCommand(NewCompareCmd(v, fs))
	cmd.AddCommand(NewServeCmd(v, fs))
	cmd.AddCommand(NewGenConfCmd(v, fs))

	cmd.SetGlobalNormalizationFunc(cobrax.SnakeToKebab)

	return cmd
}
