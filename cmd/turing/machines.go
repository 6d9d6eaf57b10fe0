package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/turing/pkg/definition"
)

var machinesCmd = &cobra.Command{
	Use:     "machines",
	Aliases: []string{"m"},
	Short:   "Manage the machine library",
	Long:    `Lists, shows, saves and deletes machines in the configured store (store.backend).`,
}

var machinesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored machines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		names, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var machinesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored machine as a definition file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		m, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		format := definition.YAML
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			format = definition.JSON
		}
		data, err := definition.Encode(m, format, definition.WithBlankAlias(app.cfg.Engine.BlankAlias))
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var machinesSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Validate a definition file and store it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		m, err := definition.LoadFile(args[0], definition.WithBlankAlias(app.cfg.Engine.BlankAlias))
		if err != nil {
			return err
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			m.Name = name
		}
		if err := store.Save(cmd.Context(), m); err != nil {
			return err
		}
		fmt.Printf("Saved %q\n", m.Name)
		return nil
	},
}

var machinesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a stored machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(machinesCmd)
	machinesCmd.AddCommand(machinesListCmd, machinesShowCmd, machinesSaveCmd, machinesDeleteCmd)

	machinesShowCmd.Flags().Bool("json", false, "Print JSON instead of YAML")
	machinesSaveCmd.Flags().String("name", "", "Store under this name instead of the one in the file")
}
