package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohanwest/pancake/app/services"
	"github.com/rohanwest/pancake/internal/server"
)

// pancake backup — write a full data snapshot to the configured disk.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export all users, orders and rewards to the snapshot file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		path, err := services.NewSnapshotService().Export()
		if err != nil {
			return err
		}
		fmt.Printf("Snapshot written to %s\n", path)
		return nil
	},
}

// pancake restore — replace all data with the snapshot's contents.
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the database contents with the snapshot file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		snap, err := services.NewSnapshotService().Restore()
		if err != nil {
			return err
		}
		fmt.Printf("Restored %d users, %d orders, %d rewards\n",
			len(snap.Users), len(snap.Orders), len(snap.Rewards))
		return nil
	},
}
