package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(galleryCmd)
	galleryCmd.AddCommand(galleryListCmd, galleryDeleteCmd, galleryShowCmd)
}

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Manage saved posters",
}

var galleryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the signed-in user's saved posters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)
		ctrl := newController(cfg)

		if ctrl.Session() == nil {
			fmt.Fprintln(os.Stdout, "Not signed in.")
			return nil
		}

		images := ctrl.Gallery()
		if len(images) == 0 {
			fmt.Fprintln(os.Stdout, "No saved images yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tSAVED\tURL")
		for i, img := range images {
			fmt.Fprintf(w, "%d\t%s\t%s\n",
				i,
				time.UnixMilli(img.Timestamp).Format("2006-01-02 15:04:05"),
				img.URL,
			)
		}
		return w.Flush()
	},
}

var galleryDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a saved poster by position (0 = newest)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)
		ctrl := newController(cfg)

		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index: %s", args[0])
		}

		if err := ctrl.Events().Dispatch(cmd.Context(), "gallery:delete", index); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Deleted image %d.\n", index)
		return nil
	},
}

var galleryShowCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Make a saved poster the current preview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)
		ctrl := newController(cfg)

		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index: %s", args[0])
		}

		if err := ctrl.Events().Dispatch(cmd.Context(), "gallery:select", index); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, ctrl.Preview())
		return nil
	},
}
