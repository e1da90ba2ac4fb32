package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/unilogos/internal/controller"
	"github.com/user/unilogos/internal/gateway"
	"github.com/user/unilogos/internal/types"
)

var generateRequest types.GenerationRequest

func init() {
	rootCmd.AddCommand(generateCmd, resetCmd, downloadCmd)

	flags := generateCmd.Flags()
	flags.StringVar(&generateRequest.GenerationType, "type", "", "generation type (default poster)")
	flags.StringVar(&generateRequest.EventName, "event-name", "", "event name")
	flags.StringVar(&generateRequest.Theme, "theme", "", "visual theme")
	flags.StringVar(&generateRequest.Location, "location", "", "event location")
	flags.StringVar(&generateRequest.Date, "date", "", "event date")
	flags.StringVar(&generateRequest.EventType, "event-type", "", "event type")
	flags.StringVar(&generateRequest.ExtraPrompt, "extra-prompt", "", "additional prompt text")
	flags.StringVar(&generateRequest.AspectRatio, "aspect-ratio", "", "aspect ratio (default 3:2)")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a poster from the given parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)
		ctrl := newController(cfg)

		result, err := ctrl.Submit(cmd.Context(), generateRequest)
		if err != nil {
			if errors.Is(err, gateway.ErrNoResult) {
				fmt.Fprintln(os.Stdout, "No image returned")
				return nil
			}
			return err
		}

		fmt.Fprintln(os.Stdout, result.Href)
		fmt.Fprintln(os.Stderr, ctrl.Status())
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the remembered preview",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)
		ctrl := newController(cfg)

		return ctrl.Events().Dispatch(cmd.Context(), "reset", nil)
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the last generated poster to a local file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)
		ctrl := newController(cfg)

		path, err := ctrl.Download(cmd.Context(), cfg.Download.Dir)
		if err != nil {
			if errors.Is(err, controller.ErrNoPreview) {
				return fmt.Errorf("nothing to download; run generate first")
			}
			return err
		}

		fmt.Fprintf(os.Stdout, "Saved %s\n", path)
		return nil
	},
}
