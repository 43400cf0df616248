// probe.go implements the "parley probe" command: a one-shot connection
// test against {base}/test with the standard retry budget.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parley-dev/parley/internal/api"
	"github.com/parley-dev/parley/internal/chat"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test the API connection",
	Args:  cobra.NoArgs,
	RunE:  runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	url, err := resolveURL(cfg)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}

	sess := chat.NewSession()
	client := api.NewClient(sess.SenderID(), cfg.ClientSettings(url))
	d := chat.NewDispatcher(sess, client, logger)

	if !d.Probe(cmd.Context(), client) {
		return fmt.Errorf("disconnected: %s did not answer", client.BaseURL())
	}

	fmt.Printf("Connected: %s\n", client.BaseURL())
	return nil
}
