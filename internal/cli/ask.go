// ask.go implements the "parley ask" command: probe, send one message,
// print the answer. This is the non-interactive path for scripts and
// non-TTY environments.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parley-dev/parley/internal/api"
	"github.com/parley-dev/parley/internal/chat"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one message and print the answer",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
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
	sess.CustomerInfo = cfg.CustomerInfo
	client := api.NewClient(sess.SenderID(), cfg.ClientSettings(url))
	d := chat.NewDispatcher(sess, client, logger)

	if !d.Probe(cmd.Context(), client) {
		return fmt.Errorf("disconnected: %s did not answer", client.BaseURL())
	}

	reply, ok := d.Dispatch(cmd.Context(), args[0])
	if !ok {
		return fmt.Errorf("dispatch refused: session is disconnected")
	}

	fmt.Println(reply.Content)
	return nil
}
