package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apiprobe/apiprobe/packages/output"
	"github.com/apiprobe/apiprobe/packages/sender"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Build and send a single HTTP request",
	Long: `Send one request described by flags, a YAML request file, or the
interactive form, and print the echoed request and response as JSON.

Examples:
  apiprobe send -X GET -u "https://api.example.com/users/{id}" -p id=42
  apiprobe send -X POST -u https://api.example.com/users --json '{"name":"ada"}'
  apiprobe send -f request.yaml
  apiprobe send -i
  apiprobe send -f request.yaml --extract users.0.id`,
	RunE: runSend,
}

var sendFlags requestFlags
var extractFlag string

func init() {
	addRequestFlags(sendCmd, &sendFlags)
	sendCmd.Flags().StringVar(&extractFlag, "extract", "", "Print only this gjson path from the JSON response body")
}

func runSend(cmd *cobra.Command, args []string) error {
	in, err := sendFlags.buildInput()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(ExitConfigError)
	}

	transport, _, err := sendFlags.newTransport()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(ExitConfigError)
	}

	payload, resp := sender.Send(transport, in)

	if extractFlag != "" && resp != nil {
		value, err := resp.Extract(extractFlag)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			os.Exit(ExitRequestError)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%v\n", value)
		return nil
	}

	rendered, err := output.RenderJSON(payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)

	if _, failed := payload.(*output.ErrorResult); failed {
		os.Exit(ExitRequestError)
	}
	return nil
}
