/*
Package cli provides command-line interface utilities for the boolexpr command.

Output Formatting:

Commands accept --format and print results through a Formatter:

	format, err := cli.ParseOutputFormat(flag, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}
	formatter := cli.NewFormatter(format)
	if err := formatter.FormatTo(os.Stdout, results); err != nil {
		return err
	}

Errors and Exit Codes:

Commands wrap failures in CommandError; ExitCode maps them to the process
exit status.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
