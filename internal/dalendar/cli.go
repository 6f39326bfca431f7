package dalendar

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

type cliIntent uint8

const (
	cliIntentServe cliIntent = iota
	cliIntentVersionPrint
	cliIntentConfigValidate
	cliIntentConfigPrint
	cliIntentPasswordHash
)

type cliOptions struct {
	intent     cliIntent
	configPath string
	args       []string
}

func parseCliOptions() (*cliOptions, error) {
	return parseCliArgs(os.Args[1:])
}

func parseCliArgs(arguments []string) (*cliOptions, error) {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Println("Usage: dalendar [options] command")

		fmt.Println("\nOptions:")
		flags.PrintDefaults()

		fmt.Println("\nCommands:")
		fmt.Println("  config:validate       Validate the config file")
		fmt.Println("  config:print          Print the config file with environment variables resolved")
		fmt.Println("  password:hash <pwd>   Hash a password for the metrics endpoint")
		fmt.Println("  version               Print the version")
	}

	configPath := flags.String("config", defaultConfigPath, "Set config path")

	if err := flags.Parse(arguments); err != nil {
		return nil, err
	}

	var intent cliIntent
	args := flags.Args()
	unknownCommandErr := fmt.Errorf("unknown command: %v", args)

	if len(args) == 0 {
		intent = cliIntentServe
	} else if len(args) == 1 {
		switch args[0] {
		case "version":
			intent = cliIntentVersionPrint
		case "config:validate":
			intent = cliIntentConfigValidate
		case "config:print":
			intent = cliIntentConfigPrint
		case "password:hash":
			intent = cliIntentPasswordHash
		default:
			return nil, unknownCommandErr
		}
	} else if len(args) == 2 {
		if args[0] == "password:hash" {
			intent = cliIntentPasswordHash
		} else {
			return nil, unknownCommandErr
		}
	} else {
		return nil, unknownCommandErr
	}

	return &cliOptions{
		intent:     intent,
		configPath: *configPath,
		args:       args,
	}, nil
}

var errPasswordTooShort = errors.New("password must be at least 6 characters long")
