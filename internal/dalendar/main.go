package dalendar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var buildVersion = "dev"

func Main() int {
	options, err := parseCliOptions()
	if err != nil {
		fmt.Println(err)
		return 1
	}

	switch options.intent {
	case cliIntentVersionPrint:
		fmt.Println(buildVersion)
	case cliIntentServe:
		if err := serveApp(options.configPath); err != nil {
			fmt.Println(err)
			return 1
		}
	case cliIntentConfigValidate:
		contents, err := loadConfigContents(options.configPath)
		if err != nil {
			fmt.Printf("Could not read config file: %v\n", err)
			return 1
		}

		if _, err := newConfigFromYAML(contents); err != nil {
			fmt.Printf("Config file is invalid: %v\n", err)
			return 1
		}
	case cliIntentConfigPrint:
		contents, err := loadConfigContents(options.configPath)
		if err != nil {
			fmt.Printf("Could not read config file: %v\n", err)
			return 1
		}

		contents, err = parseConfigEnvVariables(contents)
		if err != nil {
			fmt.Printf("Could not parse config file: %v\n", err)
			return 1
		}

		fmt.Println(string(contents))
	case cliIntentPasswordHash:
		var password string
		if len(options.args) > 1 {
			password = options.args[1]
		} else {
			password, err = readPasswordFromTerminal()
			if err != nil {
				fmt.Println(err)
				return 1
			}
		}

		hashed, err := hashPassword(password)
		if err != nil {
			fmt.Printf("Failed to hash password: %v\n", err)
			return 1
		}

		fmt.Println(hashed)
	}

	return 0
}

// loadConfigContents loads the optional .env file so that the config can
// reference its variables, then reads the config file.
func loadConfigContents(configPath string) ([]byte, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	return readConfigFile(configPath)
}

func hashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", errPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func readPasswordFromTerminal() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no password given and stdin is not a terminal")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return string(password), nil
}

// runningServer swaps the served application whenever the config changes.
type runningServer struct {
	mu         sync.Mutex
	stopServer func() error
	failed     chan error
}

func (s *runningServer) reload(contents []byte) error {
	config, err := newConfigFromYAML(contents)
	if err != nil {
		return fmt.Errorf("validating config file: %w", err)
	}

	app, err := newApplication(config)
	if err != nil {
		return fmt.Errorf("creating application: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopServer != nil {
		if err := s.stopServer(); err != nil {
			log.Printf("Error while trying to stop server: %v", err)
		}
	}

	var startServer func() error
	startServer, s.stopServer = app.server()

	go func() {
		if err := startServer(); err != nil {
			select {
			case s.failed <- err:
			default:
			}
		}
	}()

	return nil
}

func (s *runningServer) stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopServer == nil {
		return nil
	}

	return s.stopServer()
}

func serveApp(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	contents, err := loadConfigContents(configPath)
	if err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	server := &runningServer{failed: make(chan error, 1)}
	if err := server.reload(contents); err != nil {
		return err
	}

	onChange := func(newContents []byte) {
		log.Println("Config file changed, reloading...")

		if err := server.reload(newContents); err != nil {
			log.Printf("Config has errors, keeping the previous one: %v", err)
		}
	}

	onErr := func(err error) {
		log.Printf("Error watching config file: %v", err)
	}

	stopWatching, err := configFileWatcher(configPath, contents, onChange, onErr)
	if err == nil {
		defer stopWatching()
	} else {
		log.Printf("Error starting file watcher, config file changes will require a manual restart. (%v)", err)
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		select {
		case err := <-server.failed:
			return fmt.Errorf("starting server: %w", err)
		case <-ctx.Done():
			return nil
		}
	})

	group.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down...")
		return server.stop()
	})

	return group.Wait()
}
