package commands

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/uoc-tools/timeline/internal/app"
)

// CheckConfig handles the check-config subcommand: it loads and
// validates the config file and prints the resolved classroom table
// without touching the network.
func CheckConfig(args []string) {
	fs := flag.NewFlagSet("check-config", flag.ExitOnError)
	configPath := fs.String("config", app.DefaultConfigFile, "Path to config file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: uoc-timeline check-config [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Validates the config file and prints the configured classrooms.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Config valid: %s\n", *configPath)
	fmt.Printf("   Username: %s\n", cfg.Username)
	if cfg.Password == "" {
		fmt.Println("   Password: not stored (will prompt at run time)")
	} else {
		fmt.Println("   Password: set")
	}
	if cfg.ChromePath != "" {
		fmt.Printf("   Browser:  %s\n", cfg.ChromePath)
	}
	fmt.Printf("   Classrooms (%d):\n", len(cfg.Classrooms()))
	for _, c := range cfg.Classrooms() {
		fmt.Printf("     %s  %-30s subject=%s color=%s\n", c.ID, c.Name, c.SubjectID, c.Color)
	}
}

// ReadPassword prompts for a password on the terminal, echoing asterisks
// instead of the typed characters.
func ReadPassword(prompt string) string {
	fmt.Print(prompt)

	oldState, err := term.GetState(int(syscall.Stdin))
	if err != nil {
		// Not a terminal worth masking on, fall back to hidden input
		password, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(password)
	}
	defer term.Restore(int(syscall.Stdin), oldState)

	if _, err := term.MakeRaw(int(syscall.Stdin)); err != nil {
		password, _ := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		return string(password)
	}

	var password []byte
	reader := bufio.NewReader(os.Stdin)

	for {
		char, _, err := reader.ReadRune()
		if err != nil {
			break
		}

		switch char {
		case '\n', '\r': // Enter
			fmt.Println()
			return string(password)
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Print("\b \b")
			}
		case 3: // Ctrl+C
			fmt.Println()
			os.Exit(1)
		default:
			if char >= 32 && char <= 126 {
				password = append(password, byte(char))
				fmt.Print("*")
			}
		}
	}

	fmt.Println()
	return string(password)
}
