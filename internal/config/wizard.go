package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to painel.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to painel! Let's configure the navigation service.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. HTTP port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(input string) error {
			n, err := strconv.Atoi(input)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory (SQLite database and preferences)",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir prompt: %w", err)
	}
	cfg.DataDir = dataDir

	// 3. CORS mode.
	corsPrompt := promptui.Select{
		Label: "Allow all CORS origins (dev mode)",
		Items: []string{"no", "yes"},
	}
	_, corsChoice, err := corsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cors selection: %w", err)
	}
	cfg.AllowAllOrigins = corsChoice == "yes"

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save("painel.yml"); err != nil {
		return nil, err
	}
	fmt.Println("\nConfiguration saved to painel.yml")

	return cfg, nil
}
