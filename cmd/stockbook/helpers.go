// Shared helpers for stockbook CLI commands.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ledgerline/stockbook/internal/paths"
	"github.com/ledgerline/stockbook/pkg/keeper"
	"github.com/ledgerline/stockbook/pkg/sqlite"
	"github.com/ledgerline/stockbook/pkg/types"
)

// book is the global Keeper instance, opened by PersistentPreRunE.
var book *keeper.Keeper

// resolveConfigDir returns the configuration directory following the
// precedence flag > STOCKBOOK_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence
// flag > config.yaml data_dir > STOCKBOOK_DATA_DIR env > CWD default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// openBook attaches the snapshot store and loads the keeper state.
func openBook() error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	store := sqlite.NewBackend()
	if err := store.Attach(types.Config{Backend: configBackend, DataDir: dataDir}); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}

	k, err := keeper.Open(store)
	if err != nil {
		store.Detach()
		return fmt.Errorf("open keeper: %w", err)
	}
	book = k
	return nil
}

// closeBook detaches the store and releases resources.
func closeBook() error {
	if book != nil {
		return book.Close()
	}
	return nil
}

// requireProfile returns the acting profile or a user error telling the
// caller to select one.
func requireProfile() (types.Profile, error) {
	p, ok := book.CurrentProfile()
	if !ok {
		return types.Profile{}, fmt.Errorf("no profile selected; run 'stockbook profile use NAME' first")
	}
	return p, nil
}

// resolveLog returns the log addressed by the optional positional ID,
// falling back to the active selection.
func resolveLog(args []string) (*types.Log, error) {
	if len(args) > 0 {
		l, err := book.GetLog(args[0])
		if err != nil {
			return nil, fmt.Errorf("log %q not found", args[0])
		}
		return l, nil
	}
	l, ok := book.SelectedLog()
	if !ok {
		return nil, fmt.Errorf("no log selected; pass an ID or run 'stockbook log use ID'")
	}
	return l, nil
}

// confirm prompts for interactive y/N confirmation on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// shortID truncates an ID for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
