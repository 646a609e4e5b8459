package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pastesync/internal/config"
	"pastesync/internal/models"
)

var (
	verbose    bool
	ipcQuiet   bool
	showEvents bool
)

var rootCmd = &cobra.Command{
	Use:           "pastesync",
	Short:         "Manage custom paste actions and their synced settings",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().BoolVar(&ipcQuiet, "quiet-ipc", false, "do not print outgoing IPC messages")
	rootCmd.PersistentFlags().BoolVar(&showEvents, "events", false, "print change records to stderr as JSON lines")

	updateCmd.Flags().String("name", "", "new display name")
	updateCmd.Flags().String("prompt", "", "new prompt")
	updateCmd.Flags().String("model", "", "new model")

	aiCmd.AddCommand(aiSetCmd, aiRemoveCmd)

	rootCmd.AddCommand(
		statusCmd,
		listCmd,
		addCmd,
		deleteCmd,
		updateCmd,
		renameCmd,
		hotkeyCmd,
		enableCmd,
		disableCmd,
		previewCmd,
		aiCmd,
		clipboardHistoryCmd,
	)
}

// withApp loads config, opens the app, runs fn and shuts down, flushing any
// pending settings.
func withApp(cmd *cobra.Command, fn func(a *App) error) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log := newLogger(level, cmd.ErrOrStderr())

	var ipcOut io.Writer = cmd.OutOrStdout()
	if ipcQuiet {
		ipcOut = io.Discard
	}
	var eventOut io.Writer
	if showEvents {
		eventOut = cmd.ErrOrStderr()
	}
	a, err := newApp(cfg, log, ipcOut, eventOut)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.shutdown(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(a)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid shortcut id %q", arg)
	}
	return id, nil
}

func parseOnOff(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", arg)
}

var slotAliases = map[string]models.HotkeySlot{
	"ui":       models.SlotAdvancedPasteUI,
	"plain":    models.SlotPasteAsPlainText,
	"markdown": models.SlotPasteAsMarkdown,
	"json":     models.SlotPasteAsJSON,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show effective enablement, policy and hotkeys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *App) error {
			out := cmd.OutOrStdout()
			s := a.Sync
			fmt.Fprintf(out, "enabled:              %t (policy locked: %t)\n", s.IsEnabled(), s.IsEnabledPolicyLocked())
			fmt.Fprintf(out, "online AI:            %t (disallowed: %t, warning: %t)\n", s.IsAIEnabled(), s.OnlineModelsDisallowed(), s.ShowOnlineModelsWarning())
			fmt.Fprintf(out, "clipboard history:    %t (disabled by policy: %t)\n", s.ClipboardHistoryEnabled(), s.ClipboardHistoryDisabledByPolicy())
			fmt.Fprintf(out, "custom preview:       %t\n", s.ShowCustomPreview())
			for _, alias := range []string{"ui", "plain", "markdown", "json"} {
				fmt.Fprintf(out, "hotkey %-13s %s\n", alias+":", s.Hotkey(slotAliases[alias]))
			}
			if s.IsConflictingWithSystemChords() {
				fmt.Fprintln(out, "warning: a hotkey conflicts with the system paste shortcut")
			}
			fmt.Fprintf(out, "shortcuts:            %d\n", len(s.Shortcuts()))
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom shortcuts as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *App) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(models.ShortcutList{Value: a.Sync.Shortcuts()})
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add [name-prefix]",
	Short: "Add a shortcut named after the prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		return withApp(cmd, func(a *App) error {
			id, err := a.Sync.AddShortcut(prefix)
			if err != nil {
				return err
			}
			sc, err := a.Sync.Shortcut(id)
			if err != nil {
				return err
			}
			a.Sync.ClearFocusRequest()
			fmt.Fprintf(cmd.ErrOrStderr(), "added %d %q\n", sc.ID, sc.Name)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a shortcut",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *App) error {
			return a.Sync.DeleteShortcut(id)
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the name, prompt or model of a shortcut",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *App) error {
			modified, err := a.Sync.Shortcut(id)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				modified.Name, _ = flags.GetString("name")
			}
			if flags.Changed("prompt") {
				modified.Prompt, _ = flags.GetString("prompt")
			}
			if flags.Changed("model") {
				modified.Model, _ = flags.GetString("model")
			}
			return a.Sync.UpdateShortcut(modified)
		})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a shortcut",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *App) error {
			return a.Sync.RenameShortcut(id, args[1])
		})
	},
}

var hotkeyCmd = &cobra.Command{
	Use:       "hotkey <ui|plain|markdown|json> [chord]",
	Short:     "Set a hotkey; omit the chord to restore the default",
	Example:   "  pastesync hotkey plain \"Win+Ctrl+Alt+V\"",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"ui", "plain", "markdown", "json"},
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, ok := slotAliases[strings.ToLower(args[0])]
		if !ok {
			return fmt.Errorf("unknown hotkey %q", args[0])
		}
		var chord models.HotkeySettings
		if len(args) == 2 {
			var err error
			if chord, err = models.ParseHotkey(args[1]); err != nil {
				return err
			}
		}
		return withApp(cmd, func(a *App) error {
			if err := a.Sync.SetHotkey(slot, chord); err != nil {
				return err
			}
			if a.Sync.IsConflictingWithSystemChords() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: a hotkey conflicts with the system paste shortcut")
			}
			return nil
		})
	},
}

func enableCommand(use string, value bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("%s the module unless policy decides", strings.ToUpper(use[:1])+use[1:]),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *App) error {
				if a.Sync.IsEnabledPolicyLocked() {
					fmt.Fprintln(cmd.ErrOrStderr(), "enablement is set by policy; nothing changed")
					return nil
				}
				a.Sync.SetEnabled(value)
				return nil
			})
		},
	}
}

var (
	enableCmd  = enableCommand("enable", true)
	disableCmd = enableCommand("disable", false)
)

var previewCmd = &cobra.Command{
	Use:   "preview <on|off>",
	Short: "Toggle the custom action preview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *App) error {
			a.Sync.SetShowCustomPreview(on)
			return nil
		})
	},
}

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Manage the online AI model key",
}

var aiSetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key (reads stdin when no argument is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := ""
		if len(args) == 1 {
			key = args[0]
		} else {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			key = strings.TrimSpace(string(data))
		}
		return withApp(cmd, func(a *App) error {
			if a.Sync.OnlineModelsDisallowed() {
				return fmt.Errorf("online AI models are disallowed by policy")
			}
			a.Sync.EnableAI(key)
			if !a.Sync.IsAIEnabled() {
				return fmt.Errorf("could not store the API key")
			}
			return nil
		})
	},
}

var aiRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *App) error {
			a.Sync.DisableAI()
			return nil
		})
	},
}

var clipboardHistoryCmd = &cobra.Command{
	Use:   "clipboard-history <on|off>",
	Short: "Toggle OS clipboard history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *App) error {
			if a.Sync.ClipboardHistoryDisabledByPolicy() {
				fmt.Fprintln(cmd.ErrOrStderr(), "clipboard history is disabled by policy")
			}
			a.Sync.SetClipboardHistoryEnabled(on)
			return nil
		})
	},
}
