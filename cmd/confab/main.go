package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rmarques/confab/internal/api"
	"github.com/rmarques/confab/internal/app"
	"github.com/rmarques/confab/internal/profile"
	"github.com/rmarques/confab/internal/store"
	"go.uber.org/fx"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	flag.Parse()

	profileName := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	var (
		contacts *api.ContactService
		messages *api.MessageService
		config   *api.ConfigService
		chat     *api.ChatService
	)
	fxApp := fx.New(
		app.Module(app.Params{ProfileName: profileName}),
		fx.Populate(&contacts, &messages, &config, &chat),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := fxApp.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot open profile %q: %v\n", profileName, err)
		os.Exit(1)
	}
	defer func() { _ = fxApp.Stop(ctx) }()

	switch args[0] {
	case "contacts":
		cmdContacts(contacts, args[1:], *jsonFlag)
	case "history":
		cmdHistory(messages, args[1:], *jsonFlag)
	case "clear":
		cmdClear(messages, args[1:])
	case "wipe":
		cmdWipe(messages)
	case "config":
		cmdConfig(config, args[1:], *jsonFlag)
	case "send":
		cmdSend(ctx, chat, args[1:], *jsonFlag)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: confab [--profile <name>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  contacts list                          List contacts")
	fmt.Fprintln(os.Stderr, "  contacts add <name> [persona] [avatar] Add a contact")
	fmt.Fprintln(os.Stderr, "  contacts edit <id> <name> [persona] [avatar]")
	fmt.Fprintln(os.Stderr, "  contacts rm <id>                       Delete a contact and its history")
	fmt.Fprintln(os.Stderr, "  history <id>                           Show a contact's conversation")
	fmt.Fprintln(os.Stderr, "  clear <id>                             Clear a contact's conversation")
	fmt.Fprintln(os.Stderr, "  wipe                                   Destroy all stored data")
	fmt.Fprintln(os.Stderr, "  config show                            Show assistant settings")
	fmt.Fprintln(os.Stderr, "  config provider <name>                 Select active provider")
	fmt.Fprintln(os.Stderr, "  config key <provider> <key>            Set a provider API key")
	fmt.Fprintln(os.Stderr, "  config model <provider> <model>        Set a provider model")
	fmt.Fprintln(os.Stderr, "  send <id> <text...>                    Send a message and print the reply")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fail(fmt.Errorf("invalid contact id %q", s))
	}
	return id
}

func outputJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail(err)
	}
	fmt.Println(string(b))
}

func cmdContacts(svc *api.ContactService, args []string, jsonOut bool) {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		list, err := svc.List()
		if err != nil {
			fail(err)
		}
		if jsonOut {
			outputJSON(list)
			return
		}
		for _, c := range list {
			fmt.Printf("%-14d %-20s %s\n", c.ID, c.Name, c.LastMsg)
		}
	case "add":
		if len(args) < 2 {
			fail(fmt.Errorf("usage: contacts add <name> [persona] [avatar]"))
		}
		persona, avatar := optional(args, 2), optional(args, 3)
		c, err := svc.Create(args[1], persona, avatar)
		if err != nil {
			fail(err)
		}
		fmt.Printf("created contact %d\n", c.ID)
	case "edit":
		if len(args) < 3 {
			fail(fmt.Errorf("usage: contacts edit <id> <name> [persona] [avatar]"))
		}
		persona, avatar := optional(args, 3), optional(args, 4)
		if _, err := svc.Update(parseID(args[1]), args[2], persona, avatar); err != nil {
			fail(err)
		}
		fmt.Println("updated")
	case "rm":
		if len(args) < 2 {
			fail(fmt.Errorf("usage: contacts rm <id>"))
		}
		remaining, err := svc.Delete(parseID(args[1]))
		if err != nil {
			fail(err)
		}
		fmt.Printf("deleted; %d contacts remain\n", len(remaining))
	default:
		fail(fmt.Errorf("unknown contacts subcommand %q", args[0]))
	}
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func cmdHistory(svc *api.MessageService, args []string, jsonOut bool) {
	if len(args) < 1 {
		fail(fmt.Errorf("usage: history <id>"))
	}
	msgs, err := svc.History(parseID(args[0]))
	if err != nil {
		fail(err)
	}
	if jsonOut {
		outputJSON(msgs)
		return
	}
	for _, m := range msgs {
		fmt.Printf("[%s] %-9s %s\n", m.Time, m.Role, m.Content)
	}
}

func cmdClear(svc *api.MessageService, args []string) {
	if len(args) < 1 {
		fail(fmt.Errorf("usage: clear <id>"))
	}
	if err := svc.Clear(parseID(args[0])); err != nil {
		fail(err)
	}
	fmt.Println("cleared")
}

func cmdWipe(svc *api.MessageService) {
	if err := svc.WipeAll(); err != nil {
		fail(err)
	}
	fmt.Println("all data wiped")
}

func cmdConfig(svc *api.ConfigService, args []string, jsonOut bool) {
	if len(args) == 0 {
		args = []string{"show"}
	}
	cfg, err := svc.Load()
	if err != nil {
		fail(err)
	}
	switch args[0] {
	case "show":
		if jsonOut {
			outputJSON(cfg)
			return
		}
		fmt.Printf("provider: %s\n", cfg.Provider)
		for name, model := range cfg.Models {
			masked := "(not set)"
			if cfg.APIKeys[name] != "" {
				masked = "***"
			}
			fmt.Printf("  %-12s model=%s key=%s\n", name, model, masked)
		}
	case "provider":
		if len(args) < 2 {
			fail(fmt.Errorf("usage: config provider <name>"))
		}
		cfg.Provider = args[1]
		saveConfig(svc, cfg)
	case "key":
		if len(args) < 3 {
			fail(fmt.Errorf("usage: config key <provider> <key>"))
		}
		cfg.APIKeys[args[1]] = args[2]
		saveConfig(svc, cfg)
	case "model":
		if len(args) < 3 {
			fail(fmt.Errorf("usage: config model <provider> <model>"))
		}
		cfg.Models[args[1]] = args[2]
		cfg.UseCustomModels[args[1]] = true
		saveConfig(svc, cfg)
	default:
		fail(fmt.Errorf("unknown config subcommand %q", args[0]))
	}
}

func saveConfig(svc *api.ConfigService, cfg *store.Settings) {
	if err := svc.Save(cfg); err != nil {
		fail(err)
	}
	fmt.Println("saved")
}

func cmdSend(ctx context.Context, svc *api.ChatService, args []string, jsonOut bool) {
	if len(args) < 2 {
		fail(fmt.Errorf("usage: send <id> <text...>"))
	}
	ex, err := svc.Send(ctx, parseID(args[0]), strings.Join(args[1:], " "))
	if err != nil {
		fail(err)
	}
	if ex == nil {
		return
	}
	if jsonOut {
		outputJSON(ex)
		return
	}
	fmt.Println(ex.Assistant.Content)
}
