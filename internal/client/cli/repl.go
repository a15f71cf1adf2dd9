package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Search(ctx context.Context, text string) error
	Filters(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Page(ctx context.Context, arg string) error
	Show(ctx context.Context, id string) error
	Inventory(ctx context.Context, arg string) error
	NewCar(ctx context.Context) error
	EditCar(ctx context.Context, id string) error
	DeleteCar(ctx context.Context, id string) error
	Settings(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the dealership CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                  show available commands
//	  - search <text>         debounced catalog search
//	  - filters [sub...]      staged filter drawer (see Filters)
//	  - (l)ist                render the current catalog page
//	  - page <n>|next|prev    pagination
//	  - show <id>             car details
//	  - login                 authenticate
//	  - exit | quit           leave the program
//
//	Logged in:
//	  - inventory [page]      admin vehicle listing
//	  - new                   create a vehicle
//	  - edit <id>             edit a vehicle
//	  - delete <id>           delete a vehicle
//	  - settings [edit]       dealership profile
//	  - logout                log out
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("garage %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: search, filters, (l)ist, page, show, login, exit")
			if a.isLoggedIn() {
				printlnFn("Admin commands: inventory, new, edit, delete, settings, logout")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "filters":
			_ = a.Filters(ctx, args)

		case "l", "list":
			_ = a.List(ctx)

		case "page", "next", "prev":
			arg := cmd
			if cmd == "page" {
				if len(args) == 0 {
					printlnFn("Usage: page <n>")
					continue
				}
				arg = args[0]
			}
			_ = a.Page(ctx, arg)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "inventory", "inv":
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			_ = a.Inventory(ctx, arg)

		case "new":
			_ = a.NewCar(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.EditCar(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.DeleteCar(ctx, args[0])

		case "settings":
			_ = a.Settings(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
