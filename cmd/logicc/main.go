/*
Logicc compiles "target = expression" routing assignments into an allocated
Plan: a set of routing decisions addressed the same way the board's source
multiplexers are.

Usage:

	logicc [flags] compile FILE
	logicc [flags] repl
	logicc [flags] serve FILE

Once compiled, the resulting plan can be inspected with --dump-plan, saved
with the repl's :save meta-command, or exposed over HTTP with serve.

The flags are:

	-c, --config FILE
		Load pool-capacity overrides from the given TOML file. If not
		given, the full hardware pool capacities are used.

	-a, --addr ADDRESS
		Listen address for the serve subcommand. Defaults to
		"localhost:8090".

	-b, --backup-dir DIR
		Directory backups are written under. If not given, defaults to
		$HOME/.easy-config-logic.

	--dump-plan yaml
		After a successful compile or repl session ends, print the
		resulting plan as YAML to stdout.

Subcommands:

	compile FILE
		Compile every line of FILE in order and exit, saving a backup on
		success.

	repl
		Start an interactive session, compiling one line at a time.
		Meta-commands: :plan prints a summary of the plan so far, :clear
		resets it, :save writes a backup immediately.

	serve FILE
		Compile FILE, then start the read-only HTTP introspection server
		over the resulting plan.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/kinstaky/logicroute/internal/backup"
	"github.com/kinstaky/logicroute/internal/config"
	"github.com/kinstaky/logicroute/internal/routing"
	"github.com/kinstaky/logicroute/internal/statusapi"
)

const (
	// ExitSuccess indicates a successful run.
	ExitSuccess = iota

	// ExitUsageError indicates bad flags or arguments.
	ExitUsageError

	// ExitCompileError indicates a routing assignment failed to compile.
	ExitCompileError

	// ExitRuntimeError indicates a failure unrelated to compilation, such
	// as an I/O or server error.
	ExitRuntimeError
)

var (
	returnCode = ExitSuccess

	flagConfig    = pflag.StringP("config", "c", "", "Load pool-capacity overrides from the given TOML file.")
	flagAddr      = pflag.StringP("addr", "a", "localhost:8090", "Listen address for the serve subcommand.")
	flagBackupDir = pflag.StringP("backup-dir", "b", "", "Directory backups are written under. Defaults to $HOME/.easy-config-logic.")
	flagDumpPlan  = pflag.String("dump-plan", "", "Print the resulting plan in the given format (only \"yaml\" is supported) after compiling.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()
	args := pflag.Args()

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: logicc [flags] compile FILE | repl | serve FILE\nDo -h for help.\n")
		returnCode = ExitUsageError
		return
	}

	limits := config.Default()
	if pflag.Lookup("config").Changed {
		loaded, err := config.Load(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = ExitUsageError
			return
		}
		limits = loaded
	}

	writer, err := backup.NewWriter(*flagBackupDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitRuntimeError
		return
	}

	switch args[0] {
	case "compile":
		if len(args) != 2 {
			fmt.Fprintf(os.Stderr, "compile requires exactly one FILE argument\n")
			returnCode = ExitUsageError
			return
		}
		runCompile(args[1], limits, writer)
	case "repl":
		runRepl(limits, writer)
	case "serve":
		if len(args) != 2 {
			fmt.Fprintf(os.Stderr, "serve requires exactly one FILE argument\n")
			returnCode = ExitUsageError
			return
		}
		runServe(args[1], limits)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\nDo -h for help.\n", args[0])
		returnCode = ExitUsageError
	}
}

func runCompile(path string, limits config.Limits, writer *backup.Writer) {
	c := routing.NewCompilerWithLimits(limits)
	if err := c.Read(path); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitCompileError
		return
	}

	if _, err := writer.Save(c.Plan, true); err != nil {
		log.Printf("WARN  could not save backup: %s", err)
	}

	dumpPlanIfRequested(c.Plan)
}

func runRepl(limits config.Limits, writer *backup.Writer) {
	c := routing.NewCompilerWithLimits(limits)

	reader, err := newLineReader(">> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitRuntimeError
		return
	}
	defer reader.Close()

	for {
		line, err := reader.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = ExitRuntimeError
			return
		}

		switch {
		case line == ":plan":
			printPlanSummary(c.Plan)
		case line == ":clear":
			c.Clear()
		case line == ":save":
			if _, err := writer.Save(c.Plan, true); err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: could not save backup: %s\n", err)
			}
		default:
			if res := c.Parse(line); !res.Ok() {
				fmt.Print(res.Render(line))
			}
		}
	}

	dumpPlanIfRequested(c.Plan)
}

func runServe(path string, limits config.Limits) {
	c := routing.NewCompilerWithLimits(limits)
	if err := c.Read(path); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitCompileError
		return
	}

	srv := statusapi.New(c.Plan)
	log.Printf("INFO  Serving plan introspection on %s", *flagAddr)
	if err := http.ListenAndServe(*flagAddr, srv); err != nil {
		log.Printf("FATAL server error: %s", err)
		returnCode = ExitRuntimeError
	}
}

func printPlanSummary(plan *routing.Plan) {
	fmt.Println(plan.Summary())
}

func dumpPlanIfRequested(plan *routing.Plan) {
	if strings.ToLower(*flagDumpPlan) != "yaml" {
		return
	}
	out, err := yaml.Marshal(plan.Snapshot())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not dump plan: %s\n", err)
		return
	}
	os.Stdout.Write(out)
}
