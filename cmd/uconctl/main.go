// Command uconctl is a minimal CLI front end over the rpc façade,
// grounded on original_source/ucon/mcp/server.py's tool surface (one
// subcommand per façade method). No CLI-framework dependency appears
// anywhere in the example pack, so subcommand dispatch and flag
// parsing here use the standard library's flag package — see
// DESIGN.md for that justification.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/radiativity-co/ucon/rpc"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	sess := rpc.NewSession()
	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "convert":
		err = runConvert(sess, args)
	case "list-units":
		err = runListUnits(sess, args)
	case "list-dimensions":
		err = runListDimensions(sess)
	case "check-dimensions":
		err = runCheckDimensions(sess, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error("uconctl", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: uconctl <convert|list-units|list-dimensions|check-dimensions> [flags]")
}

func runConvert(sess *rpc.Session, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	value := fs.Float64("value", 0, "numeric quantity to convert")
	from := fs.String("from", "", "source unit")
	to := fs.String("to", "", "destination unit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	n, terr := sess.Convert(*value, *from, *to, nil, nil)
	if terr != nil {
		return printErr(terr)
	}
	fmt.Println(n.String())
	return nil
}

func runListUnits(sess *rpc.Session, args []string) error {
	for _, name := range sess.ListUnits() {
		fmt.Println(name)
	}
	return nil
}

func runListDimensions(sess *rpc.Session) error {
	for _, name := range sess.ListDimensions() {
		fmt.Println(name)
	}
	return nil
}

func runCheckDimensions(sess *rpc.Session, args []string) error {
	fs := flag.NewFlagSet("check-dimensions", flag.ExitOnError)
	a := fs.String("a", "", "first unit")
	b := fs.String("b", "", "second unit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ok, terr := sess.CheckDimensions(*a, *b)
	if terr != nil {
		return printErr(terr)
	}
	fmt.Println(ok)
	return nil
}

func printErr(terr *rpc.ToolError) error {
	enc, _ := json.MarshalIndent(terr, "", "  ")
	fmt.Fprintln(os.Stderr, string(enc))
	return terr
}
