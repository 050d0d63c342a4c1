// Command passwd prints a bcrypt hash for a password read from the terminal
// without echo, or checks a password against an existing hash. Operators use
// it to seed or repair accounts directly in the database.
//
//	passwd [-cost 12]
//	passwd -verify '$2a$10$...'
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/auth"
	"golang.org/x/term"
)

var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

var errMismatch = errors.New("passwords do not match")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cost := fs.Int("cost", 10, "bcrypt cost")
	verify := fs.String("verify", "", "check the password against this hash instead of hashing it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	read := promptReader(stdin, stderr)

	if *verify != "" {
		pw, err := read("Password: ")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(pw)

		if !auth.VerifyPassword(string(pw), *verify) {
			return errMismatch
		}
		fmt.Fprintln(stdout, "ok")
		return nil
	}

	pw, err := read("New password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	if len(pw) == 0 {
		return errors.New("empty password")
	}

	again, err := read("Repeat password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)
	if string(pw) != string(again) {
		return errMismatch
	}

	hash, err := auth.HashPassword(string(pw), *cost)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hash)
	return nil
}

// promptReader reads passwords without echo from a terminal, or one line at
// a time when input is piped.
func promptReader(in *os.File, prompts io.Writer) func(prompt string) ([]byte, error) {
	fd := int(in.Fd())
	if isTerminal(fd) {
		return func(prompt string) ([]byte, error) {
			fmt.Fprint(prompts, prompt)
			pw, err := readPassword(fd)
			fmt.Fprintln(prompts)
			return pw, err
		}
	}

	reader := bufio.NewReader(in)
	return func(string) ([]byte, error) {
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return nil, err
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}
}
