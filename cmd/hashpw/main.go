// Command hashpw generates and verifies bcrypt digests for the
// ADMIN_PASSWORD_HASH environment variable.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", 12, "bcrypt cost factor (4..31)")
	verify := flag.String("verify", "", "bcrypt hash to check the password against instead of generating")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <password>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	password := flag.Arg(0)

	if *verify != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(*verify), []byte(password)); err != nil {
			fmt.Println("no match")
			os.Exit(1)
		}
		fmt.Println("match")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate hash:", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}
