// Command hashpw prints the bcrypt hash to put in ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashpw 'my admin password'
package main

import (
	"fmt"
	"os"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/auth"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}
	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashpw: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
