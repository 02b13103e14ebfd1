// Command jwts signs, verifies and decodes JSON Web Tokens.
package main

import (
	"fmt"
	"os"

	"github.com/jwtsgo/jwt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jwts:", err)
		os.Exit(1)
	}
}
